// Command hartinspect is a read-only diagnostic tool for stepping a hart
// over a raw instruction image and watching its register/memory/FCSR
// state change. It is not a program loader or host driver: it has no
// ELF/ABI support, no syscalls, and no breakpoint/expression language —
// it loads a flat binary at address 0 and lets the operator single-step.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cart-pucminas/narvi-go/config"
	"github.com/cart-pucminas/narvi-go/hart"
)

func main() {
	imagePath := flag.String("image", "", "path to a flat RV64 instruction image")
	m := flag.Bool("m", false, "enable the M extension")
	f := flag.Bool("f", false, "enable the F extension")
	d := flag.Bool("d", false, "enable the D extension")
	flag.Parse()

	if *imagePath == "" {
		fmt.Fprintln(os.Stderr, "usage: hartinspect -image <path> [-m] [-f] [-d]")
		os.Exit(2)
	}

	data, err := os.ReadFile(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hartinspect: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "hartinspect: loading config: %v\n", err)
		os.Exit(1)
	}
	ext := hart.Extensions{
		M: cfg.Extensions.M || *m,
		F: cfg.Extensions.F || *f,
		D: cfg.Extensions.D || *d,
	}

	size := cfg.L1Size
	if size < uint64(len(data)) {
		size = uint64(len(data))
	}
	h := hart.New(ext, size)
	h.Memory().LoadBytes(0, data)

	ui := NewTUI(h)
	if err := ui.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "hartinspect: %v\n", err)
		os.Exit(1)
	}
}
