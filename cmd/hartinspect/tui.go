package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/cart-pucminas/narvi-go/hart"
)

// TUI is a minimal text interface over a single hart: register/FP/memory
// panels driven by tview, global key bindings via tcell, pared down to
// what a read-only inspector needs: no breakpoints, no disassembly, no
// command language.
type TUI struct {
	Hart *hart.Hart
	App  *tview.Application

	MainLayout   *tview.Flex
	RegisterView *tview.TextView
	FPView       *tview.TextView
	MemoryView   *tview.TextView
	OutputView   *tview.TextView

	MemoryAddress uint64
	lastErr       error
}

// NewTUI builds the inspector's layout around h.
func NewTUI(h *hart.Hart) *TUI {
	t := &TUI{
		Hart: h,
		App:  tview.NewApplication(),
	}
	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()
	t.RefreshAll()
	return t
}

func (t *TUI) initializeViews() {
	t.RegisterView = tview.NewTextView().SetDynamicColors(true)
	t.RegisterView.SetBorder(true).SetTitle(" Registers ")

	t.FPView = tview.NewTextView().SetDynamicColors(true)
	t.FPView.SetBorder(true).SetTitle(" FP / FCSR ")

	t.MemoryView = tview.NewTextView().SetDynamicColors(true).SetWrap(false)
	t.MemoryView.SetBorder(true).SetTitle(" Memory ")

	t.OutputView = tview.NewTextView().SetDynamicColors(true).SetWrap(true)
	t.OutputView.SetBorder(true).SetTitle(" Output (F11 step, Ctrl-L refresh, Ctrl-C quit) ")
}

func (t *TUI) buildLayout() {
	top := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(t.RegisterView, 0, 1, false).
		AddItem(t.FPView, 0, 1, false).
		AddItem(t.MemoryView, 0, 1, false)

	t.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(top, 0, 3, false).
		AddItem(t.OutputView, 6, 0, false)
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF11:
			t.step()
			return nil
		case tcell.KeyCtrlL:
			t.RefreshAll()
			return nil
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		}
		return event
	})
}

func (t *TUI) step() {
	t.lastErr = t.Hart.Step()
	t.RefreshAll()
}

// RefreshAll redraws every panel from the hart's current state.
func (t *TUI) RefreshAll() {
	t.updateRegisterView()
	t.updateFPView()
	t.updateMemoryView()
	t.updateOutputView()
	t.App.Draw()
}

func (t *TUI) updateRegisterView() {
	t.RegisterView.Clear()
	var lines []string
	for row := 0; row < 8; row++ {
		var cols []string
		for col := 0; col < 4; col++ {
			reg := row*4 + col
			v, _ := t.Hart.GPR(reg)
			cols = append(cols, fmt.Sprintf("x%-2d: 0x%016X", reg, v))
		}
		lines = append(lines, strings.Join(cols, "  "))
	}
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("pc : 0x%016X", t.Hart.PC()))
	t.RegisterView.SetText(strings.Join(lines, "\n"))
}

func (t *TUI) updateFPView() {
	t.FPView.Clear()
	var lines []string
	flen := t.Hart.FLen()
	lines = append(lines, fmt.Sprintf("flen: %d", flen))
	if flen > 0 {
		for reg := 0; reg < 32; reg++ {
			bits, _ := t.Hart.FPSingle(reg)
			lines = append(lines, fmt.Sprintf("f%-2d (single): 0x%08X", reg, bits))
		}
	}
	fcsr := t.Hart.FCSRWord()
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("fcsr: 0x%02X (rm=%d flags=0x%02X)", fcsr, (fcsr>>5)&0x7, fcsr&0x1F))
	t.FPView.SetText(strings.Join(lines, "\n"))
}

func (t *TUI) updateMemoryView() {
	t.MemoryView.Clear()
	addr := t.MemoryAddress
	if addr == 0 {
		addr = t.Hart.PC()
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("[yellow]Address: 0x%016X[white]", addr))
	for row := 0; row < 12; row++ {
		rowAddr := addr + uint64(row*16)
		if rowAddr+16 > t.Hart.Memory().Size() {
			break
		}
		line := fmt.Sprintf("0x%08X: ", rowAddr)
		var hexBytes []string
		for col := 0; col < 16; col++ {
			hexBytes = append(hexBytes, fmt.Sprintf("%02X", t.Hart.Memory().Get8(rowAddr+uint64(col))))
		}
		lines = append(lines, line+strings.Join(hexBytes, " "))
	}
	t.MemoryView.SetText(strings.Join(lines, "\n"))
}

func (t *TUI) updateOutputView() {
	t.OutputView.Clear()
	if t.lastErr != nil {
		t.OutputView.SetText(fmt.Sprintf("[red]%v[white]", t.lastErr))
		return
	}
	t.OutputView.SetText("ok")
}

// Run starts the application event loop.
func (t *TUI) Run() error {
	return t.App.SetRoot(t.MainLayout, true).Run()
}
