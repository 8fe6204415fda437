package hart

import "testing"

func TestBitsOf(t *testing.T) {
	tests := []struct {
		hi, lo int
		word   uint32
		want   uint32
	}{
		{6, 0, 0b1111111, 0b1111111},
		{31, 25, 0xFE000000, 0x7F},
		{11, 7, 0x00000F80, 0x1F},
		{0, 0, 1, 1},
		{31, 31, 0x80000000, 1},
	}

	for _, tt := range tests {
		got := BitsOf(tt.hi, tt.lo, tt.word)
		if got != tt.want {
			t.Errorf("BitsOf(%d,%d,0x%X) = 0x%X, want 0x%X", tt.hi, tt.lo, tt.word, got, tt.want)
		}
	}
}

func TestBitsOfSwapsOutOfOrderBounds(t *testing.T) {
	if got := BitsOf(0, 6, 0b1111111); got != 0b1111111 {
		t.Errorf("BitsOf should tolerate hi<lo by swapping, got 0x%X", got)
	}
}

func TestSetBitsOf(t *testing.T) {
	got := SetBitsOf(0b101, 11, 7, 0)
	want := uint32(0b101 << 7)
	if got != want {
		t.Errorf("SetBitsOf = 0x%X, want 0x%X", got, want)
	}
}

func TestSignExtend32(t *testing.T) {
	tests := []struct {
		value    uint32
		srcWidth uint
		want     uint32
	}{
		{0x7FF, 12, 0x7FF},       // positive, no extension needed
		{0xFFF, 12, 0xFFFFFFFF},  // -1 in 12 bits
		{0x800, 12, 0xFFFFF800}, // most negative 12-bit value
		{0x1, 1, 0xFFFFFFFF},     // -1 in 1 bit
	}

	for _, tt := range tests {
		got := SignExtend32(tt.value, tt.srcWidth)
		if got != tt.want {
			t.Errorf("SignExtend32(0x%X,%d) = 0x%X, want 0x%X", tt.value, tt.srcWidth, got, tt.want)
		}
	}
}

func TestSignExtend64(t *testing.T) {
	got := SignExtend64(0xFFFFFFFF, 32)
	want := uint64(0xFFFFFFFFFFFFFFFF)
	if got != want {
		t.Errorf("SignExtend64 = 0x%X, want 0x%X", got, want)
	}
}
