package aiff

import "testing"

func TestSwap16(t *testing.T) {
	tests := []struct {
		name string
		in   uint16
		want uint16
	}{
		{"zero", 0, 0},
		{"low byte", 0x00FF, 0xFF00},
		{"mixed", 0x1234, 0x3412},
		{"all ones", 0xFFFF, 0xFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Swap16(tt.in)
			if got != tt.want {
				t.Fatalf("Swap16(%#04x)=%#04x, want %#04x", tt.in, got, tt.want)
			}

			if back := Swap16(got); back != tt.in {
				t.Fatalf("Swap16 not an involution: %#04x -> %#04x", tt.in, back)
			}
		})
	}
}

func TestSwap32(t *testing.T) {
	tests := []struct {
		name string
		in   uint32
		want uint32
	}{
		{"zero", 0, 0},
		{"chunk size 18", 18, 0x12000000},
		{"mixed", 0x12345678, 0x78563412},
		{"high byte", 0xFF000000, 0x000000FF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Swap32(tt.in)
			if got != tt.want {
				t.Fatalf("Swap32(%#08x)=%#08x, want %#08x", tt.in, got, tt.want)
			}

			if back := Swap32(got); back != tt.in {
				t.Fatalf("Swap32 not an involution: %#08x -> %#08x", tt.in, back)
			}
		})
	}
}
