package core

import "testing"

func TestPixelBufferInvariant(t *testing.T) {
	b := NewPixelBuffer(16, 9)
	if err := b.Validate(); err != nil {
		t.Fatalf("fresh buffer failed validation: %v", err)
	}
	if got, want := len(b.Pix), 16*9*Channels; got != want {
		t.Errorf("expected %d bytes, got %d", want, got)
	}
	if b.Stride() != 16*Channels {
		t.Errorf("expected stride %d, got %d", 16*Channels, b.Stride())
	}
}

func TestPixelBufferCloneIsDeep(t *testing.T) {
	b := NewPixelBuffer(4, 4)
	b.Set(1, 1, RGB{200, 100, 50})

	c := b.Clone()
	c.Set(1, 1, RGB{1, 2, 3})

	if got := b.At(1, 1); got != (RGB{200, 100, 50}) {
		t.Errorf("mutating clone changed original: got %v", got)
	}
	if got := c.At(1, 1); got != (RGB{1, 2, 3}) {
		t.Errorf("clone did not take write: got %v", got)
	}
}

func TestPixelBufferOutOfBounds(t *testing.T) {
	b := NewPixelBuffer(2, 2)
	b.Set(-1, 0, RGBWhite)
	b.Set(0, 5, RGBWhite)
	for _, p := range b.Pix {
		if p != 0 {
			t.Fatal("out-of-bounds write leaked into buffer")
		}
	}
	if got := b.At(99, 99); got != RGBBlack {
		t.Errorf("out-of-bounds read should be black, got %v", got)
	}
}

func TestRGBRoundTrip(t *testing.T) {
	c := RGB{128, 0, 255}
	r, g, bl := c.Floats()
	back := FromFloats(r, g, bl)
	if back != c {
		t.Errorf("float round trip changed color: %v -> %v", c, back)
	}

	// Clamping
	if got := FromFloats(2.0, -1.0, 0.5); got.R != 255 || got.G != 0 {
		t.Errorf("expected clamped conversion, got %v", got)
	}
}
