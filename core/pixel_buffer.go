package core

import "fmt"

// Channels is the number of color channels per pixel (packed RGB)
const Channels = 3

// PixelBuffer is a 2D RGB raster with row-major packed pixels.
// Buffers held by a cache are treated as immutable: anything that needs to
// draw takes a Clone first. Sharing the pointer is therefore always safe.
type PixelBuffer struct {
	W, H int
	Pix  []byte // len == W*H*Channels, stride == W*Channels
}

// NewPixelBuffer allocates a zeroed (black) buffer of the given dimensions
func NewPixelBuffer(w, h int) *PixelBuffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &PixelBuffer{
		W:   w,
		H:   h,
		Pix: make([]byte, w*h*Channels),
	}
}

// Stride returns the byte width of one row
func (b *PixelBuffer) Stride() int {
	return b.W * Channels
}

// Validate checks the length invariant, useful at decode boundaries
func (b *PixelBuffer) Validate() error {
	if want := b.W * b.H * Channels; len(b.Pix) != want {
		return fmt.Errorf("pixel buffer %dx%d: have %d bytes, want %d", b.W, b.H, len(b.Pix), want)
	}
	return nil
}

// Clone returns a deep copy for copy-on-write hand-off.
// Compositing always writes into a clone, never into a cached buffer.
func (b *PixelBuffer) Clone() *PixelBuffer {
	out := &PixelBuffer{
		W:   b.W,
		H:   b.H,
		Pix: make([]byte, len(b.Pix)),
	}
	copy(out.Pix, b.Pix)
	return out
}

// At returns the pixel at (x, y). Out-of-bounds reads return black
func (b *PixelBuffer) At(x, y int) RGB {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return RGB{}
	}
	i := (y*b.W + x) * Channels
	return RGB{b.Pix[i], b.Pix[i+1], b.Pix[i+2]}
}

// Set writes the pixel at (x, y). Out-of-bounds writes are dropped
func (b *PixelBuffer) Set(x, y int, c RGB) {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return
	}
	i := (y*b.W + x) * Channels
	b.Pix[i] = c.R
	b.Pix[i+1] = c.G
	b.Pix[i+2] = c.B
}

// Fill paints the whole buffer with one color
func (b *PixelBuffer) Fill(c RGB) {
	for i := 0; i < len(b.Pix); i += Channels {
		b.Pix[i] = c.R
		b.Pix[i+1] = c.G
		b.Pix[i+2] = c.B
	}
}

// Equal reports whether two buffers have identical dimensions and pixels
func (b *PixelBuffer) Equal(other *PixelBuffer) bool {
	if b.W != other.W || b.H != other.H || len(b.Pix) != len(other.Pix) {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}
