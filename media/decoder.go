// Package media defines the decoding boundary of the pipeline. Actual
// codec work lives behind the Decoder interface; the pipeline only needs
// seek+read semantics and the guarantee that independently opened handles
// to the same source can be driven concurrently.
package media

import "github.com/lixenwraith/replay/core"

// Decoder is one handle onto a video source. A handle is single-threaded:
// the prefetcher and the UI thread each hold their own, which is what keeps
// their seek/read sequences from interleaving on shared decoder state.
type Decoder interface {
	// ReadNext decodes the frame at the current position and advances.
	// Returns ErrEndOfStream past the last frame
	ReadNext() (*core.PixelBuffer, error)

	// Seek positions the decoder so the next ReadNext yields index.
	// Seeking is materially more expensive than sequential reading for
	// most codecs; callers should prefer ReadNext when already adjacent
	Seek(index int) error

	// Position returns the index the next ReadNext would yield
	Position() int

	// TotalFrames returns the stream length in frames
	TotalFrames() int

	// Close releases the handle
	Close() error
}

// Source opens independent decoder handles onto one video file. The two
// handles the pipeline opens (UI fallback, prefetcher) must be readable
// concurrently without interfering.
type Source interface {
	OpenHandle() (Decoder, error)
	FPS() float64
}
