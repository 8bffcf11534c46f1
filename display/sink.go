// Package display is the presentation boundary: the pipeline hands
// composited frames to a Sink, and Scale adapts them to a viewport.
package display

import "github.com/lixenwraith/replay/core"

// Sink consumes composited frames. Present is called from the scheduler
// goroutine and must not block for long; a slow sink slows playback
type Sink interface {
	Present(frameIndex int, buf *core.PixelBuffer)
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(frameIndex int, buf *core.PixelBuffer)

// Present implements Sink
func (f SinkFunc) Present(frameIndex int, buf *core.PixelBuffer) {
	f(frameIndex, buf)
}
