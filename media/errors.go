package media

import (
	"errors"
	"fmt"
)

// ErrEndOfStream reports a read past the final frame. Not a failure:
// playback transitions to paused at end of stream
var ErrEndOfStream = errors.New("end of stream")

// DecodeError wraps a failure to decode one specific frame. The pipeline
// skips the frame and degrades to showing the best available one; nothing
// in the playback path treats this as fatal.
type DecodeError struct {
	Frame int
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode frame %d: %v", e.Frame, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// WrapDecode tags err with the frame index it occurred at. EndOfStream
// passes through untouched so callers can keep matching it with errors.Is
func WrapDecode(frame int, err error) error {
	if err == nil || errors.Is(err, ErrEndOfStream) {
		return err
	}
	return &DecodeError{Frame: frame, Err: err}
}

// IsDecodeFailure reports whether err is a per-frame decode failure
// (as opposed to end of stream or nil)
func IsDecodeFailure(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
