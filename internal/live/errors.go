package live

import "fmt"

// FrameError reports the cell at which a frame was aborted.
type FrameError struct {
	Index   int
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame aborted at cell %d: %v", e.Index, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
