package frame

import (
	"errors"
	"fmt"
)

// Sentinel errors a Source reports. These enable callers, and the prefetch
// worker itself, to distinguish failure modes using errors.Is.
var (
	// ErrOutOfBounds indicates the requested index falls outside
	// [1, MaxFrame()]. The worker treats this as routine: it ends the
	// current window fill without disturbing cache invariants.
	ErrOutOfBounds = errors.New("frame: index out of bounds")

	// ErrSourceUnavailable indicates no Source is currently attached, or
	// the attached Source has no bound store.
	ErrSourceUnavailable = errors.New("frame: source unavailable")
)

// SourceError wraps a failure from Source.GetFrame with the index that was
// being fetched, so callers can log or retry with context. It unwraps to
// the underlying cause, which may be ErrOutOfBounds or an arbitrary decode
// failure.
type SourceError struct {
	Index Index
	Err   error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("frame: get frame %d: %v", e.Index, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
