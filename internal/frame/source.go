package frame

import "context"

// Store is the subset of frame-cache operations the prefetch worker depends
// on. Implementations must serialize these calls against concurrent reads
// from the playback consumer themselves; the worker assumes no exclusive
// access. Declared here, alongside Source, so that a Source can expose its
// bound Store without creating an import cycle between the frame and store
// packages.
type Store interface {
	// Contains reports whether index is currently cached.
	Contains(index Index) bool

	// Insert adds f, evicting by LRU as needed to respect MaxBytes.
	Insert(f Frame)

	// Touch refreshes index's LRU position without fetching it.
	Touch(index Index)

	// ClearAll evicts every cached frame.
	ClearAll()

	// MaxBytes returns the current byte budget. May change at runtime.
	MaxBytes() int64
}

// Source is a frame producer: a decoder or a composited timeline capable of
// synthesizing any frame by index on demand. Implementations must be safe
// for concurrent use by a single caller (the prefetch worker) while another
// goroutine may be reading the store the source is bound to.
type Source interface {
	// GetFrame returns the decoded frame at index. It returns ErrOutOfBounds
	// (wrapped in a *SourceError) if index is outside [1, MaxFrame()].
	GetFrame(ctx context.Context, index Index) (Frame, error)

	// MaxFrame returns the current timeline end. Queried once per worker
	// tick since a composited timeline's length may change as it is edited.
	MaxFrame(ctx context.Context) (Index, error)

	// FrameMetadata returns the shape of frames this source produces.
	FrameMetadata() Metadata

	// Store returns the FrameStore bound to this source, one-to-one.
	Store() Store
}
