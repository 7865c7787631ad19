// Package playcache implements a directional playback prefetch cache: a
// background worker that keeps a sliding window of decoded video/audio
// frames resident around a moving playhead so a rendering thread can pull
// frames without blocking on decode.
//
// The public surface re-exports the internal types a consumer needs
// (Frame, Source, FrameStore, Worker, Tunables) to avoid import cycles between
// the internal packages while keeping those packages private to this
// module. See internal/worker for the prefetch state machine and
// internal/policy for the pure windowing math.
package playcache

import (
	"context"
	"log/slog"
	"time"

	"github.com/oshotcore/playcache/internal/frame"
	"github.com/oshotcore/playcache/internal/store"
	"github.com/oshotcore/playcache/internal/worker"
)

// Frame is a single decoded video/audio unit, 1-based by Index.
type Frame = frame.Frame

// Index is a 1-based frame number.
type Index = frame.Index

// Metadata describes the shape of frames a Source produces.
type Metadata = frame.Metadata

// Source is a frame producer: a decoder or composited timeline that can
// synthesize any frame by index on demand, plus the Store it is bound to.
type Source = frame.Source

// FrameStore is the bounded, byte-budgeted cache contract the worker fills
// and a playback consumer reads from.
type FrameStore = frame.Store

// Tunables is the process-wide configuration the worker consults each
// tick: EnableCaching, MinPrerollFrames, MaxFramesHardCap, PercentAhead.
type Tunables = worker.Tunables

// DefaultTunables returns sensible defaults for a new Worker.
func DefaultTunables() Tunables {
	return worker.DefaultTunables()
}

// Memory is an in-memory, byte-budgeted LRU FrameStore implementation.
type Memory = store.Memory

// NewMemoryStore creates a Memory FrameStore with the given byte budget.
func NewMemoryStore(maxBytes int64, log *slog.Logger) *Memory {
	return store.NewMemory(maxBytes, log)
}

// ErrOutOfBounds is returned (wrapped) by a Source when the requested index
// falls outside its valid range.
var ErrOutOfBounds = frame.ErrOutOfBounds

// Worker is the background prefetch loop: one dedicated goroutine per
// playback session that keeps a caching window resident around the
// playhead, cooperating with seeks, pauses, and shutdown.
type Worker struct {
	w *worker.Worker
}

// New creates a Worker with the given tunables. If log is nil,
// slog.Default() is used.
func New(tunables Tunables, log *slog.Logger) *Worker {
	return &Worker{w: worker.New(tunables, log)}
}

// AttachSource binds a Source. May be called before Start, or while
// running to switch sources.
func (p *Worker) AttachSource(src Source) { p.w.AttachSource(src) }

// Start spawns the background loop and returns whether it is running.
func (p *Worker) Start(ctx context.Context) bool { return p.w.Start(ctx) }

// Stop requests the loop exit and waits up to timeout, returning whether
// it stopped in time.
func (p *Worker) Stop(timeout time.Duration) bool { return p.w.Stop(timeout) }

// Seek updates the requested playhead. When startPreroll is true, the
// worker also rebuilds its window around the new position, clearing the
// store first if the target frame isn't already cached.
func (p *Worker) Seek(idx Index, startPreroll bool) { p.w.Seek(idx, startPreroll) }

// SetSpeed sets playback speed/direction: positive forward, negative
// reverse, zero paused. Pausing preserves the last non-zero direction.
func (p *Worker) SetSpeed(speed int32) { p.w.SetSpeed(speed) }

// GetSpeed returns the current playback speed.
func (p *Worker) GetSpeed() int32 { return p.w.GetSpeed() }

// IsReady reports whether preroll has completed.
func (p *Worker) IsReady() bool { return p.w.IsReady() }

// SetTunables replaces the tunables snapshot consulted on the next tick.
func (p *Worker) SetTunables(t Tunables) { p.w.SetTunables(t) }
