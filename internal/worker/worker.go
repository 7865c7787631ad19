package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oshotcore/playcache/internal/frame"
	"github.com/oshotcore/playcache/internal/playhead"
	"github.com/oshotcore/playcache/internal/policy"
)

// idlePollInterval is how long the worker sleeps when caching is disabled,
// no source is attached, or capacity is degenerate — matching
// VideoCacheThread's 50ms idle sleep.
const idlePollInterval = 50 * time.Millisecond

// Worker is PrefetchWorker: a single dedicated loop per playback session
// that keeps a sliding window of frames resident around the playhead. It
// spawns no further goroutines of its own.
type Worker struct {
	log      *slog.Logger
	state    *playhead.State
	tunables atomic.Pointer[Tunables]

	srcMu  sync.RWMutex
	source frame.Source

	cancel  context.CancelFunc
	stopped chan struct{}
	running atomic.Bool
}

// New creates a Worker with the given tunables. If log is nil,
// slog.Default() is used.
func New(tunables Tunables, log *slog.Logger) *Worker {
	if log == nil {
		log = slog.Default()
	}
	w := &Worker{
		log:   log.With("component", "prefetch-worker"),
		state: playhead.New(),
	}
	w.tunables.Store(&tunables)
	return w
}

// State exposes the underlying PlayheadState for tests and advanced
// callers; ordinary consumers should prefer Seek/SetSpeed/GetSpeed/IsReady.
func (w *Worker) State() *playhead.State {
	return w.state
}

// SetTunables replaces the tunables snapshot the worker consults on its
// next tick.
func (w *Worker) SetTunables(t Tunables) {
	w.tunables.Store(&t)
}

func (w *Worker) tunablesSnapshot() Tunables {
	return *w.tunables.Load()
}

// AttachSource binds a frame.Source. May be called before Start, or while
// running to switch sources (e.g. a new timeline).
func (w *Worker) AttachSource(src frame.Source) {
	w.srcMu.Lock()
	w.source = src
	w.srcMu.Unlock()
}

func (w *Worker) currentSource() frame.Source {
	w.srcMu.RLock()
	defer w.srcMu.RUnlock()
	return w.source
}

// Seek updates the requested playhead. The preroll form additionally
// arranges for the worker to rebuild its window around the new position;
// see playhead.State.Seek.
func (w *Worker) Seek(idx frame.Index, startPreroll bool) {
	src := w.currentSource()
	var fs frame.Store
	if src != nil {
		fs = src.Store()
	}
	w.state.Seek(idx, startPreroll, fs)
}

// SetSpeed sets playback speed/direction (see playhead.State.SetSpeed).
func (w *Worker) SetSpeed(speed int32) {
	w.state.SetSpeed(speed)
}

// GetSpeed returns the current playback speed.
func (w *Worker) GetSpeed() int32 {
	return w.state.GetSpeed()
}

// IsReady reports whether preroll has completed, per the current tunables'
// MinPrerollFrames threshold.
func (w *Worker) IsReady() bool {
	return w.state.IsReady(w.tunablesSnapshot().MinPrerollFrames)
}

// Start spawns the background loop and returns whether it is running.
// Calling Start on an already-running Worker is a no-op and returns true.
func (w *Worker) Start(ctx context.Context) bool {
	if w.running.Load() {
		return true
	}
	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.stopped = make(chan struct{})
	w.running.Store(true)

	go w.run(runCtx)

	return w.running.Load()
}

// Stop requests the loop exit and waits up to timeout for it to do so,
// returning whether it stopped in time.
func (w *Worker) Stop(timeout time.Duration) bool {
	if !w.running.Load() {
		return true
	}
	w.cancel()

	select {
	case <-w.stopped:
		return true
	case <-time.After(timeout):
		w.log.Warn("worker did not stop within timeout", "timeout", timeout)
		return false
	}
}

// run is the per-tick state machine: read tunables and playhead, derive the
// caching window, fill it from source into store, and sleep.
func (w *Worker) run(ctx context.Context) {
	defer w.running.Store(false)
	defer close(w.stopped)

	for {
		if ctx.Err() != nil {
			return
		}

		t := w.tunablesSnapshot()
		src := w.currentSource()

		if !t.EnableCaching || src == nil {
			if !w.sleep(ctx, idlePollInterval) {
				return
			}
			continue
		}

		fs := src.Store()
		if fs == nil {
			if !w.sleep(ctx, idlePollInterval) {
				return
			}
			continue
		}

		timelineEnd, err := src.MaxFrame(ctx)
		if err != nil {
			w.log.Warn("failed to query timeline end", "error", err)
			if !w.sleep(ctx, idlePollInterval) {
				return
			}
			continue
		}

		meta := src.FrameMetadata()
		bpf := policy.BytesPerFrame(meta.EffectiveWidth(), meta.EffectiveHeight(), meta.SampleRate, meta.Channels, meta.FPS)
		capacity := policy.Capacity(fs.MaxBytes(), bpf, t.MaxFramesHardCap)
		if capacity < 1 {
			if !w.sleep(ctx, idlePollInterval) {
				return
			}
			continue
		}

		playheadIdx := w.state.RequestedFrame()
		speed := w.state.GetSpeed()
		paused := speed == 0
		dir := policy.ComputeDirection(speed, w.state.LastNonzeroDir())
		if !paused {
			w.state.SetLastNonzeroDir(dir)
		}

		if w.state.UserSeekPending() {
			w.state.SetLastCachedIndex(playheadIdx - frame.Index(dir))
			w.state.ClearUserSeekPending()
		} else if !paused {
			base := policy.AheadCount(capacity, t.PercentAhead)
			win := policy.ComputeWindow(playheadIdx, dir, base, timelineEnd)
			lastCached := w.state.LastCachedIndex()
			outsideWindow := (dir > 0 && lastCached > win.End) || (dir < 0 && lastCached < win.Begin)
			if outsideWindow {
				w.state.SetLastCachedIndex(playheadIdx - frame.Index(dir))
			}
		}

		ahead := policy.AheadCount(capacity, t.PercentAhead)

		w.clearCacheIfPaused(playheadIdx, paused, fs, dir)

		win := policy.ComputeWindow(playheadIdx, dir, ahead, timelineEnd)
		windowFull := w.prefetchWindow(ctx, src, fs, win, dir)

		if paused && windowFull {
			fs.Touch(playheadIdx)
		}

		period := framePeriod(meta.FPS)
		if !w.sleep(ctx, period/4) {
			return
		}
	}
}

// clearCacheIfPaused evicts everything and reseats the cursor when paused
// and the playhead has fallen out of cache — e.g. external memory pressure
// evicted it, or a clear happened for an unrelated reason. Returns whether
// it cleared.
func (w *Worker) clearCacheIfPaused(playheadIdx frame.Index, paused bool, fs frame.Store, dir policy.Direction) bool {
	if paused && !fs.Contains(playheadIdx) {
		fs.ClearAll()
		w.state.SetLastCachedIndex(playheadIdx - frame.Index(dir))
		return true
	}
	return false
}

// prefetchWindow fills missing frames in [win.Begin, win.End] starting just
// past the cursor, in direction dir, stopping on shutdown, a fresh seek, or
// the source reporting out-of-bounds. It returns true if the window was
// already fully cached (no new frame was inserted).
func (w *Worker) prefetchWindow(ctx context.Context, src frame.Source, fs frame.Store, win policy.Window, dir policy.Direction) bool {
	full := true
	cursor := w.state.LastCachedIndex() + frame.Index(dir)

	for (dir > 0 && cursor <= win.End) || (dir < 0 && cursor >= win.Begin) {
		if ctx.Err() != nil {
			break
		}
		if w.state.UserSeekPending() {
			break
		}

		if !fs.Contains(cursor) {
			f, err := src.GetFrame(ctx, cursor)
			if err != nil {
				if errors.Is(err, frame.ErrOutOfBounds) {
					break
				}
				// A non-out-of-bounds source failure logs and continues rather
				// than terminating the worker. Only this window-fill ends early;
				// cache invariants are untouched and the next tick retries.
				w.log.Warn("source failure during prefetch", "index", cursor, "error", err)
				break
			}
			fs.Insert(f)
			w.state.RecordInsert()
			full = false
		} else {
			fs.Touch(cursor)
		}

		w.state.SetLastCachedIndex(cursor)
		cursor += frame.Index(dir)
	}

	return full
}

// sleep waits for d or ctx cancellation, returning false if ctx was
// cancelled first.
func (w *Worker) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		d = idlePollInterval
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// framePeriod returns the duration of one frame at fps, falling back to a
// conservative 24fps assumption if fps is non-positive.
func framePeriod(fps float64) time.Duration {
	if fps <= 0 {
		fps = 24
	}
	return time.Duration(float64(time.Second) / fps)
}
