package playhead

import (
	"sync/atomic"

	"github.com/oshotcore/playcache/internal/frame"
	"github.com/oshotcore/playcache/internal/policy"
	"github.com/oshotcore/playcache/internal/store"
)

// State is PlayheadState: the requested playhead, current speed,
// derived-direction memory, a one-shot user-seek flag, and the worker's
// cursor through the caching window.
type State struct {
	requestedFrame  atomic.Int64
	speed           atomic.Int32
	lastNonzeroDir  atomic.Int32
	userSeekPending atomic.Bool
	lastCachedIndex atomic.Int64
	insertedCount   atomic.Int64
}

// New creates a State with the playhead at frame 1 and an assumed forward
// direction, matching VideoCacheThread's constructor defaults
// (last_dir = 1 on first launch).
func New() *State {
	s := &State{}
	s.requestedFrame.Store(1)
	s.lastNonzeroDir.Store(int32(policy.Forward))
	return s
}

// SetSpeed updates the playback speed. If newSpeed is non-zero, the derived
// direction memory is updated to its sign; if zero (pause), direction
// memory is left untouched so that pausing never flips the caching window
// to the other side of the playhead.
func (s *State) SetSpeed(newSpeed int32) {
	if newSpeed != 0 {
		if newSpeed > 0 {
			s.lastNonzeroDir.Store(int32(policy.Forward))
		} else {
			s.lastNonzeroDir.Store(int32(policy.Reverse))
		}
	}
	s.speed.Store(newSpeed)
}

// GetSpeed returns the current playback speed.
func (s *State) GetSpeed() int32 {
	return s.speed.Load()
}

// LastNonzeroDir returns the direction memory preserved across pauses.
func (s *State) LastNonzeroDir() policy.Direction {
	return policy.Direction(s.lastNonzeroDir.Load())
}

// SetLastNonzeroDir overwrites the direction memory directly. Worker-owned;
// SetSpeed already keeps this field current on every speed change, so this
// is a belt-and-suspenders re-assignment the worker performs once per
// non-paused tick rather than the sole writer of the field.
func (s *State) SetLastNonzeroDir(dir policy.Direction) {
	s.lastNonzeroDir.Store(int32(dir))
}

// RequestedFrame returns the frame the consumer currently wants.
func (s *State) RequestedFrame() frame.Index {
	return frame.Index(s.requestedFrame.Load())
}

// Seek sets the requested playhead. When startPreroll is true, it also
// raises the one-shot user-seek flag and, if fs does not already contain
// the target frame, clears fs entirely — forcing the worker to rebuild its
// window from scratch around the new position rather than trickle frames
// in from a stale window. The non-preroll form (startPreroll == false)
// updates only the requested frame.
func (s *State) Seek(idx frame.Index, startPreroll bool, fs store.Store) {
	s.requestedFrame.Store(int64(idx))
	if !startPreroll {
		return
	}
	s.userSeekPending.Store(true)
	if fs != nil && !fs.Contains(idx) {
		fs.ClearAll()
	}
}

// UserSeekPending reports whether a preroll seek is awaiting the worker's
// attention.
func (s *State) UserSeekPending() bool {
	return s.userSeekPending.Load()
}

// ClearUserSeekPending lowers the one-shot seek flag. Called by the worker
// once it has reseated its cursor in response.
func (s *State) ClearUserSeekPending() {
	s.userSeekPending.Store(false)
}

// LastCachedIndex returns the worker's cursor through the caching window.
func (s *State) LastCachedIndex() frame.Index {
	return frame.Index(s.lastCachedIndex.Load())
}

// SetLastCachedIndex updates the worker's cursor. Worker-owned; the
// consumer never calls this.
func (s *State) SetLastCachedIndex(idx frame.Index) {
	s.lastCachedIndex.Store(int64(idx))
}

// RecordInsert increments the cumulative inserted-frame count used by
// IsReady. Called by the worker once per frame it inserts into the store.
func (s *State) RecordInsert() {
	s.insertedCount.Add(1)
}

// IsReady reports whether the cumulative number of frames inserted since
// start exceeds minPrerollFrames, the preroll readiness predicate.
func (s *State) IsReady(minPrerollFrames int64) bool {
	return s.insertedCount.Load() > minPrerollFrames
}
