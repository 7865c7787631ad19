package policy

import (
	"math"

	"github.com/oshotcore/playcache/internal/frame"
)

// Direction is the sign of intended playhead motion: +1 forward, -1 reverse.
type Direction int

const (
	Forward Direction = 1
	Reverse Direction = -1
)

// Window is a closed interval [Begin, End] of frame indices the worker
// tries to keep resident around the playhead.
type Window struct {
	Begin frame.Index
	End   frame.Index
}

// ComputeDirection returns sign(speed) if speed is non-zero, else
// lastNonzeroDir. Pausing (speed == 0) must never change the derived
// direction, so that the window does not snap to the other side of the
// playhead.
func ComputeDirection(speed int32, lastNonzeroDir Direction) Direction {
	switch {
	case speed > 0:
		return Forward
	case speed < 0:
		return Reverse
	default:
		return lastNonzeroDir
	}
}

// ComputeWindow derives the caching window for the given playhead,
// direction, and ahead count, clamped to [1, timelineEnd].
//
//   - dir > 0: [playhead, playhead+ahead]
//   - dir < 0: [playhead-ahead, playhead]
func ComputeWindow(playhead frame.Index, dir Direction, ahead int64, timelineEnd frame.Index) Window {
	var w Window
	if dir > 0 {
		w = Window{Begin: playhead, End: playhead + frame.Index(ahead)}
	} else {
		w = Window{Begin: playhead - frame.Index(ahead), End: playhead}
	}

	if w.Begin > timelineEnd {
		w.Begin = timelineEnd
	}
	if w.Begin < 1 {
		w.Begin = 1
	}
	if w.End > timelineEnd {
		w.End = timelineEnd
	}
	if w.End < w.Begin {
		w.End = w.Begin
	}
	return w
}

// BytesPerFrame estimates the memory cost of a single frame: an RGBA video
// buffer plus an approximation of the interleaved audio samples one video
// frame interval covers.
func BytesPerFrame(width, height, sampleRate, channels int, fps float64) int64 {
	if fps <= 0 {
		return 0
	}
	videoBytes := int64(width) * int64(height) * 4
	audioSamplesPerFrame := int64(float64(sampleRate*channels) / fps)
	audioBytes := audioSamplesPerFrame * 4
	return videoBytes + audioBytes
}

// Capacity returns how many frames fit in maxBytes at bytesPerFrame cost,
// capped by hardCap. Returns 0 if either input is non-positive, a
// degenerate capacity the worker treats as "sleep and retry."
func Capacity(maxBytes, bytesPerFrame, hardCap int64) int64 {
	if maxBytes <= 0 || bytesPerFrame <= 0 {
		return 0
	}
	c := maxBytes / bytesPerFrame
	if hardCap > 0 && c > hardCap {
		c = hardCap
	}
	return c
}

// AheadCount returns how many frames of capacity are placed in the
// direction of travel.
func AheadCount(capacity int64, percentAhead float64) int64 {
	return int64(math.Floor(float64(capacity) * percentAhead))
}
