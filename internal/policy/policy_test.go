package policy

import (
	"testing"

	"github.com/oshotcore/playcache/internal/frame"
)

func TestComputeDirection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		speed          int32
		lastNonzeroDir Direction
		want           Direction
	}{
		{"positive speed forward", 3, Forward, Forward},
		{"negative speed reverse", -2, Forward, Reverse},
		{"paused preserves forward", 0, Forward, Forward},
		{"paused preserves reverse", 0, Reverse, Reverse},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ComputeDirection(tt.speed, tt.lastNonzeroDir); got != tt.want {
				t.Errorf("ComputeDirection(%d, %d) = %d, want %d", tt.speed, tt.lastNonzeroDir, got, tt.want)
			}
		})
	}
}

func TestComputeWindow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		playhead    frame.Index
		dir         Direction
		ahead       int64
		timelineEnd frame.Index
		want        Window
	}{
		{"forward normal", 10, Forward, 5, 50, Window{10, 15}},
		{"forward clamp at end", 47, Forward, 10, 50, Window{47, 50}},
		{"backward normal", 20, Reverse, 7, 100, Window{13, 20}},
		{"backward clamp at start", 3, Reverse, 10, 100, Window{1, 3}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ComputeWindow(tt.playhead, tt.dir, tt.ahead, tt.timelineEnd)
			if got != tt.want {
				t.Errorf("ComputeWindow(%d,%d,%d,%d) = %+v, want %+v",
					tt.playhead, tt.dir, tt.ahead, tt.timelineEnd, got, tt.want)
			}
			if got.Begin < 1 || got.Begin > got.End || got.End > tt.timelineEnd {
				t.Errorf("window clamp invariant violated: %+v", got)
			}
		})
	}
}

func TestBytesPerFrame(t *testing.T) {
	t.Parallel()

	// 1280x720 RGBA + 48kHz stereo audio at 24fps.
	got := BytesPerFrame(1280, 720, 48000, 2, 24)
	wantVideo := int64(1280 * 720 * 4)
	wantAudio := int64(float64(48000*2)/24) * 4
	if want := wantVideo + wantAudio; got != want {
		t.Errorf("BytesPerFrame = %d, want %d", got, want)
	}

	if got := BytesPerFrame(100, 100, 48000, 2, 0); got != 0 {
		t.Errorf("BytesPerFrame with fps=0 = %d, want 0", got)
	}
}

func TestCapacity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		maxBytes      int64
		bytesPerFrame int64
		hardCap       int64
		want          int64
	}{
		{"normal", 1000, 100, 50, 10},
		{"hard cap applies", 1000, 10, 50, 50},
		{"zero max bytes", 0, 100, 50, 0},
		{"negative bytes per frame", 1000, -1, 50, 0},
		{"no hard cap", 1000, 100, 0, 10},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Capacity(tt.maxBytes, tt.bytesPerFrame, tt.hardCap); got != tt.want {
				t.Errorf("Capacity(%d,%d,%d) = %d, want %d",
					tt.maxBytes, tt.bytesPerFrame, tt.hardCap, got, tt.want)
			}
		})
	}
}

func TestAheadCount(t *testing.T) {
	t.Parallel()

	if got := AheadCount(10, 1.0); got != 10 {
		t.Errorf("AheadCount(10, 1.0) = %d, want 10", got)
	}
	if got := AheadCount(10, 0.5); got != 5 {
		t.Errorf("AheadCount(10, 0.5) = %d, want 5", got)
	}
	if got := AheadCount(7, 0.5); got != 3 {
		t.Errorf("AheadCount(7, 0.5) = %d, want 3 (floor)", got)
	}
}
