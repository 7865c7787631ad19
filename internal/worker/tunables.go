package worker

// Tunables is the process-wide configuration the worker consults once per
// tick. Rather than a global singleton, each Worker holds its own snapshot,
// updated atomically by SetTunables — avoiding the lifetime issues a
// process-wide singleton settings object would carry.
type Tunables struct {
	// EnableCaching is the master switch; false makes the worker idle.
	EnableCaching bool

	// MinPrerollFrames is the IsReady threshold: the cache is "ready" once
	// more than this many frames have been inserted since start.
	MinPrerollFrames int64

	// MaxFramesHardCap is an absolute ceiling on derived capacity.
	MaxFramesHardCap int64

	// PercentAhead in (0, 1] is the fraction of capacity placed in the
	// direction of travel.
	PercentAhead float64
}

// DefaultTunables returns sensible defaults matching libopenshot's Settings
// defaults (4-frame preroll, a 500-frame hard cap on top of the byte
// budget, entirely ahead-weighted window).
func DefaultTunables() Tunables {
	return Tunables{
		EnableCaching:    true,
		MinPrerollFrames: 4,
		MaxFramesHardCap: 500,
		PercentAhead:     1.0,
	}
}
