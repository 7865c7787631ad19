// Package policy implements the prefetch worker's pure, side-effect-free
// decision functions: direction derivation, window-bounds computation,
// per-frame byte estimation, and capacity/ahead-count arithmetic. These are
// total functions over plain values and are the primary unit-testing
// surface for the caching behavior, mirroring libopenshot's
// VideoCacheThread helper methods (computeDirection, computeWindowBounds,
// getBytes).
package policy
