// Package worker implements PrefetchWorker: the background loop that reads
// playhead.State, consults policy's pure functions, and transfers frames
// from a frame.Source into its bound frame.Store, responding to seeks and
// shutdown. It is the orchestration layer tying frame, store, playhead,
// and policy together; see libopenshot's VideoCacheThread::run for the
// reference it's ported from.
package worker
