// Package playhead holds PlayheadState: the small shared record tracking
// what the consumer wants (requested frame, speed, a one-shot seek flag)
// and what the prefetch worker has done about it (the last-cached cursor).
//
// Scalar fields are accessed with atomic load/store sufficient for their
// single-writer/single-reader usage (see doc comments per field): the
// consumer thread writes RequestedFrame, Speed, and the seek flag; the
// worker writes LastCachedIndex and clears the seek flag. No field requires
// a mutex.
package playhead
