// Package store implements the bounded, byte-budgeted frame cache the
// prefetch worker fills and the playback consumer reads from. [Store] is
// the narrow contract the worker depends on (contains/insert/touch/clear);
// [Memory] is an in-process LRU implementation of it, evicting the least
// recently touched frame whenever inserting would exceed MaxBytes.
//
// Memory is shared: insert/contains/touch calls from the prefetch worker
// are serialized against consumer reads by Memory's own lock.
package store
