package store

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/golang-lru/simplelru"

	"github.com/oshotcore/playcache/internal/frame"
)

var _ frame.Store = (*Memory)(nil)

// unboundedLRUSize is simplelru's own count-based ceiling, set high enough
// that it never fires: eviction here is driven entirely by byte budget via
// evictToBudget, not by entry count.
const unboundedLRUSize = 1 << 30

// entry is the cached frame plus its own byte cost, so the eviction
// callback can decrement the running total without recomputing it.
type entry struct {
	f     frame.Frame
	bytes int64
}

// Memory is an in-memory, byte-budgeted LRU [Store]. It evicts the least
// recently touched frame whenever an insert would push total bytes over
// MaxBytes, mirroring libopenshot's CacheMemory. Recency tracking itself is
// delegated to simplelru.LRU; this type layers the byte budget on top via
// its eviction callback, the same pattern the pack's own frame-cache ports
// use hashicorp/golang-lru for.
type Memory struct {
	log *slog.Logger

	mu       sync.Mutex
	lru      *simplelru.LRU
	curBytes int64

	maxBytes atomic.Int64
}

// NewMemory creates a Memory store with the given byte budget. If log is
// nil, slog.Default() is used.
func NewMemory(maxBytes int64, log *slog.Logger) *Memory {
	if log == nil {
		log = slog.Default()
	}
	m := &Memory{
		log: log.With("component", "frame-store"),
	}
	m.maxBytes.Store(maxBytes)

	// The error return is only non-nil for size <= 0, which unboundedLRUSize
	// never triggers.
	l, _ := simplelru.NewLRU(unboundedLRUSize, m.onEvicted)
	m.lru = l
	return m
}

// onEvicted is simplelru's eviction callback, invoked whenever an entry
// leaves the cache via RemoveOldest — the only path evictToBudget uses.
// Caller already holds mu.
func (m *Memory) onEvicted(key, value interface{}) {
	ent := value.(*entry)
	m.curBytes -= ent.bytes
	m.log.Debug("evicted frame", "index", key, "bytes", ent.bytes)
}

// MaxBytes returns the current byte budget.
func (m *Memory) MaxBytes() int64 {
	return m.maxBytes.Load()
}

// SetMaxBytes changes the byte budget at runtime, evicting immediately if
// the new budget is below current usage.
func (m *Memory) SetMaxBytes(n int64) {
	m.maxBytes.Store(n)
	m.mu.Lock()
	m.evictToBudget()
	m.mu.Unlock()
}

// Contains reports whether index is currently cached.
func (m *Memory) Contains(index frame.Index) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lru.Contains(index)
}

// Insert adds f, evicting least-recently-touched frames as needed to stay
// within MaxBytes. If f is already present, it is replaced and moved to
// the front.
func (m *Memory) Insert(f frame.Frame) {
	cost := int64(len(f.Data))

	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.lru.Peek(f.Index); ok {
		m.curBytes -= old.(*entry).bytes
	}
	m.lru.Add(f.Index, &entry{f: f, bytes: cost})
	m.curBytes += cost
	m.evictToBudget()
}

// Touch refreshes index's LRU position without fetching it.
func (m *Memory) Touch(index frame.Index) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lru.Get(index)
}

// ClearAll evicts every cached frame.
func (m *Memory) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lru.Purge()
	m.curBytes = 0
}

// Count returns the number of frames currently cached. Test/diagnostic use.
func (m *Memory) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lru.Len()
}

// evictToBudget removes least-recently-used entries until curBytes fits
// within the configured budget. Caller must hold mu.
func (m *Memory) evictToBudget() {
	budget := m.maxBytes.Load()
	if budget <= 0 {
		return
	}
	for m.curBytes > budget {
		if _, _, ok := m.lru.RemoveOldest(); !ok {
			break
		}
	}
}
