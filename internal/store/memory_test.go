package store

import (
	"testing"

	"github.com/oshotcore/playcache/internal/frame"
)

func mkFrame(idx frame.Index, n int) frame.Frame {
	return frame.Frame{Index: idx, Data: make([]byte, n)}
}

func TestMemory_InsertContainsTouch(t *testing.T) {
	t.Parallel()

	m := NewMemory(1000, nil)
	if m.Contains(1) {
		t.Fatal("expected empty store to not contain frame 1")
	}

	m.Insert(mkFrame(1, 10))
	if !m.Contains(1) {
		t.Fatal("expected store to contain frame 1 after insert")
	}

	m.Touch(1) // no-op assertion: must not panic, must remain present
	if !m.Contains(1) {
		t.Fatal("touch should not evict")
	}
}

func TestMemory_ClearAll(t *testing.T) {
	t.Parallel()

	m := NewMemory(1000, nil)
	m.Insert(mkFrame(1, 10))
	m.Insert(mkFrame(2, 10))
	if m.Count() != 2 {
		t.Fatalf("Count: got %d, want 2", m.Count())
	}

	m.ClearAll()
	if m.Count() != 0 {
		t.Fatalf("Count after ClearAll: got %d, want 0", m.Count())
	}
	if m.Contains(1) || m.Contains(2) {
		t.Fatal("expected no frames present after ClearAll")
	}
}

func TestMemory_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	// Budget for exactly 2 frames of 10 bytes each.
	m := NewMemory(20, nil)
	m.Insert(mkFrame(1, 10))
	m.Insert(mkFrame(2, 10))

	// Touch 1 so it's more recently used than 2.
	m.Touch(1)

	// Inserting a third frame must evict 2 (least recently used), not 1.
	m.Insert(mkFrame(3, 10))

	if !m.Contains(1) {
		t.Error("expected frame 1 (recently touched) to survive eviction")
	}
	if m.Contains(2) {
		t.Error("expected frame 2 (least recently used) to be evicted")
	}
	if !m.Contains(3) {
		t.Error("expected newly inserted frame 3 to be present")
	}
	if m.Count() != 2 {
		t.Errorf("Count: got %d, want 2", m.Count())
	}
}

func TestMemory_MaxBytesAndSetMaxBytes(t *testing.T) {
	t.Parallel()

	m := NewMemory(100, nil)
	if m.MaxBytes() != 100 {
		t.Fatalf("MaxBytes: got %d, want 100", m.MaxBytes())
	}

	m.Insert(mkFrame(1, 50))
	m.Insert(mkFrame(2, 50))
	if m.Count() != 2 {
		t.Fatalf("Count: got %d, want 2", m.Count())
	}

	// Shrinking the budget below current usage must evict immediately.
	m.SetMaxBytes(50)
	if m.Count() != 1 {
		t.Fatalf("Count after shrink: got %d, want 1", m.Count())
	}
}

func TestMemory_ReinsertReplacesEntryAndBytes(t *testing.T) {
	t.Parallel()

	m := NewMemory(1000, nil)
	m.Insert(mkFrame(1, 10))
	m.Insert(mkFrame(1, 30))

	if m.Count() != 1 {
		t.Fatalf("Count: got %d, want 1", m.Count())
	}
	if m.curBytes != 30 {
		t.Fatalf("curBytes: got %d, want 30 (replace, not add)", m.curBytes)
	}
}
