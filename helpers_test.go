package hlc

import (
	"sync"
	"testing"
	"time"
)

var baseTime = time.Date(2024, 1, 15, 10, 30, 0, 123000000, time.UTC)

// fakeWallClock is a settable wall clock for deterministic tests
type fakeWallClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeWallClock(now time.Time) *fakeWallClock {
	return &fakeWallClock{now: now}
}

func (f *fakeWallClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeWallClock) Set(now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
}

func (f *fakeWallClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestClock(t testing.TB, wall *fakeWallClock) *Clock {
	t.Helper()

	config := DefaultConfig()
	config.NodeID = "local"
	config.WallClock = wall.Now

	c, err := NewClock(config)
	if err != nil {
		t.Fatalf("NewClock: %v", err)
	}
	return c
}

func mustTimestamp(t testing.TB, wall time.Time, counter int, nodeID string) Timestamp {
	t.Helper()

	ts, err := NewTimestamp(wall, counter, nodeID)
	if err != nil {
		t.Fatalf("NewTimestamp: %v", err)
	}
	return ts
}
