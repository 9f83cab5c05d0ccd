package stats

import (
	"fmt"
	"sync"
	"time"
)

// Snapshot represents the rig status at a point in time. A Snapshot handed
// out by the Store is never mutated afterwards, so it may be shared by
// pointer between goroutines.
type Snapshot struct {
	Stats               Stats
	HasStats            bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the stats endpoint has been unreachable for
// multiple polls.
func (s *Snapshot) IsOffline() bool {
	return s != nil && s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot. It has a single
// writer (the producer) and any number of readers.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored stats. When err is non-nil the previous stats
// are kept but the error is recorded for visibility.
func (s *Store) Update(stats *Stats, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	if stats != nil {
		s.snapshot.Stats = cloneStats(*stats)
		s.snapshot.HasStats = true
	} else {
		s.snapshot.Stats = Stats{}
		s.snapshot.HasStats = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot, waiting for the read lock.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

// TrySnapshot returns a copy of the current snapshot without waiting. It
// reports false when a writer holds the lock.
func (s *Store) TrySnapshot() (*Snapshot, bool) {
	if !s.mu.TryRLock() {
		return nil, false
	}
	defer s.mu.RUnlock()
	return s.copyLocked(), true
}

func (s *Store) copyLocked() *Snapshot {
	snap := s.snapshot
	snap.Stats = cloneStats(s.snapshot.Stats)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return &snap
}

func cloneStats(in Stats) Stats {
	out := in
	if len(in.Mining.Devices) == 0 {
		out.Mining.Devices = nil
		return out
	}
	out.Mining.Devices = make([]SolverStats, len(in.Mining.Devices))
	copy(out.Mining.Devices, in.Mining.Devices)
	return out
}
