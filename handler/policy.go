package handler

import (
	"sync/atomic"

	"github.com/philipp01105/nlogtree/core"
)

// OverflowPolicy defines how to handle full async queues
type OverflowPolicy int

const (
	// DropNewest drops the newest log record when queue is full
	DropNewest OverflowPolicy = iota
	// DropOldest drops the oldest log record when queue is full
	DropOldest
	// Block blocks the caller until space is available (with timeout)
	Block
)

// String returns the string representation of the policy
func (p OverflowPolicy) String() string {
	switch p {
	case DropNewest:
		return "DropNewest"
	case DropOldest:
		return "DropOldest"
	case Block:
		return "Block"
	default:
		return "Unknown"
	}
}

// LevelPolicy maps a rank threshold to the overflow policy applied to
// records ranked at or above it. The entry with the highest threshold not
// above a record's rank wins; records below every threshold use DropNewest.
type LevelPolicy map[int]OverflowPolicy

// For returns the policy for a record at level
func (p LevelPolicy) For(level core.Level) OverflowPolicy {
	policy, best, found := DropNewest, 0, false
	for threshold, pol := range p {
		if level.Rank >= threshold && (!found || threshold > best) {
			policy, best, found = pol, threshold, true
		}
	}
	return policy
}

// DefaultLevelPolicy drops records below ERROR and blocks for ERROR and
// above.
func DefaultLevelPolicy() LevelPolicy {
	return LevelPolicy{
		core.AllLevel.Rank:   DropNewest,
		core.ErrorLevel.Rank: Block,
	}
}

// Stats tracks handler statistics
type Stats struct {
	// dropped counts per predefined level band, indexed like core.Levels
	dropped [7]atomic.Uint64
	// blocked counts times logging blocked due to full queue
	blocked atomic.Uint64
	// processed counts total written records
	processed atomic.Uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// band returns the index of the highest predefined level not above level
func band(level core.Level) int {
	idx := 0
	for i, l := range core.Levels {
		if level.Rank >= l.Rank {
			idx = i
		}
	}
	return idx
}

// IncrementDropped atomically increments the dropped counter for a level
func (s *Stats) IncrementDropped(level core.Level) {
	s.dropped[band(level)].Add(1)
}

// IncrementBlocked atomically increments the blocked counter
func (s *Stats) IncrementBlocked() {
	s.blocked.Add(1)
}

// IncrementProcessed atomically increments the processed counter
func (s *Stats) IncrementProcessed() {
	s.processed.Add(1)
}

// GetDropped returns the dropped count for the band containing level
func (s *Stats) GetDropped(level core.Level) uint64 {
	return s.dropped[band(level)].Load()
}

// GetBlocked returns the blocked count
func (s *Stats) GetBlocked() uint64 {
	return s.blocked.Load()
}

// GetProcessed returns the processed count
func (s *Stats) GetProcessed() uint64 {
	return s.processed.Load()
}

// GetTotalDropped returns the total dropped across all levels
func (s *Stats) GetTotalDropped() uint64 {
	var total uint64
	for i := range s.dropped {
		total += s.dropped[i].Load()
	}
	return total
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	for i := range s.dropped {
		s.dropped[i].Store(0)
	}
	s.blocked.Store(0)
	s.processed.Store(0)
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	// DroppedTotal is keyed by predefined level name
	DroppedTotal   map[string]uint64
	BlockedTotal   uint64
	ProcessedTotal uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	dropped := make(map[string]uint64, len(core.Levels))
	for i, l := range core.Levels {
		dropped[l.Name] = s.dropped[i].Load()
	}
	return Snapshot{
		DroppedTotal:   dropped,
		BlockedTotal:   s.GetBlocked(),
		ProcessedTotal: s.GetProcessed(),
	}
}
