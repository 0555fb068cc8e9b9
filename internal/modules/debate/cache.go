package debate

import (
	"fmt"
	"math"
	"sync/atomic"
)

// CacheStats observes the upstream prompt cache: one hit or miss is
// recorded per persona call depending on whether the service reported a
// cache read. Counters are process-wide and monotonically non-decreasing.
type CacheStats struct {
	hits   atomic.Int64
	misses atomic.Int64
}

func NewCacheStats() *CacheStats { return &CacheStats{} }

func (s *CacheStats) RecordHit()  { s.hits.Add(1) }
func (s *CacheStats) RecordMiss() { s.misses.Add(1) }

// StatsSnapshot is a point-in-time copy of the counters.
type StatsSnapshot struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

func (s *CacheStats) Snapshot() StatsSnapshot {
	return StatsSnapshot{Hits: s.hits.Load(), Misses: s.misses.Load()}
}

// Efficiency summarizes cache performance for API responses.
type Efficiency struct {
	CacheHits            int64   `json:"cache_hits"`
	CacheMisses          int64   `json:"cache_misses"`
	HitRatePercent       float64 `json:"hit_rate_percent"`
	EstimatedCostSavings string  `json:"estimated_cost_savings"`
}

// Efficiency computes hit rate and estimated savings. Zero total calls
// yields 0% across the board.
func (s *CacheStats) Efficiency() Efficiency {
	snap := s.Snapshot()
	total := snap.Hits + snap.Misses

	var hitRate, savings float64
	if total > 0 {
		hitRate = float64(snap.Hits) / float64(total) * 100
		savings = math.Round(hitRate * 0.9)
	}

	return Efficiency{
		CacheHits:            snap.Hits,
		CacheMisses:          snap.Misses,
		HitRatePercent:       math.Round(hitRate*10) / 10,
		EstimatedCostSavings: fmt.Sprintf("%d%%", int(savings)),
	}
}
