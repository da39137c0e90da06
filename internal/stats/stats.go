// Package stats keeps rolling latency samples for section operations.
package stats

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp  time.Time
	durationUs int64
}

// Snapshot is a point-in-time aggregate of one operation's latency samples.
type Snapshot struct {
	Count int     `json:"count"`
	MinUs int64   `json:"min_us"`
	MaxUs int64   `json:"max_us"`
	AvgUs float64 `json:"avg_us"`
	P50Us float64 `json:"p50_us"`
	P95Us float64 `json:"p95_us"`
	P99Us float64 `json:"p99_us"`
}

// Recorder tracks recent latencies per operation name within a rolling window.
type Recorder struct {
	mu      sync.Mutex
	samples map[string][]sample
	maxAge  time.Duration
}

func NewRecorder(maxAge time.Duration) *Recorder {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Recorder{
		samples: make(map[string][]sample),
		maxAge:  maxAge,
	}
}

// Record adds one sample for op. A nil Recorder ignores samples.
func (r *Recorder) Record(op string, d time.Duration) {
	if r == nil {
		return
	}
	us := d.Microseconds()
	if us < 0 {
		us = 0
	}
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.samples[op] = append(prune(r.samples[op], now.Add(-r.maxAge)), sample{
		timestamp:  now,
		durationUs: us,
	})
}

// Time starts a measurement; call the returned func when op finishes.
func (r *Recorder) Time(op string) func() {
	start := time.Now()
	return func() { r.Record(op, time.Since(start)) }
}

// Snapshot aggregates the live samples of every operation.
func (r *Recorder) Snapshot() map[string]Snapshot {
	out := make(map[string]Snapshot)
	if r == nil {
		return out
	}
	cutoff := time.Now().Add(-r.maxAge)

	r.mu.Lock()
	defer r.mu.Unlock()

	for op, samples := range r.samples {
		samples = prune(samples, cutoff)
		r.samples[op] = samples
		if len(samples) == 0 {
			continue
		}
		out[op] = aggregate(samples)
	}
	return out
}

func aggregate(samples []sample) Snapshot {
	values := make([]int64, 0, len(samples))
	var sum int64
	for _, sm := range samples {
		values = append(values, sm.durationUs)
		sum += sm.durationUs
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	return Snapshot{
		Count: len(values),
		MinUs: values[0],
		MaxUs: values[len(values)-1],
		AvgUs: float64(sum) / float64(len(values)),
		P50Us: percentile(values, 50),
		P95Us: percentile(values, 95),
		P99Us: percentile(values, 99),
	}
}

// prune drops samples older than cutoff, reusing the backing array.
func prune(samples []sample, cutoff time.Time) []sample {
	writeIdx := 0
	for _, sm := range samples {
		if !sm.timestamp.Before(cutoff) {
			samples[writeIdx] = sm
			writeIdx++
		}
	}
	return samples[:writeIdx]
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
