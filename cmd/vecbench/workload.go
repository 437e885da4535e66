package main

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/INLOpen/simplevector"
)

// strategy names one allocator configuration for the benchmarked vectors.
type strategy struct {
	name string
	opts []simplevector.Option[int]
}

func strategies() []strategy {
	return []strategy{
		{"heap", nil},
		{"pool", []simplevector.Option[int]{simplevector.WithPool[int]()}},
		{"arena", []simplevector.Option[int]{
			simplevector.WithArena[int](1 << 16),
			simplevector.WithArenaGrowthFactor[int](2.0),
		}},
	}
}

// selectStrategies resolves a --strategy flag value; "all" selects every strategy.
func selectStrategies(name string) ([]strategy, error) {
	all := strategies()
	if name == "all" {
		return all, nil
	}
	names := make([]string, 0, len(all))
	for _, s := range all {
		if s.name == name {
			return []strategy{s}, nil
		}
		names = append(names, s.name)
	}
	return nil, fmt.Errorf("unknown strategy %q (want all, %s)", name, strings.Join(names, ", "))
}

// newVector builds a vector for s that logs through the CLI logger.
func newVector(s strategy) *simplevector.Vector[int] {
	opts := append([]simplevector.Option[int]{simplevector.WithLogger[int](logger)}, s.opts...)
	return simplevector.New(opts...)
}

// measurement is the outcome of one timed workload.
type measurement struct {
	dur        time.Duration
	totalAlloc int64
}

// measure runs fn after a GC and records its duration and heap allocation.
func measure(fn func() error) (measurement, error) {
	runtime.GC()
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	start := time.Now()

	err := fn()

	dur := time.Since(start)
	runtime.ReadMemStats(&after)
	return measurement{
		dur:        dur,
		totalAlloc: int64(after.TotalAlloc) - int64(before.TotalAlloc),
	}, err
}

// pushAll appends n values to v.
func pushAll(v *simplevector.Vector[int], n int) error {
	for i := 0; i < n; i++ {
		if err := v.PushBack(i); err != nil {
			return fmt.Errorf("push %d: %w", i, err)
		}
	}
	return nil
}

// churn inserts and then erases k elements at the front of v, exercising the
// shifting paths of Insert and Erase.
func churn(v *simplevector.Vector[int], k int) error {
	for i := 0; i < k; i++ {
		if _, err := v.Insert(0, -i); err != nil {
			return fmt.Errorf("insert %d: %w", i, err)
		}
	}
	for i := 0; i < k; i++ {
		v.Erase(0)
	}
	return nil
}

// snapshot is the last recorded state of a workload vector. The vector is
// owned by the workload goroutine; readers such as the expvar handler only
// ever see the snapshot.
type snapshot struct {
	mu       sync.Mutex
	strategy string
	length   int
	capacity int
	stats    simplevector.Stats
}

// snapshotView is the JSON shape published on /debug/vars.
type snapshotView struct {
	Strategy string
	Len, Cap int
	Stats    simplevector.Stats
}

func newSnapshot(strategy string) *snapshot {
	return &snapshot{strategy: strategy}
}

// record copies v's current state. It must run on the goroutine that owns v.
func (s *snapshot) record(v *simplevector.Vector[int]) {
	length, capacity, stats := v.Len(), v.Cap(), v.AllocStats()
	s.mu.Lock()
	s.length, s.capacity, s.stats = length, capacity, stats
	s.mu.Unlock()
}

// view returns the recorded state. Safe for concurrent use.
func (s *snapshot) view() snapshotView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotView{Strategy: s.strategy, Len: s.length, Cap: s.capacity, Stats: s.stats}
}
