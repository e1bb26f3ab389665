package parallel

import (
	"sync/atomic"
	"testing"
)

func TestParallelizeCoversEveryIndexOnce(t *testing.T) {
	const items = 1000
	visits := make([]int32, items)

	Parallelize(items, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&visits[i], 1)
		}
	})

	for i, v := range visits {
		if v != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, v)
		}
	}
}

func TestParallelizeZeroItems(t *testing.T) {
	called := false
	Parallelize(0, func(start, end int) {
		called = true
	})
	if called {
		t.Error("fn called for zero items")
	}
}

func TestParallelizeWithThreshold(t *testing.T) {
	tests := []struct {
		name      string
		items     int
		threshold int
	}{
		{name: "below threshold runs sequentially", items: 10, threshold: 100},
		{name: "above threshold runs in parallel", items: 500, threshold: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visits := make([]int32, tt.items)
			ParallelizeWithThreshold(tt.items, tt.threshold, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&visits[i], 1)
				}
			})
			for i, v := range visits {
				if v != 1 {
					t.Fatalf("index %d visited %d times, want 1", i, v)
				}
			}
		})
	}
}
