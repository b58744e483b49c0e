package parallel

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 16}

	var counter int64
	n := 1000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestForRangeCoversEveryIndexOnce(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 3, MinChunkSize: 10}
	n := 257
	hits := make([]int32, n)

	var mu sync.Mutex
	var ranges int
	ForRange(n, func(start, end int) {
		mu.Lock()
		ranges++
		mu.Unlock()
		for i := start; i < end; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
	}, cfg)

	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d visited %d times", i, h)
		}
	}
	if ranges < 2 {
		t.Errorf("expected work to be split, got %d range(s)", ranges)
	}
}

func TestForRange_Sequential(t *testing.T) {
	var calls int
	ForRange(100, func(start, end int) {
		calls++
		if start != 0 || end != 100 {
			t.Errorf("got range [%d, %d), want [0, 100)", start, end)
		}
	}, Sequential())

	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
}

func TestForRange_SmallInputStaysSequential(t *testing.T) {
	cfg := DefaultConfig()
	var calls int32
	ForRange(cfg.MinChunkSize, func(_, _ int) {
		atomic.AddInt32(&calls, 1)
	}, cfg)

	if calls != 1 {
		t.Errorf("Expected 1 call for small input, got %d", calls)
	}
}

func TestForRange_Empty(t *testing.T) {
	ForRange(0, func(_, _ int) {
		t.Error("f must not be called for n == 0")
	}, DefaultConfig())
}
