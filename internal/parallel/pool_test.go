package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// =============================================================================
// WorkerPool Creation Tests
// =============================================================================

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("Pool should be running after creation")
	}
}

func TestWorkerPool_CreateDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -5} {
		pool := NewWorkerPool(n)
		if pool.Workers() != runtime.GOMAXPROCS(0) {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want GOMAXPROCS %d", n, pool.Workers(), runtime.GOMAXPROCS(0))
		}
		pool.Close()
	}
}

// =============================================================================
// Run Tests
// =============================================================================

func TestWorkerPool_Run(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	const n = 100
	var seen [n]atomic.Int32
	err := pool.Run(context.Background(), n, func(_, item int) error {
		seen[item].Add(1)
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i := range seen {
		if got := seen[i].Load(); got != 1 {
			t.Errorf("item %d ran %d times, want 1", i, got)
		}
	}
}

func TestWorkerPool_Run_Empty(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if err := pool.Run(context.Background(), 0, func(int, int) error {
		t.Error("fn called for empty run")
		return nil
	}); err != nil {
		t.Errorf("Run(0) = %v, want nil", err)
	}
}

func TestWorkerPool_Run_WorkerIDs(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	// Per-worker state must never be used by two items at once.
	busy := make([]atomic.Bool, pool.Workers())
	err := pool.Run(context.Background(), 200, func(worker, _ int) error {
		if worker < 0 || worker >= len(busy) {
			return errors.New("worker id out of range")
		}
		if !busy[worker].CompareAndSwap(false, true) {
			return errors.New("worker ran two items at once")
		}
		time.Sleep(50 * time.Microsecond)
		busy[worker].Store(false)
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestWorkerPool_Run_FirstError(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	boom := errors.New("boom")
	var ran atomic.Int64
	err := pool.Run(context.Background(), 1000, func(_, item int) error {
		ran.Add(1)
		if item == 3 {
			return boom
		}
		time.Sleep(10 * time.Microsecond)
		return nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Run error = %v, want boom", err)
	}
	if ran.Load() == 1000 {
		t.Log("every item ran before the error was observed")
	}
}

func TestWorkerPool_Run_Canceled(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Int64
	err := pool.Run(ctx, 50, func(int, int) error {
		ran.Add(1)
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if ran.Load() != 0 {
		t.Errorf("%d items ran after cancellation", ran.Load())
	}
}

// =============================================================================
// Close Tests
// =============================================================================

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("Pool should not be running after close")
	}
}

func TestWorkerPool_RunAfterClose(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Close()

	var executed atomic.Bool
	err := pool.Run(context.Background(), 3, func(int, int) error {
		executed.Store(true)
		return nil
	})
	if !errors.Is(err, ErrClosed) {
		t.Errorf("Run after Close = %v, want ErrClosed", err)
	}
	if executed.Load() {
		t.Error("Work was executed on closed pool")
	}
}

// =============================================================================
// Concurrency Tests
// =============================================================================

func TestWorkerPool_ConcurrentRuns(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	const callers, items = 8, 50

	var wg sync.WaitGroup
	wg.Add(callers)
	for range callers {
		go func() {
			defer wg.Done()
			if err := pool.Run(context.Background(), items, func(int, int) error {
				counter.Add(1)
				return nil
			}); err != nil {
				t.Errorf("Run: %v", err)
			}
		}()
	}
	wg.Wait()

	if counter.Load() != callers*items {
		t.Errorf("counter = %d, want %d", counter.Load(), callers*items)
	}
}

func TestWorkerPool_NoGoroutineLeak(t *testing.T) {
	before := runtime.NumGoroutine()

	for range 5 {
		pool := NewWorkerPool(4)
		_ = pool.Run(context.Background(), 10, func(int, int) error { return nil })
		pool.Close()
	}

	time.Sleep(50 * time.Millisecond)
	after := runtime.NumGoroutine()
	if after > before+2 {
		t.Errorf("goroutines: before %d, after %d", before, after)
	}
}

// =============================================================================
// Band Tests
// =============================================================================

func TestSplitRows(t *testing.T) {
	tests := []struct {
		name       string
		height     int
		bandHeight int
		want       []Band
	}{
		{"empty", 0, 4, nil},
		{"exact", 8, 4, []Band{{0, 4}, {4, 8}}},
		{"remainder", 10, 4, []Band{{0, 4}, {4, 8}, {8, 10}}},
		{"single short", 3, 4, []Band{{0, 3}}},
		{"default height", 20, 0, []Band{{0, 16}, {16, 20}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitRows(tt.height, tt.bandHeight)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitRows(%d, %d) = %v, want %v", tt.height, tt.bandHeight, got, tt.want)
			}
			total := 0
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("band %d = %v, want %v", i, got[i], tt.want[i])
				}
				total += got[i].Rows()
			}
			if total != tt.height {
				t.Errorf("bands cover %d rows, want %d", total, tt.height)
			}
		})
	}
}
