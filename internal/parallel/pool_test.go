package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPool_Create(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"four", 4, 4},
		{"one", 1, 1},
		{"zero uses GOMAXPROCS", 0, runtime.GOMAXPROCS(0)},
		{"negative uses GOMAXPROCS", -5, runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewWorkerPool(tt.workers)
			defer pool.Close()

			if pool.Workers() != tt.want {
				t.Errorf("Workers() = %d, want %d", pool.Workers(), tt.want)
			}
			if !pool.IsRunning() {
				t.Error("pool should be running after creation")
			}
		})
	}
}

func TestWorkerPool_ExecuteAll(t *testing.T) {
	for _, workers := range []int{1, 4, 32} {
		pool := NewWorkerPool(workers)

		var mu sync.Mutex
		seen := make(map[int]int)
		work := make([]func(), 1000)
		for i := range work {
			work[i] = func() {
				mu.Lock()
				seen[i]++
				mu.Unlock()
			}
		}

		pool.ExecuteAll(work)
		pool.Close()

		if len(seen) != len(work) {
			t.Errorf("workers=%d: %d distinct tasks ran, want %d", workers, len(seen), len(work))
		}
		for i, n := range seen {
			if n != 1 {
				t.Errorf("workers=%d: task %d ran %d times", workers, i, n)
			}
		}
	}
}

func TestWorkerPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	// Must not block.
	pool.ExecuteAll(nil)
	pool.ExecuteAll([]func(){})
}

func TestWorkerPool_ExecuteAll_WaitsForCompletion(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	var done atomic.Int64
	work := make([]func(), 8)
	for i := range work {
		work[i] = func() {
			time.Sleep(time.Millisecond)
			done.Add(1)
		}
	}
	pool.ExecuteAll(work)

	if done.Load() != 8 {
		t.Errorf("ExecuteAll returned with %d of 8 tasks complete", done.Load())
	}
}

func TestWorkerPool_Close(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("pool should not be running after Close")
	}
}

func TestWorkerPool_ExecuteAfterCloseRunsInline(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Close()

	var executed atomic.Int64
	pool.ExecuteAll([]func(){
		func() { executed.Add(1) },
		func() { executed.Add(1) },
	})

	if executed.Load() != 2 {
		t.Errorf("executed = %d after Close, want 2", executed.Load())
	}
}

func TestWorkerPool_Concurrent(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	const callers, perCaller = 10, 50

	var wg sync.WaitGroup
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			work := make([]func(), perCaller)
			for i := range work {
				work[i] = func() { counter.Add(1) }
			}
			pool.ExecuteAll(work)
		}()
	}
	wg.Wait()

	if counter.Load() != callers*perCaller {
		t.Errorf("counter = %d, want %d", counter.Load(), callers*perCaller)
	}
}

func TestWorkerPool_UnevenWork(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	// Every tenth task is slow; idle workers steal the rest.
	var fast, slow atomic.Int64
	work := make([]func(), 100)
	for i := range work {
		if i%10 == 0 {
			work[i] = func() {
				time.Sleep(5 * time.Millisecond)
				slow.Add(1)
			}
		} else {
			work[i] = func() { fast.Add(1) }
		}
	}

	start := time.Now()
	pool.ExecuteAll(work)
	t.Logf("elapsed: %v", time.Since(start))

	if slow.Load() != 10 || fast.Load() != 90 {
		t.Errorf("slow = %d, fast = %d; want 10, 90", slow.Load(), fast.Load())
	}
}

func TestWorkerPool_NoGoroutineLeak(t *testing.T) {
	runtime.GC()
	time.Sleep(50 * time.Millisecond)
	baseline := runtime.NumGoroutine()

	for range 5 {
		pool := NewWorkerPool(4)
		work := make([]func(), 100)
		for j := range work {
			work[j] = func() {}
		}
		pool.ExecuteAll(work)
		pool.Close()
	}

	runtime.GC()
	time.Sleep(100 * time.Millisecond)

	// Allow for test framework goroutines.
	if final := runtime.NumGoroutine(); final > baseline+2 {
		t.Errorf("goroutine count: baseline=%d, final=%d (leak detected)", baseline, final)
	}
}

func BenchmarkWorkerPool_ExecuteAll(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(map[int]string{10: "10", 100: "100", 1000: "1000"}[n], func(b *testing.B) {
			pool := NewWorkerPool(runtime.GOMAXPROCS(0))
			defer pool.Close()

			work := make([]func(), n)
			for i := range work {
				work[i] = func() {}
			}
			b.ReportAllocs()
			for b.Loop() {
				pool.ExecuteAll(work)
			}
		})
	}
}
