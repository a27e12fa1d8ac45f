package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

type countingJob struct {
	counter *atomic.Int64
	fail    bool
}

type countingResult struct {
	err error
}

func (r *countingResult) GetError() error { return r.err }

func (j *countingJob) Execute(ctx context.Context) Result {
	j.counter.Add(1)
	if j.fail {
		return &countingResult{err: errors.New("job failed")}
	}
	return &countingResult{}
}

func TestPool_RunsEveryJob(t *testing.T) {
	var counter atomic.Int64
	pool := NewPool(3)
	pool.Start()

	const jobs = 20
	for i := 0; i < jobs; i++ {
		pool.Submit(&countingJob{counter: &counter})
	}
	results := pool.Wait()

	if counter.Load() != jobs {
		t.Errorf("executed %d jobs, want %d", counter.Load(), jobs)
	}
	if len(results) != jobs {
		t.Errorf("collected %d results, want %d", len(results), jobs)
	}
}

func TestPool_SubmitAllBeforeWait(t *testing.T) {
	// Far more jobs than the queue and result buffers hold, all submitted
	// before Wait starts. The collector must keep draining results or the
	// workers wedge and Submit never returns.
	var counter atomic.Int64
	pool := NewPool(2)
	pool.Start()

	const jobs = 50
	for i := 0; i < jobs; i++ {
		pool.Submit(&countingJob{counter: &counter})
	}
	results := pool.Wait()

	if counter.Load() != jobs {
		t.Errorf("executed %d jobs, want %d", counter.Load(), jobs)
	}
	if len(results) != jobs {
		t.Errorf("collected %d results, want %d", len(results), jobs)
	}
}

func TestPool_ReportsJobErrors(t *testing.T) {
	var counter atomic.Int64
	pool := NewPool(2)
	pool.Start()
	pool.Submit(&countingJob{counter: &counter})
	pool.Submit(&countingJob{counter: &counter, fail: true})

	failed := 0
	for _, result := range pool.Wait() {
		if result.GetError() != nil {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("failed results: got %d, want 1", failed)
	}
}

func TestPool_ZeroWorkersStillRuns(t *testing.T) {
	var counter atomic.Int64
	pool := NewPool(0)
	pool.Start()
	pool.Submit(&countingJob{counter: &counter})
	pool.Wait()
	if counter.Load() != 1 {
		t.Error("a non-positive worker count should fall back to one worker")
	}
}
