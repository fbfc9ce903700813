package plagiarism

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	wg    *sync.WaitGroup
	mu    *sync.Mutex
	count *int
}

func (j *countingJob) Execute(_ context.Context) error {
	j.mu.Lock()
	*j.count++
	j.mu.Unlock()
	j.wg.Done()
	return nil
}

func TestWorkerPoolExecutesSubmittedJobs(t *testing.T) {
	pool := NewWorkerPool(context.Background())
	defer pool.Close()

	var wg sync.WaitGroup
	var mu sync.Mutex
	count := 0

	const jobs = 20
	wg.Add(jobs)
	for i := 0; i < jobs; i++ {
		require.NoError(t, pool.Submit(&countingJob{wg: &wg, mu: &mu, count: &count}))
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("jobs did not complete in time")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, jobs, count)
}

func TestWorkerPoolSize(t *testing.T) {
	pool := NewWorkerPool(context.Background())
	defer pool.Close()

	assert.GreaterOrEqual(t, pool.Size(), 1)
}
