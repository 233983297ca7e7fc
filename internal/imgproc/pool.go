package imgproc

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool bounds the number of concurrent image transforms so CPU-bound
// decode/resize/encode work cannot starve request handling.
type Pool struct {
	sem *semaphore.Weighted
}

// NewPool creates a pool allowing up to workers concurrent transforms.
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(workers))}
}

// Scale runs Scale under the pool's concurrency limit. It blocks until a
// slot is free or ctx is done.
func (p *Pool) Scale(ctx context.Context, data []byte, width, height uint) (string, []byte, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return "", nil, err
	}
	defer p.sem.Release(1)

	return Scale(data, width, height)
}
