package worker

import (
	"context"
	"sync"
)

// Task represents a unit of work executed by the pool.
type Task func()

// Pool runs tasks on a fixed number of goroutines. The service uses it to
// bound how many bcrypt computations run at once.
type Pool interface {
	Submit(Task)
	// SubmitContext hands t to a worker, giving up if ctx ends first.
	SubmitContext(ctx context.Context, t Task) error
	Stop()
}

// NewPool creates a pool with n workers. n<=0 defaults to 1.
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Task)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				if job != nil {
					job()
				}
			}
		}()
	}
	return p
}

type pool struct {
	jobs chan Task
	wg   sync.WaitGroup
}

func (p *pool) Submit(t Task) {
	p.jobs <- t
}

func (p *pool) SubmitContext(ctx context.Context, t Task) error {
	select {
	case p.jobs <- t:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop waits for running tasks; no Submit may follow.
func (p *pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Run executes fn on the pool and waits for its result or for ctx to end.
func Run[T any](ctx context.Context, p Pool, fn func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	var zero T
	done := make(chan result, 1)
	if err := p.SubmitContext(ctx, func() {
		v, err := fn()
		done <- result{v, err}
	}); err != nil {
		return zero, err
	}
	select {
	case r := <-done:
		return r.v, r.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
