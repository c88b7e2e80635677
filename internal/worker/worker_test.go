package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	p := NewPool(3)
	var mu sync.Mutex
	count := 0
	for i := 0; i < 5; i++ {
		p.Submit(func() {
			mu.Lock()
			count++
			mu.Unlock()
		})
	}
	p.Stop()
	require.Equal(t, 5, count)
}

func TestNewPoolDefaultsToOneWorker(t *testing.T) {
	p := NewPool(0)
	ran := false
	require.NoError(t, p.SubmitContext(context.Background(), func() { ran = true }))
	p.Stop()
	require.True(t, ran)
}

func TestRun(t *testing.T) {
	p := NewPool(1)
	defer p.Stop()

	v, err := Run(context.Background(), p, func() (string, error) { return "hash", nil })
	require.NoError(t, err)
	require.Equal(t, "hash", v)

	_, err = Run(context.Background(), p, func() (string, error) { return "", errors.New("boom") })
	require.EqualError(t, err, "boom")
}

func TestRunContextCancelled(t *testing.T) {
	p := NewPool(1)
	release := make(chan struct{})
	p.Submit(func() { <-release })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := Run(ctx, p, func() (int, error) { return 1, nil })
	require.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	p.Stop()
}
