package download

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGate_ClampsCapacity(t *testing.T) {
	assert.Equal(t, 1, NewGate(0).Capacity())
	assert.Equal(t, 1, NewGate(-3).Capacity())
	assert.Equal(t, 4, NewGate(4).Capacity())
}

func TestGate_AcquireRelease(t *testing.T) {
	gate := NewGate(2)
	ctx := context.Background()

	p1, err := gate.Acquire(ctx)
	require.NoError(t, err)
	p2, err := gate.Acquire(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, gate.Active())

	acquired := make(chan *Permit)
	go func() {
		p, err := gate.Acquire(ctx)
		if err == nil {
			acquired <- p
		}
	}()

	select {
	case <-acquired:
		t.Fatal("third acquire should block while the gate is full")
	case <-time.After(50 * time.Millisecond):
	}

	p1.Release()

	select {
	case p3 := <-acquired:
		p3.Release()
	case <-time.After(time.Second):
		t.Fatal("waiter was not granted a slot after release")
	}

	p2.Release()
	assert.Equal(t, 0, gate.Active())
	assert.Equal(t, 2, gate.Peak())
}

func TestPermit_ReleaseIsIdempotent(t *testing.T) {
	gate := NewGate(1)

	p, err := gate.Acquire(context.Background())
	require.NoError(t, err)

	p.Release()
	p.Release()
	assert.Equal(t, 0, gate.Active())

	// Capacity is unchanged: a second holder still blocks
	held, err := gate.Acquire(context.Background())
	require.NoError(t, err)
	defer held.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = gate.Acquire(ctx)
	assert.Error(t, err)
}

func TestGate_AcquireCanceled(t *testing.T) {
	gate := NewGate(1)
	held, err := gate.Acquire(context.Background())
	require.NoError(t, err)
	defer held.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = gate.Acquire(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGate_NeverExceedsCapacity(t *testing.T) {
	gate := NewGate(3)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := gate.Acquire(context.Background())
			if err != nil {
				return
			}
			defer p.Release()
			time.Sleep(time.Millisecond)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, gate.Peak(), 3)
	assert.Equal(t, 0, gate.Active())
}
