// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"testing"
	"time"
)

func TestPool_Create(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"explicit", 4, 4},
		{"zero", 0, runtime.GOMAXPROCS(0)},
		{"negative", -3, runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPool(tt.workers)
			defer p.Close()
			if p.Workers() != tt.want {
				t.Errorf("Workers() = %d, want %d", p.Workers(), tt.want)
			}
			if !p.IsRunning() {
				t.Error("pool should be running after creation")
			}
		})
	}
}

func TestPool_RunAll(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	const n = 200
	var count atomic.Int64
	seen := make([]bool, n)
	err := p.Run(context.Background(), n, func(_ context.Context, i int) error {
		count.Add(1)
		seen[i] = true
		return nil
	})
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if count.Load() != n {
		t.Errorf("ran %d jobs, want %d", count.Load(), n)
	}
	for i, ok := range seen {
		if !ok {
			t.Errorf("job %d did not run", i)
		}
	}
}

func TestPool_RunEmpty(t *testing.T) {
	p := NewPool(2)
	defer p.Close()
	if err := p.Run(context.Background(), 0, nil); err != nil {
		t.Errorf("Run(0) = %v, want nil", err)
	}
}

func TestPool_RunJoinsErrors(t *testing.T) {
	p := NewPool(3)
	defer p.Close()

	errOdd := errors.New("odd")
	err := p.Run(context.Background(), 10, func(_ context.Context, i int) error {
		if i%2 == 1 {
			return errOdd
		}
		return nil
	})
	if !errors.Is(err, errOdd) {
		t.Fatalf("Run() = %v, want errOdd", err)
	}
}

func TestPool_RunCanceled(t *testing.T) {
	p := NewPool(1)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Int64
	err := p.Run(ctx, 20, func(context.Context, int) error {
		ran.Add(1)
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
	if ran.Load() != 0 {
		t.Errorf("%d jobs ran after cancel, want 0", ran.Load())
	}
}

func TestPool_CloseIdempotent(t *testing.T) {
	p := NewPool(2)
	p.Close()
	p.Close()
	if p.IsRunning() {
		t.Error("pool should not be running after Close")
	}
	err := p.Run(context.Background(), 1, func(context.Context, int) error { return nil })
	if !errors.Is(err, ErrClosed) {
		t.Errorf("Run after Close = %v, want ErrClosed", err)
	}
}

func TestPool_WorkStealing(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	// Job 0 blocks its worker; the jobs queued behind it must still finish.
	release := make(chan struct{})
	var done atomic.Int64
	go func() {
		time.Sleep(20 * time.Millisecond)
		close(release)
	}()
	err := p.Run(context.Background(), 16, func(_ context.Context, i int) error {
		if i == 0 {
			<-release
		}
		done.Add(1)
		return nil
	})
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if done.Load() != 16 {
		t.Errorf("done = %d, want 16", done.Load())
	}
}

func TestShared(t *testing.T) {
	if Shared() != Shared() {
		t.Error("Shared() should return the same pool")
	}
	if !Shared().IsRunning() {
		t.Error("shared pool should be running")
	}
}
