package batch

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"testing"
)

func TestPoolCreate(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"explicit", 3, 3},
		{"zero", 0, runtime.GOMAXPROCS(0)},
		{"negative", -2, runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.workers)
			defer p.Close()
			if got := p.Workers(); got != tt.want {
				t.Errorf("Workers() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPoolRunAll(t *testing.T) {
	p := New(4)
	defer p.Close()

	var counter atomic.Int64
	jobs := make([]Job, 100)
	for i := range jobs {
		jobs[i] = func(context.Context) error {
			counter.Add(1)
			return nil
		}
	}
	if err := p.Run(context.Background(), jobs); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := counter.Load(); got != 100 {
		t.Errorf("ran %d jobs, want 100", got)
	}
}

func TestPoolRunErrors(t *testing.T) {
	p := New(2)
	defer p.Close()

	errBoom := errors.New("boom")
	jobs := []Job{
		func(context.Context) error { return nil },
		func(context.Context) error { return errBoom },
		func(context.Context) error { return nil },
	}
	err := p.Run(context.Background(), jobs)
	if !errors.Is(err, errBoom) {
		t.Errorf("Run() error = %v, want %v", err, errBoom)
	}
}

func TestPoolRunCanceled(t *testing.T) {
	p := New(2)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Int64
	jobs := []Job{
		func(context.Context) error { ran.Add(1); return nil },
		func(context.Context) error { ran.Add(1); return nil },
	}
	err := p.Run(ctx, jobs)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if ran.Load() != 0 {
		t.Errorf("%d jobs ran after cancel, want 0", ran.Load())
	}
}

func TestPoolClosed(t *testing.T) {
	p := New(1)
	p.Close()
	p.Close()

	err := p.Run(context.Background(), []Job{func(context.Context) error { return nil }})
	if !errors.Is(err, ErrClosed) {
		t.Errorf("Run() on closed pool error = %v, want ErrClosed", err)
	}
	if err := p.Run(context.Background(), nil); err != nil {
		t.Errorf("Run() with no jobs = %v, want nil", err)
	}
}
