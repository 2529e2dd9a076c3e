package animation_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/roffe/speedometer/pkg/animation"
	"github.com/stretchr/testify/assert"
)

func TestAnimatorLinear(t *testing.T) {
	start := time.Unix(1000, 0)
	a := animation.New(0, 100*time.Millisecond)

	v, done := a.At(start)
	assert.Equal(t, 0.0, v)
	assert.True(t, done)

	a.Retarget(100, start)
	tests := []struct {
		name     string
		after    time.Duration
		want     float64
		wantDone bool
	}{
		{name: "start", after: 0, want: 0},
		{name: "quarter", after: 25 * time.Millisecond, want: 25},
		{name: "half", after: 50 * time.Millisecond, want: 50},
		{name: "end", after: 100 * time.Millisecond, want: 100, wantDone: true},
		{name: "past end", after: time.Second, want: 100, wantDone: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, done := a.At(start.Add(tt.after))
			assert.InDelta(t, tt.want, v, 1e-9)
			assert.Equal(t, tt.wantDone, done)
		})
	}
}

func TestAnimatorRetargetMidFlight(t *testing.T) {
	start := time.Unix(1000, 0)
	a := animation.New(0, 100*time.Millisecond)
	a.Retarget(100, start)

	mid := start.Add(50 * time.Millisecond)
	a.Retarget(0, mid)
	assert.Equal(t, 0.0, a.Target())

	v, _ := a.At(mid)
	assert.InDelta(t, 50, v, 1e-9)
	v, _ = a.At(mid.Add(50 * time.Millisecond))
	assert.InDelta(t, 25, v, 1e-9)
}

func TestAnimatorZeroDurationJumps(t *testing.T) {
	a := animation.New(10, 0)
	a.Retarget(90, time.Now())
	v, done := a.At(time.Now())
	assert.Equal(t, 90.0, v)
	assert.True(t, done)
}

func TestRun(t *testing.T) {
	a := animation.New(0, 50*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu   sync.Mutex
		last float64
	)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		animation.Run(ctx, 120, a, func(v float64) {
			mu.Lock()
			last = v
			mu.Unlock()
		})
	}()

	a.Retarget(80, time.Now())
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return last == 80
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
}
