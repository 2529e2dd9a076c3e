// Package animation eases a displayed value towards a target over time. It
// knows nothing about gauges, callers map the value to geometry themselves.
package animation

import (
	"context"
	"sync"
	"time"
)

// Animator interpolates linearly from the currently displayed value to the
// latest target. Retargeting mid flight starts from wherever the value is.
type Animator struct {
	mu       sync.Mutex
	duration time.Duration
	from, to float64
	start    time.Time
}

func New(initial float64, duration time.Duration) *Animator {
	return &Animator{
		duration: duration,
		from:     initial,
		to:       initial,
	}
}

func (a *Animator) Retarget(to float64, now time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	cur, _ := a.at(now)
	a.from = cur
	a.to = to
	a.start = now
}

// At returns the displayed value at now and whether the target is reached.
func (a *Animator) At(now time.Time) (float64, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.at(now)
}

func (a *Animator) Target() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.to
}

func (a *Animator) at(now time.Time) (float64, bool) {
	if a.duration <= 0 || a.start.IsZero() {
		return a.to, true
	}
	elapsed := now.Sub(a.start)
	if elapsed >= a.duration {
		return a.to, true
	}
	if elapsed < 0 {
		elapsed = 0
	}
	t := float64(elapsed) / float64(a.duration)
	return a.from + (a.to-a.from)*t, false
}

// Run drives a from a ticker at fps frames per second and hands every
// changed value to apply until ctx is done.
func Run(ctx context.Context, fps int, a *Animator, apply func(float64)) {
	if fps <= 0 {
		fps = 60
	}
	t := time.NewTicker(time.Second / time.Duration(fps))
	defer t.Stop()

	last, _ := a.At(time.Now())
	apply(last)
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			v, _ := a.At(now)
			if v == last {
				continue
			}
			last = v
			apply(v)
		}
	}
}
