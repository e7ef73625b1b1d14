package sim

import (
	"context"
	"time"
)

// Pacer enforces a minimum wall-clock interval between frames using the
// monotonic clock and a blocking timer wait.
type Pacer struct {
	interval time.Duration
	last     time.Time
	timer    *time.Timer
}

// NewPacer creates a pacer for fps frames per second. fps <= 0 disables waiting.
func NewPacer(fps int) *Pacer {
	var interval time.Duration
	if fps > 0 {
		interval = time.Second / time.Duration(fps)
	}
	return &Pacer{interval: interval, last: time.Now()}
}

// Interval returns the minimum frame interval.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}

// Wait blocks until one interval has passed since the previous frame started
// and returns the elapsed time in seconds. It returns early with ctx.Err()
// when ctx is cancelled.
func (p *Pacer) Wait(ctx context.Context) (float64, error) {
	deadline := p.last.Add(p.interval)
	if remaining := time.Until(deadline); remaining > 0 {
		if p.timer == nil {
			p.timer = time.NewTimer(remaining)
		} else {
			p.timer.Reset(remaining)
		}
		select {
		case <-p.timer.C:
		case <-ctx.Done():
			if !p.timer.Stop() {
				<-p.timer.C
			}
			return 0, ctx.Err()
		}
	} else if err := ctx.Err(); err != nil {
		return 0, err
	}

	now := time.Now()
	dt := now.Sub(p.last).Seconds()
	p.last = now
	return dt, nil
}
