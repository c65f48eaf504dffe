package collsim

import (
	"context"
	"time"
)

// Pacer is called once after every tick.  It has no effect on the outcome
// of a run, only on how long the run takes in wall-clock time.
type Pacer interface {
	Pace(ctx context.Context) error
}

// NoPacer lets ticks follow one another immediately
type NoPacer struct{}

// Pace returns at once
func (NoPacer) Pace(ctx context.Context) error {
	return nil
}

// RealTimePacer blocks for Interval after every tick
type RealTimePacer struct {
	Interval time.Duration
}

// CreateRealTimePacer is a constructor.  A non-positive interval means one second.
func CreateRealTimePacer(interval time.Duration) *RealTimePacer {
	if interval <= 0 {
		interval = time.Second
	}
	return &RealTimePacer{Interval: interval}
}

// Pace sleeps for the interval, returning early with the context's error
// if it is cancelled first
func (rtp *RealTimePacer) Pace(ctx context.Context) error {
	timer := time.NewTimer(rtp.Interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
