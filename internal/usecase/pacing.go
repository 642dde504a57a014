package usecase

import (
	"context"
	"math/rand"
	"time"
)

// Pacer spaces consecutive sends to mimic human cadence. It is a scheduling
// policy, not a correctness mechanism, so it is injectable and a no-op in
// tests.
type Pacer interface {
	Pause(ctx context.Context)
}

// RandomPacer sleeps a uniform random duration in [Min, Max). Returns early
// if the batch is cancelled.
type RandomPacer struct {
	Min time.Duration
	Max time.Duration
}

// NewConnectionPacer spaces connection requests 3-7s apart.
func NewConnectionPacer() *RandomPacer {
	return &RandomPacer{Min: 3 * time.Second, Max: 7 * time.Second}
}

// NewMessagePacer spaces messages 2-5s apart.
func NewMessagePacer() *RandomPacer {
	return &RandomPacer{Min: 2 * time.Second, Max: 5 * time.Second}
}

func (p *RandomPacer) Pause(ctx context.Context) {
	delay := p.Min
	if p.Max > p.Min {
		delay += time.Duration(rand.Int63n(int64(p.Max - p.Min)))
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// NopPacer does not pause. Used in tests and manual dry runs.
type NopPacer struct{}

func (NopPacer) Pause(ctx context.Context) {}
