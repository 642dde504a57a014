package worker

import (
	"context"
	"log"
	"time"

	"github.com/xavierca1/linkreach/internal/usecase"
)

// FollowUpWorker runs the follow-up pass for all active campaigns on a
// timer, so messages keep flowing without anyone hitting the trigger
// endpoint.
type FollowUpWorker struct {
	scheduler    *usecase.FollowUpScheduler
	tickInterval time.Duration
}

func NewFollowUpWorker(scheduler *usecase.FollowUpScheduler) *FollowUpWorker {
	return &FollowUpWorker{
		scheduler:    scheduler,
		tickInterval: 1 * time.Hour,
	}
}

func (w *FollowUpWorker) Start(ctx context.Context) {
	log.Printf("🕒 Follow-up worker started (every %s)", w.tickInterval)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.run(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Follow-up worker stopped")
			return
		case <-ticker.C:
			w.run(ctx)
		}
	}
}

func (w *FollowUpWorker) run(ctx context.Context) {
	result, err := w.scheduler.ProcessFollowUps(ctx)
	if err != nil {
		log.Printf("❌ Follow-up pass failed: %v", err)
		return
	}

	if result.Sent > 0 || result.Skipped > 0 {
		log.Printf("✅ Follow-up pass done: %d sent, %d skipped", result.Sent, result.Skipped)
	}
}
