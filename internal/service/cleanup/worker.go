package cleanup

import (
	"context"
	"time"

	"github.com/iamasit07/5-in-a-row/backend/internal/service/game"
	"github.com/rs/zerolog/log"
)

type Worker struct {
	SessionManager *game.SessionManager
	Interval       time.Duration
	MaxIdle        time.Duration
}

func NewWorker(sm *game.SessionManager, interval, maxIdle time.Duration) *Worker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Worker{SessionManager: sm, Interval: interval, MaxIdle: maxIdle}
}

// Run evicts idle sessions every Interval until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	log.Info().Dur("interval", w.Interval).Dur("max_idle", w.MaxIdle).Msg("[CLEANUP] Background worker started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("[CLEANUP] Background worker stopped")
			return nil
		case <-ticker.C:
			w.RunOnce()
		}
	}
}

// RunOnce executes a single cleanup pass and returns the number of evicted sessions.
func (w *Worker) RunOnce() int {
	removed := w.SessionManager.CleanupIdleSessions(w.MaxIdle)
	if removed > 0 {
		log.Info().Int("removed", removed).Int("active", w.SessionManager.ActiveSessionCount()).Msg("[CLEANUP] Removed idle sessions")
	}
	return removed
}
