package jobs

import (
	"context"
	"time"

	"github.com/anjiri1684/review_board/logger"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type SessionPurger interface {
	PurgeSessions(ctx context.Context) (int64, error)
}

// PurgeSessions removes expired and revoked sessions.
func PurgeSessions(purger SessionPurger, log *logger.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		removed, err := purger.PurgeSessions(ctx)
		if err != nil {
			log.Error("session purge failed", zap.Error(err))
			return
		}
		if removed > 0 {
			log.Info("purged sessions", zap.Int64("count", removed))
		}
	}
}

// Schedule registers the background jobs and returns the started scheduler.
func Schedule(spec string, purger SessionPurger, log *logger.Logger) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, PurgeSessions(purger, log)); err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
