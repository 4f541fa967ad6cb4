package deals

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper periodically flips deals past their end date into the expired
// state. A failed pass is logged and retried on the next tick; it never
// takes the process down.
type Sweeper struct {
	repo   Repository
	cron   *cron.Cron
	spec   string
	logger *zap.Logger
}

func NewSweeper(repo Repository, spec string, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		repo:   repo,
		cron:   cron.New(),
		spec:   spec,
		logger: logger,
	}
}

// Start schedules the sweep.
func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if _, err := s.Sweep(context.Background(), time.Now()); err != nil {
			s.logger.Error("deal expiry sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("deal expiry sweeper started", zap.String("spec", s.spec))
	return nil
}

// Stop waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("deal expiry sweeper stopped")
}

// Sweep expires every deal whose end date has passed. Idempotent:
// already-expired deals are untouched.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) (int64, error) {
	expired, err := s.repo.ExpirePast(ctx, now)
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		s.logger.Info("deals expired by sweep", zap.Int64("count", expired))
	}
	return expired, nil
}
