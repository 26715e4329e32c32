// Package janitor prunes expired fingerprint rows on a schedule.
package janitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

type FingerprintPruner interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

type Service struct {
	pruner FingerprintPruner
	cron   *cron.Cron
	logger *slog.Logger
}

func New(pruner FingerprintPruner, logger *slog.Logger) *Service {
	return &Service{
		pruner: pruner,
		cron:   cron.New(),
		logger: logger,
	}
}

func (s *Service) Start() error {
	_, err := s.cron.AddFunc("@hourly", s.prune)
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Service) Stop() {
	// Stop only prevents new runs; an in-flight prune finishes on its own.
	s.cron.Stop()
}

func (s *Service) prune() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := s.pruner.DeleteExpired(ctx)
	if err != nil {
		s.logger.Error("fingerprint prune failed", "error", err)
		return
	}
	if deleted > 0 {
		s.logger.Info("pruned expired fingerprints", "deleted", deleted)
	}
}
