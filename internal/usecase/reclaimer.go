package usecase

import (
	"context"
	"log/slog"
	"time"

	"credshop/internal/pkg/clock"
	"credshop/internal/pkg/config"
	"credshop/internal/pkg/errs"
	"credshop/internal/usecase/shared"

	"github.com/google/uuid"
)

// ReclaimUseCase releases booking holds whose age exceeds the hold TTL.
// Clearing is idempotent: a second pass over the same candidates finds
// nothing left to release.
type ReclaimUseCase interface {
	// ReclaimExpired sweeps only the candidate units (checkout fast path).
	ReclaimExpired(ctx context.Context, candidateUnitIDs []uuid.UUID) (int64, error)
	// ReclaimAll sweeps every stale hold (periodic background path).
	ReclaimAll(ctx context.Context) (int64, error)
}

type reclaimUseCaseImpl struct {
	units shared.UnitRepository
	clock clock.Clock
	ttl   time.Duration
}

func NewReclaimUseCase(units shared.UnitRepository, clk clock.Clock, cfg config.CheckoutConfig) ReclaimUseCase {
	return &reclaimUseCaseImpl{
		units: units,
		clock: clk,
		ttl:   cfg.HoldTTL,
	}
}

func (r *reclaimUseCaseImpl) ReclaimExpired(ctx context.Context, candidateUnitIDs []uuid.UUID) (int64, error) {
	if len(candidateUnitIDs) == 0 {
		return 0, nil
	}

	cutoff := r.clock.Now().Add(-r.ttl)
	released, err := r.units.ReleaseExpired(ctx, candidateUnitIDs, cutoff)
	if err != nil {
		return 0, errs.Wrap(err, "failed to reclaim expired holds")
	}
	return released, nil
}

func (r *reclaimUseCaseImpl) ReclaimAll(ctx context.Context) (int64, error) {
	cutoff := r.clock.Now().Add(-r.ttl)
	released, err := r.units.ReleaseAllExpired(ctx, cutoff)
	if err != nil {
		return 0, errs.Wrap(err, "failed to reclaim expired holds")
	}
	return released, nil
}

// Sweeper runs ReclaimAll on an interval so holds are released even for
// units no one ever requests again.
type Sweeper struct {
	reclaimer ReclaimUseCase
	interval  time.Duration
}

func NewSweeper(reclaimer ReclaimUseCase, cfg config.CheckoutConfig) *Sweeper {
	return &Sweeper{
		reclaimer: reclaimer,
		interval:  cfg.SweepInterval,
	}
}

func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			released, err := s.reclaimer.ReclaimAll(ctx)
			if err != nil {
				slog.Error("background hold sweep failed", "error", err.Error())
				continue
			}
			if released > 0 {
				slog.Info("background hold sweep released holds", "count", released)
			}
		}
	}
}
