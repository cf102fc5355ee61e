package worker

// stock_sweep.go
// Background goroutine that periodically scans for ingredients at or under
// their minimum stock and enqueues alert jobs. Catches anything the sale-time
// check missed (manual adjustments, ingredients edited while low). The alert
// worker deduplicates, so sweeping is safe to run frequently.

import (
	"context"
	"time"

	"auraops/internal/repository"

	"github.com/rs/zerolog/log"
)

// SweepConfig holds all dependencies for the sweep goroutine.
type SweepConfig struct {
	IngredientRepo repository.IngredientRepository
	Dispatcher     *Dispatcher
	Interval       time.Duration
}

// StartStockSweep launches a background goroutine that ticks on the configured
// interval and enqueues a low-stock alert job per ingredient below minimum.
// It respects the context for graceful shutdown.
func StartStockSweep(ctx context.Context, cfg SweepConfig) {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Dur("interval", cfg.Interval).Msg("stock_sweep: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("stock_sweep: shutting down")
				return
			case <-ticker.C:
				sweep(ctx, cfg)
			}
		}
	}()
}

func sweep(ctx context.Context, cfg SweepConfig) {
	ingredients, err := cfg.IngredientRepo.ListBelowMin(ctx)
	if err != nil {
		log.Error().Err(err).Msg("stock_sweep: failed to query low-stock ingredients")
		return
	}
	if len(ingredients) == 0 {
		return
	}

	log.Info().Int("count", len(ingredients)).Msg("stock_sweep: low-stock ingredients found")
	for _, ing := range ingredients {
		payload := LowStockJobPayload{IngredientID: ing.ID.String()}
		if err := cfg.Dispatcher.EnqueueLowStockAlert(ctx, payload); err != nil {
			log.Error().Err(err).Str("ingredient", ing.Name).Msg("stock_sweep: failed to enqueue alert")
		}
	}
}
