package worker

// alert_worker.go
// Processes low-stock alert jobs from QueueAlerts: re-checks the ingredient
// against its minimum (the queue entry may be stale), deduplicates via a
// short-lived Redis key, and emails the operations inbox through the SMTP
// circuit breaker. Failed sends go to the DLQ for manual inspection.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"auraops/internal/infra"
	"auraops/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// alertDedupTTL is how long a sent alert suppresses repeats per ingredient.
const alertDedupTTL = 6 * time.Hour

// LowStockJobPayload is the job envelope sent to QueueAlerts.
type LowStockJobPayload struct {
	IngredientID string `json:"ingredient_id"`
}

type AlertWorker struct {
	ingredientRepo repository.IngredientRepository
	mailer         *infra.Mailer
	cb             *infra.CircuitBreaker
	rdb            *redis.Client
	alertEmail     string
}

func NewAlertWorker(
	ingredientRepo repository.IngredientRepository,
	mailer *infra.Mailer,
	cb *infra.CircuitBreaker,
	rdb *redis.Client,
	alertEmail string,
) *AlertWorker {
	return &AlertWorker{
		ingredientRepo: ingredientRepo,
		mailer:         mailer,
		cb:             cb,
		rdb:            rdb,
		alertEmail:     alertEmail,
	}
}

// Process handles a single low-stock alert job.
func (w *AlertWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload LowStockJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alert_worker: invalid payload")
		return
	}
	if w.alertEmail == "" {
		log.Debug().Msg("alert_worker: no ALERT_EMAIL configured — skipping")
		return
	}

	id, err := uuid.Parse(payload.IngredientID)
	if err != nil {
		log.Error().Str("ingredient_id", payload.IngredientID).Msg("alert_worker: invalid ingredient_id")
		return
	}

	ing, err := w.ingredientRepo.FindByID(ctx, id)
	if err != nil {
		log.Warn().Err(err).Str("ingredient_id", payload.IngredientID).Msg("alert_worker: ingredient not found")
		return
	}
	// The stock may have been replenished between enqueue and processing.
	if ing.CurrentStock.GreaterThan(ing.MinStock) {
		return
	}

	// Dedup: one alert per ingredient per window.
	dedupKey := "alert:sent:" + ing.ID.String()
	set, err := w.rdb.SetNX(ctx, dedupKey, 1, alertDedupTTL).Result()
	if err == nil && !set {
		return
	}

	subject := fmt.Sprintf("Low stock: %s", ing.Name)
	body := fmt.Sprintf(
		"Ingredient %q is at %s %s (minimum %s %s). Consider reordering.",
		ing.Name, ing.CurrentStock.String(), ing.Unit, ing.MinStock.String(), ing.Unit,
	)

	sendErr := w.cb.Execute(func() error {
		return w.mailer.SendAlert(w.alertEmail, subject, body)
	})
	if sendErr != nil {
		// Release the dedup key so the next sweep retries this ingredient.
		_ = w.rdb.Del(ctx, dedupKey).Err()
		SendToDLQ(ctx, w.rdb, QueueAlerts, "low_stock_alert", raw, sendErr.Error(), 1)
		log.Error().Err(sendErr).Str("ingredient", ing.Name).Msg("alert_worker: failed to send alert email")
		return
	}
	log.Info().Str("ingredient", ing.Name).Msg("alert_worker: low-stock alert sent")
}
