package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auraops/internal/config"
	"auraops/internal/infra"
	"auraops/internal/repository"
	"auraops/internal/router"
	"auraops/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Worker pool handles async low-stock alert delivery. Wired here at the
	// composition root so the pool has full access to infrastructure deps.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	mailCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	dispatcher := worker.NewDispatcher(rdb)
	ingredientRepo := repository.NewIngredientRepository(db)

	workerHandlers := &worker.WorkerHandlers{
		Alerts: worker.NewAlertWorker(ingredientRepo, mailer, mailCB, rdb, cfg.AlertEmail),
	}
	worker.StartWorkerPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)

	// Periodic sweep catches low-stock ingredients the sale path missed.
	worker.StartStockSweep(ctx, worker.SweepConfig{
		IngredientRepo: ingredientRepo,
		Dispatcher:     dispatcher,
		Interval:       time.Duration(cfg.StockSweepSeconds) * time.Second,
	})

	r := router.New(cfg, db, rdb, mailCB)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("AuraOps backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
