package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/robfig/cron/v3"

	"github.com/streamhub/rewards-service/internal/config"
	"github.com/streamhub/rewards-service/internal/httpapi"
	"github.com/streamhub/rewards-service/internal/rewards"
	"github.com/streamhub/rewards-service/internal/session"
	"github.com/streamhub/rewards-service/pkg/auth"
	"github.com/streamhub/rewards-service/pkg/logging"
	"github.com/streamhub/rewards-service/pkg/server"
)

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("config error: %w", err))
	}

	logger := logging.NewLogger("rewards-service")

	engine := rewards.NewEngine(
		rewards.WithMonthlyGoal(cfg.Rewards.MonthlyGoal),
		rewards.WithRewardCapacity(cfg.Rewards.Capacity),
		rewards.WithListener(rewards.LogListener{Logger: logger}),
	)
	repo := session.NewMemoryRepository(engine.NewProgress)
	sessionService := session.NewService(repo, engine)

	verifier, err := auth.NewVerifier(auth.Config{
		Mode:     auth.Mode(cfg.Auth.Mode),
		JWKSURL:  cfg.Auth.JWKSURL,
		Audience: cfg.Auth.Audience,
		Issuer:   cfg.Auth.Issuer,
	})
	if err != nil {
		panic(fmt.Errorf("auth verifier error: %w", err))
	}

	// The engine has no internal timer; the weekly trivia reset is driven by
	// this schedule (and by the explicit refresh endpoint).
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Rewards.RefreshSchedule, func() {
		count, err := sessionService.RefreshAll(ctx)
		if err != nil {
			logger.Error("weekly refresh failed", "error", err)
			return
		}
		if count > 0 {
			logger.Info("weekly challenges refreshed", "count", count)
		}
	}); err != nil {
		panic(fmt.Errorf("refresh schedule error: %w", err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := server.NewRouter("rewards-service", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(verifier))

			httpapi.RegisterRoutes(r, sessionService, logger)
		})
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	if err := server.Run(ctx, srv, logger); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	}
}
