package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/roastme-app/battle-service/config"
	"github.com/roastme-app/battle-service/internal/registry"
	"github.com/roastme-app/battle-service/internal/service"
	httpx "github.com/roastme-app/battle-service/internal/transport/http"
	"github.com/roastme-app/battle-service/internal/transport/ws"
	"github.com/roastme-app/battle-service/pkg/logger"
)

func main() {
	// --- config ---
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(logger.Config{
		Env:       logger.Env(cfg.Logging.Env),
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Backend:   logger.Backend(cfg.Logging.Backend),
		AddSource: cfg.Logging.AddSource,
		Debug:     cfg.Logging.Debug,
	})
	slog.Info("starting battle-service",
		"env", cfg.Logging.Env, "version", cfg.Logging.Version)

	// --- services ---
	judge := service.NewJudge(nil)
	moods := service.NewMoodEngine()
	roasts := service.NewRoastGenerator(nil)
	personality := service.NewPersonalityAnalyzer()

	// --- registry (all room state lives here, in memory) ---
	reg := registry.New(cfg.Game.Capacity, cfg.Game.MaxRounds, judge)

	// --- WS Hub & gateway ---
	hub := ws.NewHub()
	wsServer := ws.NewServer(hub, reg, moods, roasts, cfg.Game.ReplyDelay())

	// --- HTTP ---
	handler := httpx.NewHandler(reg, moods, roasts, personality)
	router := httpx.NewRouter(handler, wsServer)
	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- expiry sweeper ---
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	sweeper := registry.NewSweeper(reg, cfg.Game.SweepInterval(), cfg.Game.RoomTTLDuration())
	go sweeper.Run(sweepCtx)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listen", "addr", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal", "sig", sig)
	case err := <-errCh:
		slog.Error("server error", "err", err)
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stopSweeper()
	_ = httpSrv.Shutdown(ctxShutdown)
	slog.Info("stopped")
}
