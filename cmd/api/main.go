package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/vaultpass/passfx-go/internal/config"
	"github.com/vaultpass/passfx-go/internal/crypto"
	"github.com/vaultpass/passfx-go/internal/handler"
	"github.com/vaultpass/passfx-go/internal/logging"
	"github.com/vaultpass/passfx-go/internal/rates"
	"github.com/vaultpass/passfx-go/internal/repository"
	"github.com/vaultpass/passfx-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	seed, err := cfg.Seed()
	if err != nil {
		logger.Error("loading rate seed failed", "error", err, "file", cfg.RatesSeedFile)
		os.Exit(1)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	table := rates.Build(seed)
	providerOpts := cfg.ProviderOptions()
	providerOpts.Logger = logger
	provider := rates.NewProvider(table, providerOpts)

	history := repository.NewHistoryRepository()
	go history.RunJanitor(ctx, 10*time.Minute, cfg.SessionTTL)

	genService := service.NewGeneratorService(history, crypto.NewHasher(crypto.DefaultHashParams()))
	convService := service.NewConverterService(provider, history)
	sessService := service.NewSessionService(cfg.SessionSecret, cfg.SessionTTL)

	router := handler.NewRouter(ctx, handler.RouterDeps{
		Logger:        logger,
		SessionSecret: cfg.SessionSecret,
		Generator:     handler.NewGeneratorHandler(genService),
		Converter:     handler.NewConverterHandler(convService),
		Session:       handler.NewSessionHandler(sessService),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			"port", cfg.Port,
			"env", cfg.Env,
			"currencies", len(table.Codes()),
			"rates_latency", cfg.RatesLatency,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
