package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Zakaria-Tajer/fx/internal/config"
	"github.com/Zakaria-Tajer/fx/internal/currency"
	"github.com/Zakaria-Tajer/fx/internal/database"
	"github.com/Zakaria-Tajer/fx/internal/handler"
	"github.com/Zakaria-Tajer/fx/internal/repository"
	"github.com/Zakaria-Tajer/fx/internal/router"
	"github.com/Zakaria-Tajer/fx/internal/service"
	"github.com/Zakaria-Tajer/fx/internal/validation"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting FX deal import server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The code set is read-only from here on and shared by every request.
	codes, err := loadCurrencies(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to load currency codes: %w", err)
	}

	location, err := cfg.Import.Location()
	if err != nil {
		return fmt.Errorf("failed to resolve import timezone: %w", err)
	}

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool, logger); err != nil {
		return err
	}

	dealRepo := repository.NewDealRepository(pool, logger)

	validator := validation.NewDealValidator(codes, logger)
	importService := service.NewImportService(dealRepo, validator, service.NewCSVParser(location), logger)
	dealService := service.NewDealService(dealRepo, logger)

	dealHandler := handler.NewDealHandler(importService, dealService, cfg.Import.MaxUploadBytes(), logger)

	mux := router.New(dealHandler, cfg.Auth.APIKey, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// loadCurrencies reads the ISO 4217 list, from S3 when enabled with the local file as fallback.
func loadCurrencies(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (currency.CodeSet, error) {
	fileLoader := currency.NewFileLoader(logger)

	var s3Loader currency.Loader
	if cfg.S3.Enabled {
		loader, err := currency.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = loader
		}
	} else {
		logger.Info().Msg("using local file system for currency list (S3 disabled)")
	}

	loader := currency.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, cfg.S3.Enabled, logger)

	codes, err := loader.Load(ctx, cfg.Currency.File)
	if err != nil {
		return nil, err
	}
	if err := currency.EnsureNotEmpty(codes, cfg.Currency.File); err != nil {
		return nil, err
	}

	logger.Info().Int("codes", codes.Size()).Msg("currency reference list ready")
	return codes, nil
}
