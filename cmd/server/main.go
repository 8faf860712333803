// Package main provides the API server entry point for the quantum ledger
// backend.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/quantum-ledger/quantum-backend/internal/adapter"
	"github.com/quantum-ledger/quantum-backend/internal/api"
	"github.com/quantum-ledger/quantum-backend/internal/auth"
	"github.com/quantum-ledger/quantum-backend/internal/config"
	"github.com/quantum-ledger/quantum-backend/internal/logging"
	"github.com/quantum-ledger/quantum-backend/internal/service"
	"github.com/quantum-ledger/quantum-backend/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize structured logging
	logLevel := logging.ParseLogLevel(cfg.Logging.Level)
	logFormat := logging.ParseLogFormat(cfg.Logging.Format)
	logging.InitGlobalLogger(logLevel, logFormat)

	logger := logging.GetGlobalLogger()
	logger.WithFields(map[string]interface{}{
		"level":  cfg.Logging.Level,
		"format": cfg.Logging.Format,
	}).Info("Structured logging initialized")

	if cfg.Auth.UsingDevSecret {
		logger.Warn("JWT_SECRET is not set; using the insecure development fallback secret. Do not run this in production.")
	}

	// Credential store lives in process memory only; a restart drops all
	// registered users.
	credentialStore := storage.NewCredentialStore()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := auth.NewService(credentialStore, tokens, cfg.Auth.BcryptCost)

	// Optional Redis-backed quote cache. The dashboard works without it;
	// every snapshot just hits the feed.
	var quoteCache service.QuoteCache
	var cachePing api.Pinger
	if cfg.Redis.Enabled {
		redisCache, err := storage.NewRedisCache(&cfg.Redis)
		if err != nil {
			logger.WithError(err).Warn("Redis unavailable, continuing without quote cache")
		} else {
			defer redisCache.Close()
			quoteCache = storage.NewQuoteCache(redisCache, &cfg.Market)
			cachePing = redisCache
			logger.Info("Quote cache enabled")
		}
	}

	gateway := adapter.NewCoinGeckoClient(&cfg.Market)
	portfolioService := service.NewPortfolioService(gateway, quoteCache, service.DemoHoldings(), cfg.Market.AssetIDs)

	serverConfig := &api.ServerConfig{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}

	server := api.NewServer(serverConfig, authService, portfolioService, cachePing)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	logger.WithFields(map[string]interface{}{
		"host": cfg.Server.Host,
		"port": cfg.Server.Port,
	}).Info("Server started successfully")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), serverConfig.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	logger.Info("Server exited")
}
