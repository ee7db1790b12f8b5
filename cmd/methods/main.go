package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielPopoola/ficmart-payment-methods/internal/application/services"
	"github.com/DanielPopoola/ficmart-payment-methods/internal/config"
	"github.com/DanielPopoola/ficmart-payment-methods/internal/infrastructure/feecalc"
	"github.com/DanielPopoola/ficmart-payment-methods/internal/infrastructure/gateway"
	"github.com/DanielPopoola/ficmart-payment-methods/internal/infrastructure/persistence"
	"github.com/DanielPopoola/ficmart-payment-methods/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/ficmart-payment-methods/internal/infrastructure/sessionstore"
	"github.com/DanielPopoola/ficmart-payment-methods/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/ficmart-payment-methods/internal/interfaces/rest/middleware"
	"github.com/DanielPopoola/ficmart-payment-methods/internal/token"
	"github.com/DanielPopoola/ficmart-payment-methods/internal/uniqueid"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting payment methods service",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
	)

	ctx := context.Background()
	db, err := persistence.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store, err := sessionstore.NewRedisStore(cfg.Redis, cfg.Session.TTL)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	catalogRepo := postgres.NewCatalogRepository(db.Pool)
	orderIDs := uniqueid.NewGenerator(store)
	tokenIssuer := token.NewIssuer([]byte(cfg.Session.TokenSecret), cfg.Session.TokenValidity)
	gatewayClient := gateway.NewGatewayClient(cfg.Gateway)
	calculatorClient := feecalc.NewCalculatorClient(cfg.FeeCalculator)

	sessionService := services.NewSessionService(
		catalogRepo,
		store,
		orderIDs,
		tokenIssuer,
		gatewayClient,
		services.SessionURLs{
			BasePath:        cfg.Session.BasePath,
			OutcomeSuffix:   cfg.Session.OutcomeSuffix,
			CancelSuffix:    cfg.Session.CancelSuffix,
			NotificationURL: cfg.Session.NotificationURL,
		},
		logger,
	)
	feeService := services.NewFeeService(catalogRepo, calculatorClient, logger)

	h := handlers.NewHandlers(sessionService, feeService, logger)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	handler := middleware.Recovery(logger)(mux)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.ReadTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
