package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/atsops/orderdesk/internal/adapter/handler"
	"github.com/atsops/orderdesk/internal/adapter/storage"
	"github.com/atsops/orderdesk/internal/config"
	"github.com/atsops/orderdesk/internal/core/service"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store, closeStore, err := storage.Open(ctx, storage.Config{
		Backend:   cfg.Store.Backend,
		RedisAddr: cfg.Store.RedisAddr,
		MySQLDSN:  cfg.Store.MySQLDSN,
	})
	if err != nil {
		slog.Error("failed to connect store", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}
	slog.Info("connected to store", "backend", cfg.Store.Backend)

	audit := service.NewAuditLog(store)
	query := service.NewOrderQuery(store)
	orders := service.NewOrderService(store, audit, query)

	httpHandler := handler.NewHTTPHandler(orders, audit, query)
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpHandler.Routes(),
	}

	go func() {
		slog.Info("HTTP server listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	slog.Info("HTTP server stopped")

	closeStore()
	slog.Info("store connection closed")
}
