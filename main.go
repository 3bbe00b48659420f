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

	"github.com/example/tunamentor/internal/config"
	"github.com/example/tunamentor/internal/database"
	"github.com/example/tunamentor/internal/server"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	if problems := cfg.Validate(); len(problems) > 0 {
		for _, p := range problems {
			logger.Warn("configuration problem", "problem", p)
		}
		if cfg.IsProduction() {
			log.Fatalf("refusing to start in production with %d configuration problems", len(problems))
		}
	}

	dsn := cfg.DatabasePath
	if cfg.DBType == "postgres" {
		dsn = cfg.DatabaseURL
	}
	if err := database.Connect(cfg.DBType, dsn); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	srv := server.New(cfg, logger)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()
	logger.Info("server started", "port", cfg.Port, "student", cfg.StudentName)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("shutting down", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
