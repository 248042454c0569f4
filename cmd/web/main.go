package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/screwyprof/stakeview/pkg/lcd"
	"github.com/screwyprof/stakeview/pkg/logger"
	"github.com/screwyprof/stakeview/pkg/pgxdb"
	"github.com/screwyprof/stakeview/summary"
	"github.com/screwyprof/stakeview/web/config"
	"github.com/screwyprof/stakeview/web/handler"
	"github.com/screwyprof/stakeview/web/store/pgxstore"
)

var (
	version = "dev"
	date    = "unknown"
)

func main() {
	// Load configuration
	cfg := config.New()

	// Initialize logger and set as default
	log := logger.NewFromConfig(logger.Config{
		LogLevel:         cfg.LogLevel,
		LogHumanFriendly: cfg.LogHumanFriendly,
		Service:          "web",
	})
	slog.SetDefault(log)

	// Prepare context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.InfoContext(ctx, "Stakeview Web API Service starting",
		slog.String("version", version),
		slog.String("date", date),
	)

	lcdURL, err := lcd.BaseURL(cfg.Network, cfg.LCDURL)
	if err != nil {
		log.ErrorContext(ctx, "Failed to resolve LCD endpoint", slog.Any("error", err))
		os.Exit(1)
	}

	// Initialize database connection
	db, err := pgxdb.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		log.ErrorContext(ctx, "Failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}

	// Initialize store, closing it closes the pool
	finder, finderCloser := pgxstore.New(db)
	defer finderCloser()

	// Live summaries come straight from the chain
	httpClient := &http.Client{Timeout: cfg.HttpClientTimeout}
	summarizer := summary.NewService(
		lcd.NewClient(httpClient, lcdURL),
		summary.WithCurrency(cfg.Currency),
		summary.WithNativeDenom(cfg.NativeDenom),
		summary.WithLogger(log),
	)

	// Create HTTP server
	mux := http.NewServeMux()
	handler.NewStakingSummary(summarizer, cfg.AccountPrefix).AddRoutes(mux)
	handler.NewStakingSnapshots(finder, cfg.AccountPrefix, cfg.NativeDenom).AddRoutes(mux)

	// Wrap with logging middleware
	loggedMux := logger.NewMiddleware(log)(mux)

	addr := net.JoinHostPort(cfg.HTTPHost, cfg.HTTPPort)
	server := &http.Server{
		Addr:    addr,
		Handler: loggedMux,
	}

	// Start server in a goroutine
	go func() {
		log.InfoContext(ctx, "Server started", slog.String("addr", addr), slog.String("lcd", lcdURL))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.ErrorContext(ctx, "Server failed to start", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()

	log.InfoContext(ctx, "Shutting down server...")

	// Give outstanding requests time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.ErrorContext(ctx, "Server forced to shutdown", slog.Any("error", err))
		os.Exit(1)
	}

	log.InfoContext(ctx, "Server exited gracefully")
}
