package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/screwyprof/stakeview/pkg/lcd"
	"github.com/screwyprof/stakeview/pkg/logger"
	"github.com/screwyprof/stakeview/pkg/pgxdb"
	"github.com/screwyprof/stakeview/summary"
	"github.com/screwyprof/stakeview/tracker"
	"github.com/screwyprof/stakeview/tracker/config"
	"github.com/screwyprof/stakeview/tracker/store/pgxstore"
)

// These values are overridden at build time using -ldflags
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
		Service:          "tracker",
	})
	slog.SetDefault(log)

	// Prepare context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lcdURL, err := lcd.BaseURL(cfg.Network, cfg.LCDURL)
	if err != nil {
		log.ErrorContext(ctx, "Failed to resolve LCD endpoint", slog.Any("error", err))
		os.Exit(1)
	}

	// Database connection
	db, err := pgxdb.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		log.ErrorContext(ctx, "Failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}

	// Initialize store, closing it closes the pool
	store, storeCloser := pgxstore.New(db)
	defer storeCloser()

	// HTTP client & LCD client
	httpClient := &http.Client{Timeout: cfg.HttpClientTimeout}
	summarizer := summary.NewService(
		lcd.NewClient(httpClient, lcdURL),
		summary.WithCurrency(cfg.Currency),
		summary.WithNativeDenom(cfg.NativeDenom),
		summary.WithLogger(log),
	)

	trackerService := tracker.NewService(
		summarizer,
		store,
		cfg.Addresses,
		tracker.WithPollInterval(cfg.PollInterval),
	)

	log.InfoContext(ctx, "Starting staking tracker service",
		slog.String("version", version),
		slog.String("date", date),
		slog.String("lcd", lcdURL),
		slog.Int("addresses", len(cfg.Addresses)),
	)
	events, done := trackerService.Start(ctx)

	// Subscribe to events for logging
	subCloser := setupEventLogging(ctx, events, log)
	defer subCloser()

	// Wait for shutdown
	<-done
	log.InfoContext(ctx, "Tracker service stopped gracefully")
}

// setupEventLogging configures event handlers using slog directly
func setupEventLogging(ctx context.Context, events <-chan tracker.Event, log *slog.Logger) func() {
	return tracker.NewSubscriber(events,
		tracker.OnTrackingStarted(func(event tracker.TrackingStarted) {
			log.InfoContext(ctx, "Tracking started",
				slog.Int("addresses", event.Addresses),
				slog.Duration("interval", event.Interval),
			)
		}),
		tracker.OnSnapshotRecorded(func(event tracker.SnapshotRecorded) {
			log.InfoContext(ctx, "Snapshot recorded",
				slog.String("address", event.Address),
				slog.String("fingerprint", event.Fingerprint),
				slog.String("recordedAt", event.RecordedAt.Format(logger.BritishTimeFormat)),
			)
		}),
		tracker.OnSnapshotUnchanged(func(event tracker.SnapshotUnchanged) {
			log.DebugContext(ctx, "Summary unchanged",
				slog.String("address", event.Address),
			)
		}),
		tracker.OnCycleCompleted(func(event tracker.CycleCompleted) {
			log.InfoContext(ctx, "Tracking cycle completed",
				slog.Int("recorded", event.Recorded),
				slog.Int("unchanged", event.Unchanged),
				slog.Int("failed", event.Failed),
				slog.Duration("duration", event.Duration),
			)
		}),
		tracker.OnTrackingError(func(event tracker.TrackingError) {
			log.ErrorContext(ctx, "Tracking failed",
				slog.String("address", event.Address),
				slog.Any("error", event.Err),
			)
		}),
		tracker.OnTrackingShutdown(func(event tracker.TrackingShutdown) {
			log.InfoContext(ctx, "Tracking stopped",
				slog.String("reason", event.Reason.Error()),
			)
		}),
	)
}
