package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/screwyprof/stakeview/pkg/clock"
)

// Option configures the Service
// ------------------------------------------------
type Option func(*Service)

// WithClock injects a custom Clock (e.g., for testing)
func WithClock(c Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithPollInterval sets the polling interval
func WithPollInterval(d time.Duration) Option {
	return func(s *Service) { s.pollInterval = d }
}

// Service polls delegators and records their summaries when they change
// ---------------------------------------------------------------------
type Service struct {
	summarizer   Summarizer
	store        Store
	addresses    []string
	clock        Clock
	pollInterval time.Duration
	events       chan Event
}

// NewService constructs a Service with required dependencies and options.
// By default, it uses a real clock and a 30s poll interval.
func NewService(summarizer Summarizer, store Store, addresses []string, opts ...Option) *Service {
	s := &Service{
		summarizer:   summarizer,
		store:        store,
		addresses:    addresses,
		clock:        clock.SystemClock{},
		pollInterval: DefaultPollInterval,
		events:       make(chan Event, 10),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the tracker and returns the events channel and done channel.
//
// Shutdown pattern:
//  1. Cancel context to request shutdown: cancel()
//  2. Service stops producing events and closes events channel
//  3. Wait for complete shutdown: <-done
//
// The first cycle runs immediately, the following ones every poll interval.
func (s *Service) Start(ctx context.Context) (<-chan Event, <-chan struct{}) {
	done := make(chan struct{})
	go func() {
		defer close(s.events)
		defer close(done)
		s.run(ctx)
	}()
	return s.events, done
}

func (s *Service) run(ctx context.Context) {
	s.events <- TrackingStarted{
		Addresses: len(s.addresses),
		Interval:  s.pollInterval,
	}

	s.cycle(ctx)
	for {
		select {
		case <-ctx.Done():
			s.events <- TrackingShutdown{Reason: ctx.Err()}
			return
		case <-s.clock.After(s.pollInterval):
			s.cycle(ctx)
		}
	}
}

// cycle tracks every address once. A failing address does not stop the others.
func (s *Service) cycle(ctx context.Context) {
	start := s.clock.Now()
	var result CycleCompleted

	for _, address := range s.addresses {
		// respect cancellation
		if ctx.Err() != nil {
			return
		}

		ev, err := s.track(ctx, address)
		if err != nil {
			result.Failed++
			s.events <- TrackingError{Address: address, Err: err}
			continue
		}

		switch ev.(type) {
		case SnapshotRecorded:
			result.Recorded++
		case SnapshotUnchanged:
			result.Unchanged++
		}
		s.events <- ev
	}

	result.Duration = s.clock.Now().Sub(start)
	s.events <- result
}

// track recomputes the summary of address and saves it when it differs from the last one
func (s *Service) track(ctx context.Context, address string) (Event, error) {
	summary, err := s.summarizer.Summarize(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSummaryFailed, err)
	}

	latest, err := s.store.LatestFingerprint(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFingerprintLookup, err)
	}

	fingerprint := summary.Fingerprint()
	if fingerprint == latest {
		return SnapshotUnchanged{Address: address, Fingerprint: fingerprint}, nil
	}

	snapshot := Snapshot{
		Address:     address,
		Summary:     summary,
		Currency:    s.summarizer.Currency(),
		Fingerprint: fingerprint,
		RecordedAt:  s.clock.Now(),
	}
	if err := s.store.SaveSnapshot(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSaveSnapshot, err)
	}

	return SnapshotRecorded{
		Address:     address,
		Fingerprint: fingerprint,
		RecordedAt:  snapshot.RecordedAt,
	}, nil
}
