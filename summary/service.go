// Package summary assembles a delegator's staking summary from the chain.
package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/screwyprof/stakeview/pkg/lcd"
	"github.com/screwyprof/stakeview/staking"
)

// Sentinel errors for fetch failures
var (
	ErrDelegationsFetch = errors.New("fetching delegations failed")
	ErrUnbondingsFetch  = errors.New("fetching unbonding delegations failed")
	ErrRewardsFetch     = errors.New("fetching rewards failed")
)

// Default configuration values
const (
	DefaultCurrency    = "uusd"
	DefaultNativeDenom = "uluna"
)

// Source provides the raw staking state of a delegator
type Source interface {
	Delegations(ctx context.Context, address string) ([]lcd.Delegation, error)
	UnbondingDelegations(ctx context.Context, address string) ([]lcd.UnbondingDelegation, error)
	Rewards(ctx context.Context, address string) ([]lcd.DelegatorReward, error)
	ExchangeRates(ctx context.Context) ([]lcd.DecCoin, error)
}

// Option configures the Service
type Option func(*Service)

// WithCurrency sets the display currency denom
func WithCurrency(denom string) Option {
	return func(s *Service) { s.currency = denom }
}

// WithNativeDenom sets the staking token denom
func WithNativeDenom(denom string) Option {
	return func(s *Service) { s.nativeDenom = denom }
}

// WithLogger sets the logger used for degraded results
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// Service fetches staking state and recomputes the summary on every call
type Service struct {
	source      Source
	currency    string
	nativeDenom string
	log         *slog.Logger
}

// NewService constructs a Service. By default it values rewards in uusd
// and treats uluna as the staking token.
func NewService(source Source, opts ...Option) *Service {
	s := &Service{
		source:      source,
		currency:    DefaultCurrency,
		nativeDenom: DefaultNativeDenom,
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Currency returns the display currency denom
func (s *Service) Currency() string {
	return s.currency
}

// NativeDenom returns the staking token denom
func (s *Service) NativeDenom() string {
	return s.nativeDenom
}

// Input fetches everything the summary of address depends on.
// A failed exchange rate lookup leaves the input without prices
// so the reward value degrades to unknown instead of failing.
func (s *Service) Input(ctx context.Context, address string) (staking.Input, error) {
	var (
		delegations []lcd.Delegation
		unbondings  []lcd.UnbondingDelegation
		rewards     []lcd.DelegatorReward
		rates       []lcd.DecCoin
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if delegations, err = s.source.Delegations(gctx, address); err != nil {
			return fmt.Errorf("%w: %w", ErrDelegationsFetch, err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if unbondings, err = s.source.UnbondingDelegations(gctx, address); err != nil {
			return fmt.Errorf("%w: %w", ErrUnbondingsFetch, err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if rewards, err = s.source.Rewards(gctx, address); err != nil {
			return fmt.Errorf("%w: %w", ErrRewardsFetch, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if rates, err = s.source.ExchangeRates(gctx); err != nil {
			rates = nil
			// a sibling fetch already failed the summary
			if gctx.Err() != nil {
				return nil
			}
			s.log.WarnContext(ctx, "Exchange rates unavailable, reward value unknown",
				slog.String("address", address),
				slog.Any("error", err),
			)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return staking.Input{}, err
	}

	in := staking.Input{
		Delegations: toDelegations(delegations),
		Unbondings:  toUnbondings(unbondings),
		Rewards:     toRewards(rewards),
		Currency:    s.currency,
		NativeDenom: s.nativeDenom,
	}
	if rates != nil {
		in.Prices = staking.NewExchangeRatePrices(s.nativeDenom, s.currency, toCoins(rates))
	}

	return in, nil
}

// Summarize fetches the current state of address and computes its summary
func (s *Service) Summarize(ctx context.Context, address string) (staking.Summary, error) {
	in, err := s.Input(ctx, address)
	if err != nil {
		return staking.Summary{}, err
	}
	return staking.Summarize(in), nil
}
