package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/screwyprof/stakeview/pkg/httpkit"
	"github.com/screwyprof/stakeview/staking"
	"github.com/screwyprof/stakeview/web/api"
	"github.com/screwyprof/stakeview/web/handler/bind"
)

const (
	GetSummaryRoute  = http.MethodGet + " " + "/staking/{address}/summary"
	GetWithdrawRoute = http.MethodGet + " " + "/staking/{address}/withdraw"
)

// DefaultAccountPrefix is the bech32 prefix of Terra accounts
const DefaultAccountPrefix = "terra"

// Sentinel errors
var (
	ErrSummaryFailed = errors.New("failed to compute staking summary")
)

// Summarizer computes the live staking summary of a delegator
type Summarizer interface {
	Summarize(ctx context.Context, address string) (staking.Summary, error)
	Currency() string
	NativeDenom() string
}

type StakingSummary struct {
	summarizer Summarizer
	prefix     string
}

func NewStakingSummary(summarizer Summarizer, prefix string) *StakingSummary {
	return &StakingSummary{
		summarizer: summarizer,
		prefix:     prefix,
	}
}

func (h *StakingSummary) AddRoutes(m *http.ServeMux) {
	m.Handle(GetSummaryRoute, httpkit.HandlerFunc(h.GetSummary))
	m.Handle(GetWithdrawRoute, httpkit.HandlerFunc(h.GetWithdraw))
}

// GetSummary recomputes the summary from the current chain state
func (h *StakingSummary) GetSummary(w http.ResponseWriter, r *http.Request) http.HandlerFunc {
	address, err := bind.Address(r, h.prefix)
	if err != nil {
		return httpkit.JsonError(api.BadRequest(err))
	}

	summary, err := h.summarizer.Summarize(r.Context(), address)
	if err != nil {
		return httpkit.JsonError(api.BadGateway(fmt.Errorf("%w: %w", ErrSummaryFailed, err)))
	}

	return httpkit.JSON(bind.GetSummaryResponse(address, summary, h.denoms()))
}

// GetWithdraw returns what a withdraw of all rewards would claim.
// Responds with 409 while the rewards are not eligible for withdrawal.
func (h *StakingSummary) GetWithdraw(w http.ResponseWriter, r *http.Request) http.HandlerFunc {
	address, err := bind.Address(r, h.prefix)
	if err != nil {
		return httpkit.JsonError(api.BadRequest(err))
	}

	summary, err := h.summarizer.Summarize(r.Context(), address)
	if err != nil {
		return httpkit.JsonError(api.BadGateway(fmt.Errorf("%w: %w", ErrSummaryFailed, err)))
	}

	plan, err := staking.PlanWithdraw(summary)
	if err != nil {
		return httpkit.JsonError(api.Conflict(err))
	}

	return httpkit.JSON(bind.GetWithdrawResponse(address, plan))
}

func (h *StakingSummary) denoms() bind.Denoms {
	return bind.Denoms{
		Currency: h.summarizer.Currency(),
		Native:   h.summarizer.NativeDenom(),
	}
}
