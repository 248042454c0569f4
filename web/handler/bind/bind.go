package bind

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cosmos/btcutil/bech32"

	"github.com/screwyprof/stakeview/staking"
	"github.com/screwyprof/stakeview/web/api"
	"github.com/screwyprof/stakeview/web/history"
)

// maxAddressLength bounds the bech32 string accepted by the decoder
const maxAddressLength = 90

// Sentinel errors for request binding
var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrInvalidPage    = errors.New("invalid page parameter")
	ErrInvalidPerPage = errors.New("invalid per_page parameter")

	// Specific address validation errors
	ErrAddressMissing    = errors.New("address is required")
	ErrAddressPrefix     = errors.New("address has the wrong prefix")
	ErrAddressDataLength = errors.New("address must encode 20 or 32 bytes")
	ErrAddressNotBech32  = errors.New("address is not valid bech32")

	// Specific page validation errors
	ErrPageNotNumeric  = errors.New("page must be numeric")
	ErrPageNotPositive = errors.New("page must be positive")
	ErrPageTooLarge    = errors.New("page is beyond the last addressable page")

	// Specific per_page validation errors
	ErrPerPageNotNumeric  = errors.New("per_page must be numeric")
	ErrPerPageNotPositive = errors.New("per_page must be positive")
	ErrPerPageTooLarge    = errors.New("per_page must be between 1 and 100")
)

// Address binds and validates the {address} path value against the account prefix
func Address(r *http.Request, prefix string) (string, error) {
	address := r.PathValue("address")
	if err := validateAddress(address, prefix); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	return address, nil
}

// validateAddress checks the bech32 checksum, the human readable part and the payload size
func validateAddress(address, prefix string) error {
	if address == "" {
		return ErrAddressMissing
	}

	hrp, data, err := bech32.Decode(address, maxAddressLength)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAddressNotBech32, err)
	}

	if hrp != prefix {
		return fmt.Errorf("%w: expected %q, got %q", ErrAddressPrefix, prefix, hrp)
	}

	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAddressNotBech32, err)
	}
	if len(payload) != 20 && len(payload) != 32 {
		return ErrAddressDataLength
	}

	return nil
}

// GetSnapshotsRequest binds HTTP request to SnapshotsRequest with defaults
func GetSnapshotsRequest(r *http.Request, prefix string) (api.SnapshotsRequest, error) {
	req := api.SnapshotsRequest{
		Page:    history.DefaultPage,
		PerPage: history.DefaultPerPage,
	}

	address, err := Address(r, prefix)
	if err != nil {
		return req, err
	}
	req.Address = address

	query := r.URL.Query()

	if pageParam := query.Get("page"); pageParam != "" {
		page, err := parsePageNumber(pageParam)
		if err != nil {
			return req, fmt.Errorf("%w: %w", ErrInvalidPage, err)
		}
		req.Page = page
	}

	if perPageParam := query.Get("per_page"); perPageParam != "" {
		perPage, err := parsePerPageLimit(perPageParam)
		if err != nil {
			return req, fmt.Errorf("%w: %w", ErrInvalidPerPage, err)
		}
		req.PerPage = perPage
	}

	return req, nil
}

// parsePageNumber validates that the page parameter is a positive integer
func parsePageNumber(pageParam string) (uint64, error) {
	page, err := strconv.ParseUint(pageParam, 10, 64)
	if err != nil {
		return 0, ErrPageNotNumeric
	}

	if page == 0 {
		return 0, ErrPageNotPositive
	}

	if page > history.MaxPage {
		return 0, ErrPageTooLarge
	}

	return page, nil
}

// parsePerPageLimit validates that the per_page parameter is within acceptable limits
func parsePerPageLimit(perPageParam string) (uint64, error) {
	perPage, err := strconv.ParseUint(perPageParam, 10, 64)
	if err != nil {
		return 0, ErrPerPageNotNumeric
	}

	if perPage == 0 {
		return 0, ErrPerPageNotPositive
	}

	if perPage > history.MaxPerPage {
		return 0, ErrPerPageTooLarge
	}

	return perPage, nil
}

// Denoms names the denominations amounts are expressed in
type Denoms struct {
	Currency string // reward value
	Native   string // delegated, unbonding and native reward
}

// GetSummaryResponse binds a computed summary to the API response format
func GetSummaryResponse(address string, s staking.Summary, denoms Denoms) api.SummaryResponse {
	resp := api.SummaryResponse{
		Address:          address,
		State:            s.State.String(),
		Delegated:        amount(s.DelegationTotal, denoms.Native),
		Rewards:          rewards(s.Rewards, s.NativeReward, denoms),
		WithdrawEligible: s.WithdrawEligible,
	}

	if s.ShowUnbonding {
		unbonding := amount(s.UnbondingTotal, denoms.Native)
		resp.Unbonding = &unbonding
	}

	return resp
}

// GetWithdrawResponse binds a withdraw plan to the API response format
func GetWithdrawResponse(address string, req staking.WithdrawRequest) api.WithdrawResponse {
	amounts := make([]api.Amount, len(req.Amounts))
	for i, c := range req.Amounts {
		amounts[i] = amount(c.Amount, c.Denom)
	}

	return api.WithdrawResponse{
		Address:    address,
		Amounts:    amounts,
		Validators: req.Validators,
	}
}

// GetSnapshotsResponse binds recorded snapshots to the API response format
func GetSnapshotsResponse(snapshots []history.Snapshot, nativeDenom string) api.SnapshotsResponse {
	data := make([]api.Snapshot, len(snapshots))
	for i, s := range snapshots {
		denoms := Denoms{Currency: s.Currency, Native: nativeDenom}
		data[i] = api.Snapshot{
			RecordedAt:       s.RecordedAt.UTC().Format(time.RFC3339),
			State:            s.State,
			Delegated:        amount(s.DelegationTotal, nativeDenom),
			Unbonding:        amount(s.UnbondingTotal, nativeDenom),
			Rewards:          rewards(s.Rewards, s.NativeReward, denoms),
			WithdrawEligible: s.WithdrawEligible,
		}
	}

	return api.SnapshotsResponse{
		Data: data,
	}
}

func rewards(total staking.Total, nativeReward string, denoms Denoms) api.Rewards {
	list := make([]api.Amount, len(total.List))
	for i, c := range total.List {
		list[i] = amount(c.Amount, c.Denom)
	}

	return api.Rewards{
		Total:            amount(total.Sum, denoms.Currency),
		Native:           amount(nativeReward, denoms.Native),
		List:             list,
		ValueUnavailable: total.Sum == staking.NaN,
	}
}

func amount(raw, denom string) api.Amount {
	d := staking.Display(staking.Coin{Denom: denom, Amount: raw})
	return api.Amount{
		Raw:   raw,
		Value: d.Value,
		Unit:  d.Unit,
	}
}
