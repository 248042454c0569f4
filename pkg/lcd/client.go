package lcd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Sentinel errors for LCD requests
var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrDecodeResponse   = errors.New("decoding response failed")
	ErrPaginationLoop   = errors.New("pagination key repeated")
)

const (
	delegationsPath = "/cosmos/staking/v1beta1/delegations/%s"
	unbondingsPath  = "/cosmos/staking/v1beta1/delegators/%s/unbonding_delegations"
	rewardsPath     = "/cosmos/distribution/v1beta1/delegators/%s/rewards"
	ratesPath       = "/terra/oracle/v1beta1/denoms/exchange_rates"

	paginationKeyParam = "pagination.key"
)

// Client represents a Cosmos LCD (REST) API client
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new LCD client with custom HTTP client and base URL
func NewClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// DecCoin is a coin with a decimal string amount
type DecCoin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

// Delegation is one entry of the delegator's delegations
type Delegation struct {
	Delegation struct {
		DelegatorAddress string `json:"delegator_address"`
		ValidatorAddress string `json:"validator_address"`
		Shares           string `json:"shares"`
	} `json:"delegation"`
	Balance DecCoin `json:"balance"`
}

// UnbondingEntry is a single undelegation waiting for its completion time
type UnbondingEntry struct {
	CreationHeight string    `json:"creation_height"`
	CompletionTime time.Time `json:"completion_time"`
	InitialBalance string    `json:"initial_balance"`
	Balance        string    `json:"balance"`
}

// UnbondingDelegation groups unbonding entries per validator
type UnbondingDelegation struct {
	DelegatorAddress string           `json:"delegator_address"`
	ValidatorAddress string           `json:"validator_address"`
	Entries          []UnbondingEntry `json:"entries"`
}

// DelegatorReward is the reward accrued from one validator
type DelegatorReward struct {
	ValidatorAddress string    `json:"validator_address"`
	Reward           []DecCoin `json:"reward"`
}

type pagination struct {
	NextKey *string `json:"next_key"`
}

type delegationsResponse struct {
	DelegationResponses []Delegation `json:"delegation_responses"`
	Pagination          pagination   `json:"pagination"`
}

type unbondingsResponse struct {
	UnbondingResponses []UnbondingDelegation `json:"unbonding_responses"`
	Pagination         pagination            `json:"pagination"`
}

type rewardsResponse struct {
	Rewards []DelegatorReward `json:"rewards"`
	Total   []DecCoin         `json:"total"`
}

type exchangeRatesResponse struct {
	ExchangeRates []DecCoin `json:"exchange_rates"`
}

// Delegations retrieves all delegations of a delegator, following pagination
func (c *Client) Delegations(ctx context.Context, address string) ([]Delegation, error) {
	var all []Delegation
	var key string
	pages := pageKeys{}
	for {
		var resp delegationsResponse
		if err := c.get(ctx, fmt.Sprintf(delegationsPath, url.PathEscape(address)), key, &resp); err != nil {
			return nil, err
		}
		all = append(all, resp.DelegationResponses...)

		next, done, err := pages.advance(resp.Pagination.NextKey)
		if err != nil {
			return nil, err
		}
		if done {
			return all, nil
		}
		key = next
	}
}

// UnbondingDelegations retrieves all in-flight undelegations of a delegator
func (c *Client) UnbondingDelegations(ctx context.Context, address string) ([]UnbondingDelegation, error) {
	var all []UnbondingDelegation
	var key string
	pages := pageKeys{}
	for {
		var resp unbondingsResponse
		if err := c.get(ctx, fmt.Sprintf(unbondingsPath, url.PathEscape(address)), key, &resp); err != nil {
			return nil, err
		}
		all = append(all, resp.UnbondingResponses...)

		next, done, err := pages.advance(resp.Pagination.NextKey)
		if err != nil {
			return nil, err
		}
		if done {
			return all, nil
		}
		key = next
	}
}

// pageKeys remembers the pagination keys already followed
type pageKeys map[string]struct{}

// advance returns the key of the next page, or done when there is none.
// A key that was followed before means the server is cycling.
func (p pageKeys) advance(next *string) (string, bool, error) {
	if next == nil || *next == "" {
		return "", true, nil
	}
	if _, ok := p[*next]; ok {
		return "", false, fmt.Errorf("%w: %s", ErrPaginationLoop, *next)
	}
	p[*next] = struct{}{}
	return *next, false, nil
}

// Rewards retrieves the per-validator rewards of a delegator
func (c *Client) Rewards(ctx context.Context, address string) ([]DelegatorReward, error) {
	var resp rewardsResponse
	if err := c.get(ctx, fmt.Sprintf(rewardsPath, url.PathEscape(address)), "", &resp); err != nil {
		return nil, err
	}
	return resp.Rewards, nil
}

// ExchangeRates retrieves oracle rates of every whitelisted denom against the native token
func (c *Client) ExchangeRates(ctx context.Context) ([]DecCoin, error) {
	var resp exchangeRatesResponse
	if err := c.get(ctx, ratesPath, "", &resp); err != nil {
		return nil, err
	}
	return resp.ExchangeRates, nil
}

func (c *Client) get(ctx context.Context, path, paginationKey string, out any) error {
	u := c.baseURL + path
	if paginationKey != "" {
		u += "?" + url.Values{paginationKeyParam: {paginationKey}}.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}

	return nil
}
