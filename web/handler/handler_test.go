package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screwyprof/stakeview/staking"
	"github.com/screwyprof/stakeview/web/api"
	"github.com/screwyprof/stakeview/web/handler"
	"github.com/screwyprof/stakeview/web/history"
)

const (
	validAddress  = "terra1qypqxpq9qcrsszg2pvxq6rs0zqg3yyc5exk7yu"
	cosmosAddress = "cosmos1qypqxpq9qcrsszg2pvxq6rs0zqg3yyc5lzv7xu"
)

func TestGetSummary(t *testing.T) {
	t.Parallel()

	t.Run("it returns the live summary", func(t *testing.T) {
		t.Parallel()

		// Arrange
		server := serverWith(summarizerReturning(stakedWithRewards()), &fakeFinder{})

		// Act
		rec := get(server, "/staking/"+validAddress+"/summary")
		resp := decode[api.SummaryResponse](t, rec)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, validAddress, resp.Address)
		assert.Equal(t, "summary", resp.State)
		assert.Equal(t, "2.000000", resp.Delegated.Value)
		assert.Equal(t, "Luna", resp.Delegated.Unit)
		assert.True(t, resp.WithdrawEligible)
	})

	t.Run("it rejects addresses of other chains", func(t *testing.T) {
		t.Parallel()

		// Arrange
		summarizer := summarizerReturning(stakedWithRewards())
		server := serverWith(summarizer, &fakeFinder{})

		// Act
		rec := get(server, "/staking/"+cosmosAddress+"/summary")

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, summarizer.calls, "Invalid addresses should never reach the chain")
	})

	t.Run("it reports an unreachable chain as bad gateway", func(t *testing.T) {
		t.Parallel()

		// Arrange
		summarizer := &fakeSummarizer{err: errors.New("connection refused")}
		server := serverWith(summarizer, &fakeFinder{})

		// Act
		rec := get(server, "/staking/"+validAddress+"/summary")
		body := decode[map[string]any](t, rec)

		// Assert
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.NotContains(t, body["message"], "connection refused")
	})
}

func TestGetWithdraw(t *testing.T) {
	t.Parallel()

	t.Run("it returns the withdraw plan when rewards are eligible", func(t *testing.T) {
		t.Parallel()

		// Arrange
		server := serverWith(summarizerReturning(stakedWithRewards()), &fakeFinder{})

		// Act
		rec := get(server, "/staking/"+validAddress+"/withdraw")
		resp := decode[api.WithdrawResponse](t, rec)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"terravaloper1a", "terravaloper1b"}, resp.Validators)
		require.Len(t, resp.Amounts, 1)
		assert.Equal(t, "UST", resp.Amounts[0].Unit)
	})

	t.Run("it conflicts when the reward value is unknown", func(t *testing.T) {
		t.Parallel()

		// Arrange
		summary := staking.Summarize(staking.Input{
			Delegations: []staking.Delegation{{ValidatorAddress: "terravaloper1a", Amount: "1"}},
			Rewards: []staking.ValidatorRewards{{
				ValidatorAddress: "terravaloper1a",
				Reward:           []staking.Coin{{Denom: "ukrw", Amount: "10"}},
			}},
			Currency:    "uusd",
			NativeDenom: "uluna",
		})
		server := serverWith(summarizerReturning(summary), &fakeFinder{})

		// Act
		rec := get(server, "/staking/"+validAddress+"/withdraw")
		body := decode[map[string]any](t, rec)

		// Assert
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, staking.ErrWithdrawNotEligible.Error(), body["message"])
	})
}

func TestGetSnapshots(t *testing.T) {
	t.Parallel()

	t.Run("it returns a page of history", func(t *testing.T) {
		t.Parallel()

		// Arrange
		finder := &fakeFinder{page: &history.SnapshotsPage{
			Snapshots: []history.Snapshot{recordedSnapshot()},
			Number:    1,
			Size:      history.DefaultPerPage,
		}}
		server := serverWith(summarizerReturning(stakedWithRewards()), finder)

		// Act
		rec := get(server, "/staking/"+validAddress+"/snapshots")
		resp := decode[api.SnapshotsResponse](t, rec)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "2024-01-01T00:00:00Z", resp.Data[0].RecordedAt)
		assert.Empty(t, rec.Header().Get("Link"), "A single page needs no navigation")
		assert.Equal(t, validAddress, finder.criteria.Address)
	})

	t.Run("it links to neighbouring pages", func(t *testing.T) {
		t.Parallel()

		// Arrange
		finder := &fakeFinder{page: &history.SnapshotsPage{
			Snapshots: []history.Snapshot{recordedSnapshot()},
			HasMore:   true,
			Number:    2,
			Size:      1,
		}}
		server := serverWith(summarizerReturning(stakedWithRewards()), finder)

		// Act
		rec := get(server, "/staking/"+validAddress+"/snapshots?page=2&per_page=1")

		// Assert
		link := rec.Header().Get("Link")
		assert.Contains(t, link, `page=1&per_page=1>; rel="prev"`)
		assert.Contains(t, link, `page=3&per_page=1>; rel="next"`)
		assert.Equal(t, uint64(2), finder.criteria.Page.Uint64())
	})

	t.Run("it rejects invalid pagination", func(t *testing.T) {
		t.Parallel()

		// Arrange
		server := serverWith(summarizerReturning(stakedWithRewards()), &fakeFinder{})

		for _, query := range []string{"per_page=500", "page=18446744073709551615"} {
			// Act
			rec := get(server, "/staking/"+validAddress+"/snapshots?"+query)

			// Assert
			assert.Equal(t, http.StatusBadRequest, rec.Code, query)
		}
	})

	t.Run("it hides store failures", func(t *testing.T) {
		t.Parallel()

		// Arrange
		server := serverWith(summarizerReturning(stakedWithRewards()), &fakeFinder{err: errors.New("relation does not exist")})

		// Act
		rec := get(server, "/staking/"+validAddress+"/snapshots")
		body := decode[map[string]any](t, rec)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal Server Error", body["message"])
	})
}

// Test data helpers

func stakedWithRewards() staking.Summary {
	return staking.Summarize(staking.Input{
		Delegations: []staking.Delegation{
			{ValidatorAddress: "terravaloper1a", Amount: "1500000"},
			{ValidatorAddress: "terravaloper1b", Amount: "500000"},
		},
		Rewards: []staking.ValidatorRewards{{
			ValidatorAddress: "terravaloper1a",
			Reward:           []staking.Coin{{Denom: "uusd", Amount: "1000"}},
		}},
		Currency:    "uusd",
		NativeDenom: "uluna",
	})
}

func recordedSnapshot() history.Snapshot {
	return history.Snapshot{
		ID:              1,
		Address:         validAddress,
		DelegationTotal: "2000000",
		UnbondingTotal:  "0",
		NativeReward:    "0",
		Rewards:         staking.Total{Sum: "1000", List: []staking.Coin{{Denom: "uusd", Amount: "1000"}}},
		State:           "summary",
		Currency:        "uusd",
		RecordedAt:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func serverWith(summarizer *fakeSummarizer, finder *fakeFinder) http.Handler {
	mux := http.NewServeMux()
	handler.NewStakingSummary(summarizer, handler.DefaultAccountPrefix).AddRoutes(mux)
	handler.NewStakingSnapshots(finder, handler.DefaultAccountPrefix, "uluna").AddRoutes(mux)
	return mux
}

func get(server http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var result T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result), "Response should be valid JSON")
	return result
}

// Mock implementations

type fakeSummarizer struct {
	summary staking.Summary
	err     error
	calls   int
}

func summarizerReturning(s staking.Summary) *fakeSummarizer {
	return &fakeSummarizer{summary: s}
}

func (f *fakeSummarizer) Summarize(_ context.Context, _ string) (staking.Summary, error) {
	f.calls++
	return f.summary, f.err
}

func (f *fakeSummarizer) Currency() string    { return "uusd" }
func (f *fakeSummarizer) NativeDenom() string { return "uluna" }

type fakeFinder struct {
	page     *history.SnapshotsPage
	err      error
	criteria history.SnapshotsCriteria
}

func (f *fakeFinder) FindSnapshots(_ context.Context, criteria history.SnapshotsCriteria) (*history.SnapshotsPage, error) {
	f.criteria = criteria
	if f.err != nil {
		return nil, f.err
	}
	if f.page == nil {
		return &history.SnapshotsPage{Number: criteria.Page, Size: criteria.Size}, nil
	}
	return f.page, nil
}
