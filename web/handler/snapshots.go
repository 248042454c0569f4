package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/screwyprof/stakeview/pkg/httpkit"
	"github.com/screwyprof/stakeview/web/api"
	"github.com/screwyprof/stakeview/web/handler/bind"
	"github.com/screwyprof/stakeview/web/history"
)

const GetSnapshotsRoute = http.MethodGet + " " + "/staking/{address}/snapshots"

// Sentinel errors
var (
	ErrQueryFailed = errors.New("failed to query snapshots")
)

type StakingSnapshots struct {
	finder      history.SnapshotsFinder
	prefix      string
	nativeDenom string
}

func NewStakingSnapshots(finder history.SnapshotsFinder, prefix, nativeDenom string) *StakingSnapshots {
	return &StakingSnapshots{
		finder:      finder,
		prefix:      prefix,
		nativeDenom: nativeDenom,
	}
}

func (h *StakingSnapshots) AddRoutes(m *http.ServeMux) {
	m.Handle(GetSnapshotsRoute, httpkit.HandlerFunc(h.GetSnapshots))
}

func (h *StakingSnapshots) GetSnapshots(w http.ResponseWriter, r *http.Request) http.HandlerFunc {
	req, err := bind.GetSnapshotsRequest(r, h.prefix)
	if err != nil {
		return httpkit.JsonError(api.BadRequest(err))
	}

	criteria, err := history.NewSnapshotsCriteria(req.Address, req.Page, req.PerPage)
	if err != nil {
		return httpkit.JsonError(api.BadRequest(err))
	}

	page, err := h.finder.FindSnapshots(r.Context(), criteria)
	if err != nil {
		return httpkit.JsonError(api.InternalServerError(fmt.Errorf("%w: %w", ErrQueryFailed, err)))
	}

	if linkHeader := buildPaginationLinks(page, r.URL); linkHeader != "" {
		w.Header().Set("Link", linkHeader)
	}

	return httpkit.JSON(bind.GetSnapshotsResponse(page.Snapshots, h.nativeDenom))
}

// buildPaginationLinks creates GitHub-style Link header for pagination navigation.
// first and last are omitted, last would need a count query.
func buildPaginationLinks(page *history.SnapshotsPage, baseURL *url.URL) string {
	var links []string

	u := *baseURL
	query := u.Query()

	if page.HasPrevious() {
		query.Set("page", fmt.Sprintf("%d", page.Number-1))
		query.Set("per_page", fmt.Sprintf("%d", page.Size))
		u.RawQuery = query.Encode()
		links = append(links, fmt.Sprintf(`<%s>; rel="prev"`, u.String()))
	}

	if page.HasNext() {
		query.Set("page", fmt.Sprintf("%d", page.Number+1))
		query.Set("per_page", fmt.Sprintf("%d", page.Size))
		u.RawQuery = query.Encode()
		links = append(links, fmt.Sprintf(`<%s>; rel="next"`, u.String()))
	}

	return strings.Join(links, ", ")
}
