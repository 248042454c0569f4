package api

// SnapshotsRequest represents the query parameters for GET /staking/{address}/snapshots
type SnapshotsRequest struct {
	Address string `path:"address"`
	Page    uint64 `query:"page"`     // Page number for pagination (default: 1)
	PerPage uint64 `query:"per_page"` // Number of items per page (default: 20, max: 100)
}

// Amount is a raw chain amount together with its display form
type Amount struct {
	Raw   string `json:"raw"`
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

// Rewards is the claimable reward total
type Rewards struct {
	Total            Amount   `json:"total"`
	Native           Amount   `json:"native"`
	List             []Amount `json:"list"`
	ValueUnavailable bool     `json:"value_unavailable"`
}

// SummaryResponse represents the API response format for GET /staking/{address}/summary
type SummaryResponse struct {
	Address          string  `json:"address"`
	State            string  `json:"state"`
	Delegated        Amount  `json:"delegated"`
	Unbonding        *Amount `json:"unbonding,omitempty"` // omitted while unknown
	Rewards          Rewards `json:"rewards"`
	WithdrawEligible bool    `json:"withdraw_eligible"`
}

// WithdrawResponse represents the API response format for GET /staking/{address}/withdraw
type WithdrawResponse struct {
	Address    string   `json:"address"`
	Amounts    []Amount `json:"amounts"`
	Validators []string `json:"validators"`
}

// Snapshot represents a single recorded summary in the API response
type Snapshot struct {
	RecordedAt       string  `json:"recorded_at"`
	State            string  `json:"state"`
	Delegated        Amount  `json:"delegated"`
	Unbonding        Amount  `json:"unbonding"`
	Rewards          Rewards `json:"rewards"`
	WithdrawEligible bool    `json:"withdraw_eligible"`
}

// SnapshotsResponse represents the API response format for GET /staking/{address}/snapshots
type SnapshotsResponse struct {
	Data []Snapshot `json:"data"`
}
