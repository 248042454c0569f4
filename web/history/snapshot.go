// Package history exposes the recorded staking snapshots of a delegator.
package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/screwyprof/stakeview/staking"
)

// Sentinel errors for criteria construction
var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrInvalidPage    = errors.New("invalid page")
	ErrInvalidPerPage = errors.New("invalid per_page")
)

// SnapshotsFinder defines the interface for querying snapshots
type SnapshotsFinder interface {
	FindSnapshots(ctx context.Context, criteria SnapshotsCriteria) (*SnapshotsPage, error)
}

// Snapshot is one recorded staking summary
type Snapshot struct {
	ID               int64
	Address          string
	DelegationTotal  string
	UnbondingTotal   string
	NativeReward     string
	Rewards          staking.Total
	WithdrawEligible bool
	State            string
	Currency         string
	RecordedAt       time.Time
}

// SnapshotsCriteria selects a page of one delegator's history, newest first
type SnapshotsCriteria struct {
	Address string
	Page    Page
	Size    PerPage
}

// ItemsPerPage returns the number of items requested per page
func (c SnapshotsCriteria) ItemsPerPage() uint64 {
	return c.Size.Uint64()
}

// ItemsToSkip returns the number of items to skip for pagination
func (c SnapshotsCriteria) ItemsToSkip() uint64 {
	return (c.Page.Uint64() - 1) * c.Size.Uint64()
}

// NewSnapshotsCriteria creates SnapshotsCriteria with validation
func NewSnapshotsCriteria(address string, page, perPage uint64) (SnapshotsCriteria, error) {
	if address == "" {
		return SnapshotsCriteria{}, fmt.Errorf("%w: address is required", ErrInvalidAddress)
	}

	p, err := ParsePage(page)
	if err != nil {
		return SnapshotsCriteria{}, fmt.Errorf("%w: %w", ErrInvalidPage, err)
	}

	pp, err := ParsePerPage(perPage)
	if err != nil {
		return SnapshotsCriteria{}, fmt.Errorf("%w: %w", ErrInvalidPerPage, err)
	}

	return SnapshotsCriteria{
		Address: address,
		Page:    p,
		Size:    pp,
	}, nil
}

// SnapshotsPage represents a page of snapshots with navigation metadata
type SnapshotsPage struct {
	Snapshots []Snapshot
	HasMore   bool    // True if there are more pages after this one
	Number    Page    // Current page number
	Size      PerPage // Page size
}

// Helper methods for pagination state
func (p *SnapshotsPage) HasNext() bool     { return p.HasMore }
func (p *SnapshotsPage) HasPrevious() bool { return p.Number > 1 }
