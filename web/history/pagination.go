package history

import (
	"errors"
	"fmt"
	"math"
)

// Default pagination values
const (
	DefaultPage    = 1   // Default to first page
	DefaultPerPage = 20  // Default pagination size
	MaxPerPage     = 100 // Maximum items per page

	// MaxPage keeps the row offset of the largest page within a BIGINT
	MaxPage = math.MaxInt64 / MaxPerPage
)

// Page represents a page number for pagination
type Page uint64

// PerPage represents items per page for pagination
type PerPage uint64

// Pagination validation errors
var (
	ErrPageTooLarge    = errors.New("page exceeds maximum limit")
	ErrPerPageTooLarge = errors.New("per_page exceeds maximum limit")
)

// ParsePage creates a Page, zero selects the first page
func ParsePage(page uint64) (Page, error) {
	if page == 0 {
		return Page(DefaultPage), nil
	}

	if page > MaxPage {
		return 0, fmt.Errorf("%w: must be between 1 and %d", ErrPageTooLarge, uint64(MaxPage))
	}

	return Page(page), nil
}

// ParsePerPage creates a PerPage, zero selects the default size
func ParsePerPage(perPage uint64) (PerPage, error) {
	if perPage == 0 {
		return PerPage(DefaultPerPage), nil
	}

	if perPage > MaxPerPage {
		return 0, fmt.Errorf("%w: must be between 1 and %d", ErrPerPageTooLarge, MaxPerPage)
	}

	return PerPage(perPage), nil
}

// Uint64 returns the underlying uint64 value
func (p Page) Uint64() uint64 {
	return uint64(p)
}

// Uint64 returns the underlying uint64 value
func (pp PerPage) Uint64() uint64 {
	return uint64(pp)
}
