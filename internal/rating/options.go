package rating

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOrderField     = errors.New("invalid order field")
	ErrInvalidOrderDirection = errors.New("invalid order direction")
	ErrNegativeOffset        = errors.New("offset must not be negative")
	ErrInvalidLimit          = errors.New("limit must be a positive integer")
)

// OrderField enumerates the sortable columns of the user listing
type OrderField string

const (
	OrderByCreatedAt  OrderField = "createdAt"
	OrderByStars      OrderField = "starsCount"
	OrderByGlobalRank OrderField = "globalRank"
)

// OrderDirection is the sort direction of the user listing
type OrderDirection string

const (
	OrderAsc  OrderDirection = "asc"
	OrderDesc OrderDirection = "desc"
)

// Column maps the API field name to the database column
func (f OrderField) Column() string {
	switch f {
	case OrderByCreatedAt:
		return "created_at"
	case OrderByStars:
		return "stars_count"
	case OrderByGlobalRank:
		return "global_rank"
	}
	return ""
}

// ListOptions describes one page request against the user listing.
// A zero Limit means no limit.
type ListOptions struct {
	Limit          int
	Offset         int
	OrderBy        OrderField
	OrderDirection OrderDirection
	ActiveOnly     bool
}

// DefaultListOptions mirrors the listing defaults: newest first, active only
func DefaultListOptions() ListOptions {
	return ListOptions{
		OrderBy:        OrderByCreatedAt,
		OrderDirection: OrderDesc,
		ActiveOnly:     true,
	}
}

// Validate checks the option constraints before any query is issued
func (o ListOptions) Validate() error {
	if o.Limit < 0 {
		return ErrInvalidLimit
	}
	if o.Offset < 0 {
		return ErrNegativeOffset
	}
	if o.OrderBy.Column() == "" {
		return fmt.Errorf("%w: %q", ErrInvalidOrderField, string(o.OrderBy))
	}
	if o.OrderDirection != OrderAsc && o.OrderDirection != OrderDesc {
		return fmt.Errorf("%w: %q", ErrInvalidOrderDirection, string(o.OrderDirection))
	}
	return nil
}

// ranksArithmetically reports whether page position already equals score
// position, allowing rank to be derived as offset+index+1 instead of a
// per-row count query
func (o ListOptions) ranksArithmetically() bool {
	return o.OrderBy == OrderByStars && o.OrderDirection == OrderDesc
}
