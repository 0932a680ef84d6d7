package investment

import "context"

// Repository defines the interface for investment data access
type Repository interface {
	Create(ctx context.Context, userID int64, params CreateParams) (*Investment, error)
	// GetByID returns nil, nil when the investment is absent, deleted or not owned by the user.
	GetByID(ctx context.Context, userID, id int64) (*Investment, error)
	ListByUserID(ctx context.Context, userID int64) ([]*Investment, error)
	Update(ctx context.Context, userID, id int64, params UpdateParams) (*Investment, error)
	SoftDelete(ctx context.Context, userID, id int64) error
}

// TimelineRepository defines data access for timeline entries, always scoped
// to the parent investment.
type TimelineRepository interface {
	Create(ctx context.Context, investmentID int64, params CreateEntryParams) (*TimelineEntry, error)
	GetByID(ctx context.Context, investmentID, id int64) (*TimelineEntry, error)
	// List returns active entries ordered by data_registro, then id.
	List(ctx context.Context, investmentID int64) ([]*TimelineEntry, error)
	// ListByInvestmentIDs returns the active entries of every given investment.
	ListByInvestmentIDs(ctx context.Context, investmentIDs []int64) ([]TimelineEntry, error)
	Update(ctx context.Context, investmentID, id int64, params UpdateEntryParams) (*TimelineEntry, error)
	SoftDelete(ctx context.Context, investmentID, id int64) error
}
