package budget

import "context"

// Repository defines the interface for budget data access. Soft-deleted rows
// are invisible to every method.
type Repository interface {
	Create(ctx context.Context, userID int64, params CreateParams) (*Budget, error)
	GetByID(ctx context.Context, userID, id int64) (*Budget, error)
	ListByUserID(ctx context.Context, userID int64) ([]*Budget, error)
	Update(ctx context.Context, userID, id int64, params UpdateParams) (*Budget, error)
	SoftDelete(ctx context.Context, userID, id int64) error

	// LedgerLines returns the active fixed and variable expenses of the given budgets.
	LedgerLines(ctx context.Context, budgetIDs []int64) ([]LedgerLine, error)
}
