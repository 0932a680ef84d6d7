package expense

import "context"

// FixedRepository defines data access for fixed expenses. All lookups are
// scoped to the parent budget and ignore soft-deleted rows.
type FixedRepository interface {
	Create(ctx context.Context, budgetID int64, params CreateFixedParams) (*Fixed, error)
	GetByID(ctx context.Context, budgetID, id int64) (*Fixed, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, budgetID, id int64) (*Fixed, error)
	List(ctx context.Context, budgetID int64, filter Filter) ([]*Fixed, error)
	Update(ctx context.Context, budgetID, id int64, params UpdateFixedParams) (*Fixed, error)
	SoftDelete(ctx context.Context, budgetID, id int64) error
}

// VariableRepository defines data access for variable expenses.
type VariableRepository interface {
	Create(ctx context.Context, budgetID int64, params CreateVariableParams) (*Variable, error)
	GetByID(ctx context.Context, budgetID, id int64) (*Variable, error)
	GetByIDForUpdate(ctx context.Context, budgetID, id int64) (*Variable, error)
	List(ctx context.Context, budgetID int64, filter Filter) ([]*Variable, error)
	Update(ctx context.Context, budgetID, id int64, params UpdateVariableParams) (*Variable, error)
	SoftDelete(ctx context.Context, budgetID, id int64) error
}
