package category

import "context"

// Repository is implemented in the infrastructure layer. Every method only
// sees categories that are not soft-deleted.
type Repository interface {
	Create(ctx context.Context, userID int64, kind Kind, params CreateParams) (*Category, error)

	// GetByID returns nil, nil when the category is absent, deleted or owned by another user.
	GetByID(ctx context.Context, userID int64, kind Kind, id int64) (*Category, error)

	List(ctx context.Context, userID int64, kind Kind, filter ListFilter) ([]*Category, error)

	// NameTaken reports whether another active category of the user already uses name.
	// excludeID is ignored when zero.
	NameTaken(ctx context.Context, userID int64, kind Kind, name string, excludeID int64) (bool, error)

	// LockName serializes writers of the same (user, kind, name) until the
	// surrounding transaction ends.
	LockName(ctx context.Context, userID int64, kind Kind, name string) error

	// Update returns ErrNotFound when no active row matched.
	Update(ctx context.Context, userID int64, kind Kind, id int64, params UpdateParams) (*Category, error)

	// SoftDelete returns ErrNotFound when no active row matched.
	SoftDelete(ctx context.Context, userID int64, kind Kind, id int64) error
}
