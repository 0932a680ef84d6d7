package category

import (
	"context"
	"fmt"

	"orcamentos/internal/domain"
)

// Service contains the business logic for spending and investment categories
type Service struct {
	repo Repository
	tx   domain.Transactor
}

// NewService creates a new category service
func NewService(repo Repository, tx domain.Transactor) *Service {
	return &Service{repo: repo, tx: tx}
}

// CreateCategory creates a category after checking that no active category of
// the same kind already uses the name.
func (s *Service) CreateCategory(ctx context.Context, userID int64, kind Kind, params CreateParams) (*Category, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var created *Category
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.ensureNameFree(ctx, userID, kind, params.Name, 0); err != nil {
			return err
		}

		c, err := s.repo.Create(ctx, userID, kind, params)
		if err != nil {
			return err
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetCategory retrieves an active category owned by the user
func (s *Service) GetCategory(ctx context.Context, userID int64, kind Kind, id int64) (*Category, error) {
	c, err := s.repo.GetByID(ctx, userID, kind, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

// ListCategories lists the user's active categories of one kind
func (s *Service) ListCategories(ctx context.Context, userID int64, kind Kind, filter ListFilter) ([]*Category, error) {
	return s.repo.List(ctx, userID, kind, filter)
}

// UpdateCategory applies a partial update. Renaming re-runs the uniqueness check
// against every other active category of the same kind.
func (s *Service) UpdateCategory(ctx context.Context, userID int64, kind Kind, id int64, params UpdateParams) (*Category, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var updated *Category
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if params.Name != nil {
			if err := s.ensureNameFree(ctx, userID, kind, *params.Name, id); err != nil {
				return err
			}
		}

		c, err := s.repo.Update(ctx, userID, kind, id, params)
		if err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteCategory soft-deletes a category. Expenses and investments keep
// pointing at it.
func (s *Service) DeleteCategory(ctx context.Context, userID int64, kind Kind, id int64) error {
	return s.repo.SoftDelete(ctx, userID, kind, id)
}

// Exists reports whether id is an active category of the given kind owned by the user.
func (s *Service) Exists(ctx context.Context, userID int64, kind Kind, id int64) (bool, error) {
	c, err := s.repo.GetByID(ctx, userID, kind, id)
	if err != nil {
		return false, err
	}
	return c != nil, nil
}

func (s *Service) ensureNameFree(ctx context.Context, userID int64, kind Kind, name string, excludeID int64) error {
	if err := s.repo.LockName(ctx, userID, kind, name); err != nil {
		return fmt.Errorf("lock category name: %w", err)
	}

	taken, err := s.repo.NameTaken(ctx, userID, kind, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateName
	}
	return nil
}
