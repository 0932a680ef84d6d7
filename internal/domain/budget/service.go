package budget

import (
	"context"
)

// Service contains the business logic for budgets
type Service struct {
	repo Repository
}

// NewService creates a new budget service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateBudget creates a budget. A new budget has no expenses, so both derived
// values start at the initial value.
func (s *Service) CreateBudget(ctx context.Context, userID int64, params CreateParams) (*Budget, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	b, err := s.repo.Create(ctx, userID, params)
	if err != nil {
		return nil, err
	}
	b.apply(nil)
	return b, nil
}

// GetBudget retrieves a budget with its derived values
func (s *Service) GetBudget(ctx context.Context, userID, id int64) (*Budget, error) {
	b, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}

	if err := s.enrich(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ListBudgets lists the user's budgets with their derived values
func (s *Service) ListBudgets(ctx context.Context, userID int64) ([]*Budget, error) {
	budgets, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.enrich(ctx, budgets...); err != nil {
		return nil, err
	}
	return budgets, nil
}

// UpdateBudget applies a partial update and returns the recomputed budget
func (s *Service) UpdateBudget(ctx context.Context, userID, id int64, params UpdateParams) (*Budget, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	b, err := s.repo.Update(ctx, userID, id, params)
	if err != nil {
		return nil, err
	}

	if err := s.enrich(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBudget soft-deletes a budget
func (s *Service) DeleteBudget(ctx context.Context, userID, id int64) error {
	return s.repo.SoftDelete(ctx, userID, id)
}

// Exists reports whether the budget is active and owned by the user.
func (s *Service) Exists(ctx context.Context, userID, id int64) (bool, error) {
	b, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return false, err
	}
	return b != nil, nil
}

// enrich loads the ledger of every budget in one query and fills the derived values.
func (s *Service) enrich(ctx context.Context, budgets ...*Budget) error {
	if len(budgets) == 0 {
		return nil
	}

	ids := make([]int64, len(budgets))
	for i, b := range budgets {
		ids[i] = b.ID
	}

	lines, err := s.repo.LedgerLines(ctx, ids)
	if err != nil {
		return err
	}

	byBudget := make(map[int64][]LedgerLine, len(budgets))
	for _, l := range lines {
		byBudget[l.BudgetID] = append(byBudget[l.BudgetID], l)
	}

	for _, b := range budgets {
		b.apply(byBudget[b.ID])
	}
	return nil
}
