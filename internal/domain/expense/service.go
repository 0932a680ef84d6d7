package expense

import (
	"context"

	"orcamentos/internal/domain"
	"orcamentos/internal/domain/budget"
	"orcamentos/internal/domain/category"
)

// BudgetLookup resolves the parent budget of a ledger.
type BudgetLookup interface {
	Exists(ctx context.Context, userID, budgetID int64) (bool, error)
}

// CategoryLookup resolves category references.
type CategoryLookup interface {
	Exists(ctx context.Context, userID int64, kind category.Kind, id int64) (bool, error)
}

// Service owns the fixed and variable expense ledgers of a budget
type Service struct {
	fixed      FixedRepository
	variable   VariableRepository
	budgets    BudgetLookup
	categories CategoryLookup
	tx         domain.Transactor
}

// NewService creates a new expense service
func NewService(fixed FixedRepository, variable VariableRepository, budgets BudgetLookup, categories CategoryLookup, tx domain.Transactor) *Service {
	return &Service{
		fixed:      fixed,
		variable:   variable,
		budgets:    budgets,
		categories: categories,
		tx:         tx,
	}
}

// CreateFixed adds a fixed expense to a budget
func (s *Service) CreateFixed(ctx context.Context, userID, budgetID int64, params CreateFixedParams) (*Fixed, error) {
	if err := s.ensureBudget(ctx, userID, budgetID); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureCategory(ctx, userID, params.CategoryID); err != nil {
		return nil, err
	}
	if err := CheckPayment(params.Value, params.PaidAt); err != nil {
		return nil, err
	}

	return s.fixed.Create(ctx, budgetID, params)
}

// ListFixed lists the active fixed expenses of a budget
func (s *Service) ListFixed(ctx context.Context, userID, budgetID int64, filter Filter) ([]*Fixed, error) {
	if err := s.ensureBudget(ctx, userID, budgetID); err != nil {
		return nil, err
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.fixed.List(ctx, budgetID, filter)
}

// GetFixed retrieves a fixed expense of a budget
func (s *Service) GetFixed(ctx context.Context, userID, budgetID, id int64) (*Fixed, error) {
	if err := s.ensureBudget(ctx, userID, budgetID); err != nil {
		return nil, err
	}

	f, err := s.fixed.GetByID(ctx, budgetID, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFixedNotFound
	}
	return f, nil
}

// UpdateFixed applies a partial update. The payment rule is checked against
// the locked current row merged with the patch.
func (s *Service) UpdateFixed(ctx context.Context, userID, budgetID, id int64, params UpdateFixedParams) (*Fixed, error) {
	if err := s.ensureBudget(ctx, userID, budgetID); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.CategoryID != nil {
		if err := s.ensureCategory(ctx, userID, *params.CategoryID); err != nil {
			return nil, err
		}
	}

	var updated *Fixed
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.fixed.GetByIDForUpdate(ctx, budgetID, id)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrFixedNotFound
		}

		merged := params.Merge(*current)
		if err := CheckPayment(merged.Value, merged.PaidAt); err != nil {
			return err
		}

		updated, err = s.fixed.Update(ctx, budgetID, id, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteFixed soft-deletes a fixed expense
func (s *Service) DeleteFixed(ctx context.Context, userID, budgetID, id int64) error {
	if err := s.ensureBudget(ctx, userID, budgetID); err != nil {
		return err
	}
	return s.fixed.SoftDelete(ctx, budgetID, id)
}

// CreateVariable adds an already incurred expense to a budget
func (s *Service) CreateVariable(ctx context.Context, userID, budgetID int64, params CreateVariableParams) (*Variable, error) {
	if err := s.ensureBudget(ctx, userID, budgetID); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureCategory(ctx, userID, params.CategoryID); err != nil {
		return nil, err
	}
	if err := CheckPayment(params.Value, params.PaidAt); err != nil {
		return nil, err
	}

	return s.variable.Create(ctx, budgetID, params)
}

// ListVariable lists the active variable expenses of a budget
func (s *Service) ListVariable(ctx context.Context, userID, budgetID int64, filter Filter) ([]*Variable, error) {
	if err := s.ensureBudget(ctx, userID, budgetID); err != nil {
		return nil, err
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.variable.List(ctx, budgetID, filter)
}

// GetVariable retrieves a variable expense of a budget
func (s *Service) GetVariable(ctx context.Context, userID, budgetID, id int64) (*Variable, error) {
	if err := s.ensureBudget(ctx, userID, budgetID); err != nil {
		return nil, err
	}

	v, err := s.variable.GetByID(ctx, budgetID, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrVariableNotFound
	}
	return v, nil
}

// UpdateVariable applies a partial update under the same merged-state payment rule
func (s *Service) UpdateVariable(ctx context.Context, userID, budgetID, id int64, params UpdateVariableParams) (*Variable, error) {
	if err := s.ensureBudget(ctx, userID, budgetID); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.CategoryID != nil {
		if err := s.ensureCategory(ctx, userID, *params.CategoryID); err != nil {
			return nil, err
		}
	}

	var updated *Variable
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.variable.GetByIDForUpdate(ctx, budgetID, id)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrVariableNotFound
		}

		if err := CheckPayment(params.MergedPayment(*current)); err != nil {
			return err
		}

		updated, err = s.variable.Update(ctx, budgetID, id, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteVariable soft-deletes a variable expense
func (s *Service) DeleteVariable(ctx context.Context, userID, budgetID, id int64) error {
	if err := s.ensureBudget(ctx, userID, budgetID); err != nil {
		return err
	}
	return s.variable.SoftDelete(ctx, budgetID, id)
}

func (s *Service) ensureBudget(ctx context.Context, userID, budgetID int64) error {
	ok, err := s.budgets.Exists(ctx, userID, budgetID)
	if err != nil {
		return err
	}
	if !ok {
		return budget.ErrNotFound
	}
	return nil
}

func (s *Service) ensureCategory(ctx context.Context, userID, categoryID int64) error {
	ok, err := s.categories.Exists(ctx, userID, category.KindSpending, categoryID)
	if err != nil {
		return err
	}
	if !ok {
		return category.ErrNotFound
	}
	return nil
}
