package budget

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orcamentos/internal/domain"
)

// MockRepository is a mock implementation of Repository interface
type MockRepository struct {
	CreateFunc       func(ctx context.Context, userID int64, params CreateParams) (*Budget, error)
	GetByIDFunc      func(ctx context.Context, userID, id int64) (*Budget, error)
	ListByUserIDFunc func(ctx context.Context, userID int64) ([]*Budget, error)
	UpdateFunc       func(ctx context.Context, userID, id int64, params UpdateParams) (*Budget, error)
	SoftDeleteFunc   func(ctx context.Context, userID, id int64) error
	LedgerLinesFunc  func(ctx context.Context, budgetIDs []int64) ([]LedgerLine, error)
}

func (m *MockRepository) Create(ctx context.Context, userID int64, params CreateParams) (*Budget, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, params)
	}
	return nil, nil
}

func (m *MockRepository) GetByID(ctx context.Context, userID, id int64) (*Budget, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	return nil, nil
}

func (m *MockRepository) ListByUserID(ctx context.Context, userID int64) ([]*Budget, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockRepository) Update(ctx context.Context, userID, id int64, params UpdateParams) (*Budget, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, id, params)
	}
	return nil, nil
}

func (m *MockRepository) SoftDelete(ctx context.Context, userID, id int64) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, userID, id)
	}
	return nil
}

func (m *MockRepository) LedgerLines(ctx context.Context, budgetIDs []int64) ([]LedgerLine, error) {
	if m.LedgerLinesFunc != nil {
		return m.LedgerLinesFunc(ctx, budgetIDs)
	}
	return nil, nil
}

func TestCreateBudget(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := &MockRepository{
			CreateFunc: func(ctx context.Context, userID int64, params CreateParams) (*Budget, error) {
				return &Budget{ID: 1, UserID: userID, Name: params.Name, InitialValue: params.InitialValue}, nil
			},
		}

		got, err := NewService(repo).CreateBudget(ctx, 3, CreateParams{Name: " Maio ", InitialValue: decimal.RequireFromString("1000.00")})
		require.NoError(t, err)
		assert.Equal(t, "Maio", got.Name)
		assert.True(t, got.CurrentValue.Equal(got.InitialValue))
		assert.True(t, got.FreeValue.Equal(got.InitialValue))
	})

	t.Run("Validation", func(t *testing.T) {
		_, err := NewService(&MockRepository{}).CreateBudget(ctx, 3, CreateParams{InitialValue: decimal.NewFromInt(-1)})

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Errors, 2)
	})
}

func TestGetBudget(t *testing.T) {
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		_, err := NewService(&MockRepository{}).GetBudget(ctx, 1, 42)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("DerivedValues", func(t *testing.T) {
		paidAt := time.Now()
		repo := &MockRepository{
			GetByIDFunc: func(ctx context.Context, userID, id int64) (*Budget, error) {
				return &Budget{ID: id, UserID: userID, InitialValue: decimal.RequireFromString("1000.00")}, nil
			},
			LedgerLinesFunc: func(ctx context.Context, budgetIDs []int64) ([]LedgerLine, error) {
				assert.Equal(t, []int64{42}, budgetIDs)
				return []LedgerLine{
					{BudgetID: 42, Expected: dec("500.00")},
					{BudgetID: 42, Value: dec("100.00"), PaidAt: &paidAt},
				}, nil
			},
		}

		got, err := NewService(repo).GetBudget(ctx, 1, 42)
		require.NoError(t, err)
		assert.Equal(t, "900.00", got.CurrentValue.StringFixed(2))
		assert.Equal(t, "400.00", got.FreeValue.StringFixed(2))
	})

	t.Run("LedgerFailure", func(t *testing.T) {
		repo := &MockRepository{
			GetByIDFunc: func(ctx context.Context, userID, id int64) (*Budget, error) {
				return &Budget{ID: id}, nil
			},
			LedgerLinesFunc: func(ctx context.Context, budgetIDs []int64) ([]LedgerLine, error) {
				return nil, &domain.StoreError{Op: "ledger lines", Err: errors.New("connection reset")}
			},
		}

		_, err := NewService(repo).GetBudget(ctx, 1, 42)
		assert.ErrorIs(t, err, domain.ErrStore)
	})
}

func TestListBudgets_GroupsLedgerByBudget(t *testing.T) {
	paidAt := time.Now()
	repo := &MockRepository{
		ListByUserIDFunc: func(ctx context.Context, userID int64) ([]*Budget, error) {
			return []*Budget{
				{ID: 1, InitialValue: decimal.RequireFromString("100")},
				{ID: 2, InitialValue: decimal.RequireFromString("200")},
				{ID: 3, InitialValue: decimal.RequireFromString("300")},
			}, nil
		},
		LedgerLinesFunc: func(ctx context.Context, budgetIDs []int64) ([]LedgerLine, error) {
			assert.ElementsMatch(t, []int64{1, 2, 3}, budgetIDs)
			return []LedgerLine{
				{BudgetID: 1, Value: dec("10"), PaidAt: &paidAt},
				{BudgetID: 2, Expected: dec("50")},
				{BudgetID: 1, Expected: dec("5")},
			}, nil
		},
	}

	got, err := NewService(repo).ListBudgets(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "90.00", got[0].CurrentValue.StringFixed(2))
	assert.Equal(t, "85.00", got[0].FreeValue.StringFixed(2))
	assert.Equal(t, "200.00", got[1].CurrentValue.StringFixed(2))
	assert.Equal(t, "150.00", got[1].FreeValue.StringFixed(2))
	assert.Equal(t, "300.00", got[2].CurrentValue.StringFixed(2))
	assert.Equal(t, "300.00", got[2].FreeValue.StringFixed(2))
}

func TestListBudgets_EmptySkipsLedger(t *testing.T) {
	repo := &MockRepository{
		LedgerLinesFunc: func(ctx context.Context, budgetIDs []int64) ([]LedgerLine, error) {
			t.Fatal("ledger must not be loaded for an empty list")
			return nil, nil
		},
	}

	got, err := NewService(repo).ListBudgets(context.Background(), 9)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdateBudget_RecomputesFromNewInitialValue(t *testing.T) {
	paidAt := time.Now()
	newInitial := decimal.RequireFromString("1500.00")
	repo := &MockRepository{
		UpdateFunc: func(ctx context.Context, userID, id int64, params UpdateParams) (*Budget, error) {
			return &Budget{ID: id, InitialValue: *params.InitialValue}, nil
		},
		LedgerLinesFunc: func(ctx context.Context, budgetIDs []int64) ([]LedgerLine, error) {
			return []LedgerLine{{BudgetID: 4, Value: dec("500.00"), PaidAt: &paidAt}}, nil
		},
	}

	got, err := NewService(repo).UpdateBudget(context.Background(), 1, 4, UpdateParams{InitialValue: &newInitial})
	require.NoError(t, err)
	assert.Equal(t, "1000.00", got.CurrentValue.StringFixed(2))
}

func TestUpdateBudget_NotFound(t *testing.T) {
	repo := &MockRepository{
		UpdateFunc: func(ctx context.Context, userID, id int64, params UpdateParams) (*Budget, error) {
			return nil, ErrNotFound
		},
	}

	_, err := NewService(repo).UpdateBudget(context.Background(), 1, 4, UpdateParams{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
