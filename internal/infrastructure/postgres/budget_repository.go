package postgres

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"orcamentos/internal/domain/budget"
)

type BudgetRepository struct {
	db *DB
}

func NewBudgetRepository(db *DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

var budgetColumns = []string{
	"id", "user_id", "nome", "valor_inicial", "data_encerramento", "data_inatividade", "created_at", "updated_at",
}

func scanBudget(row interface{ Scan(...any) error }) (*budget.Budget, error) {
	var (
		b        budget.Budget
		closing  sql.NullTime
		inactive sql.NullTime
	)
	err := row.Scan(&b.ID, &b.UserID, &b.Name, &b.InitialValue, &closing, &inactive, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.ClosingDate = nullTime(closing)
	b.InactiveAt = nullTime(inactive)
	return &b, nil
}

func (r *BudgetRepository) Create(ctx context.Context, userID int64, params budget.CreateParams) (*budget.Budget, error) {
	q := psql.Insert("budgets").
		Columns("user_id", "nome", "valor_inicial", "data_encerramento", "data_inatividade").
		Values(userID, params.Name, params.InitialValue, params.ClosingDate, params.InactiveAt).
		Suffix("RETURNING " + joinColumns(budgetColumns))

	b, err := scanBudget(r.db.queryRow(ctx, q))
	if err != nil {
		return nil, mapError("create budget", err)
	}
	return b, nil
}

func (r *BudgetRepository) GetByID(ctx context.Context, userID, id int64) (*budget.Budget, error) {
	q := psql.Select(budgetColumns...).
		From("budgets").
		Where(sq.Eq{"id": id, "user_id": userID}).
		Where(active(""))

	b, err := scanBudget(r.db.queryRow(ctx, q))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get budget", err)
	}
	return b, nil
}

func (r *BudgetRepository) ListByUserID(ctx context.Context, userID int64) ([]*budget.Budget, error) {
	q := psql.Select(budgetColumns...).
		From("budgets").
		Where(sq.Eq{"user_id": userID}).
		Where(active("")).
		OrderBy("created_at DESC", "id DESC")

	rows, err := r.db.query(ctx, q)
	if err != nil {
		return nil, mapError("list budgets", err)
	}
	defer rows.Close()

	budgets := []*budget.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, mapError("scan budget", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list budgets", err)
	}
	return budgets, nil
}

func (r *BudgetRepository) Update(ctx context.Context, userID, id int64, params budget.UpdateParams) (*budget.Budget, error) {
	u := psql.Update("budgets").Set("updated_at", sq.Expr("now()"))
	u = setIf(u, "nome", params.Name)
	u = setIf(u, "valor_inicial", params.InitialValue)
	u = setPatch(u, "data_encerramento", params.ClosingDate)
	u = setPatch(u, "data_inatividade", params.InactiveAt)
	u = u.Where(sq.Eq{"id": id, "user_id": userID}).
		Where(active("")).
		Suffix("RETURNING " + joinColumns(budgetColumns))

	b, err := scanBudget(r.db.queryRow(ctx, u))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, budget.ErrNotFound
	}
	if err != nil {
		return nil, mapError("update budget", err)
	}
	return b, nil
}

func (r *BudgetRepository) SoftDelete(ctx context.Context, userID, id int64) error {
	return r.db.softDelete(ctx, "delete budget", "budgets",
		sq.Eq{"id": id, "user_id": userID},
		budget.ErrNotFound,
	)
}

// ledgerQuery reads the active fixed and variable expenses of many budgets in
// one round trip. Variable expenses carry no expected amount.
const ledgerQuery = `
	SELECT budget_id, previsto, valor, data_pgto
	FROM fixed_expenses
	WHERE budget_id = ANY($1) AND soft_delete IS NULL
	UNION ALL
	SELECT budget_id, NULL, valor, data_pgto
	FROM variable_expenses
	WHERE budget_id = ANY($1) AND soft_delete IS NULL
`

func (r *BudgetRepository) LedgerLines(ctx context.Context, budgetIDs []int64) ([]budget.LedgerLine, error) {
	if len(budgetIDs) == 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, ledgerQuery, pq.Array(budgetIDs))
	if err != nil {
		return nil, mapError("load budget ledger", err)
	}
	defer rows.Close()

	var lines []budget.LedgerLine
	for rows.Next() {
		var (
			l        budget.LedgerLine
			expected decimal.NullDecimal
			value    decimal.NullDecimal
			paidAt   sql.NullTime
		)
		if err := rows.Scan(&l.BudgetID, &expected, &value, &paidAt); err != nil {
			return nil, mapError("scan ledger line", err)
		}
		l.Expected = nullDecimal(expected)
		l.Value = nullDecimal(value)
		l.PaidAt = nullTime(paidAt)
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("load budget ledger", err)
	}
	return lines, nil
}
