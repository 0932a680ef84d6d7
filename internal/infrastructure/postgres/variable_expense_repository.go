package postgres

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"orcamentos/internal/domain/expense"
)

type VariableExpenseRepository struct {
	db *DB
}

func NewVariableExpenseRepository(db *DB) *VariableExpenseRepository {
	return &VariableExpenseRepository{db: db}
}

var variableColumns = []string{
	"v.id", "v.budget_id", "v.category_id", "c.nome", "v.descricao", "v.valor",
	"v.data_pgto", "v.observacoes", "v.data_inatividade", "v.created_at", "v.updated_at",
}

func scanVariable(row interface{ Scan(...any) error }) (*expense.Variable, error) {
	var (
		v        expense.Variable
		paidAt   sql.NullTime
		notes    sql.NullString
		inactive sql.NullTime
	)
	err := row.Scan(&v.ID, &v.BudgetID, &v.CategoryID, &v.CategoryName, &v.Description, &v.Value,
		&paidAt, &notes, &inactive, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	v.PaidAt = paidAt.Time
	v.Notes = nullString(notes)
	v.InactiveAt = nullTime(inactive)
	return &v, nil
}

func (r *VariableExpenseRepository) selectVariable(budgetID int64) sq.SelectBuilder {
	return psql.Select(variableColumns...).
		From("variable_expenses v").
		Join("categories c ON c.id = v.category_id").
		Where(sq.Eq{"v.budget_id": budgetID}).
		Where(active("v"))
}

func (r *VariableExpenseRepository) Create(ctx context.Context, budgetID int64, params expense.CreateVariableParams) (*expense.Variable, error) {
	q := psql.Insert("variable_expenses").
		Columns("budget_id", "category_id", "descricao", "valor", "data_pgto", "observacoes", "data_inatividade").
		Values(budgetID, params.CategoryID, params.Description, params.Value, params.PaidAt, params.Notes,
			params.InactiveAt).
		Suffix("RETURNING id")

	var id int64
	if err := r.db.queryRow(ctx, q).Scan(&id); err != nil {
		return nil, mapError("create variable expense", err)
	}
	return r.get(ctx, "create variable expense", budgetID, id, false)
}

func (r *VariableExpenseRepository) GetByID(ctx context.Context, budgetID, id int64) (*expense.Variable, error) {
	return r.get(ctx, "get variable expense", budgetID, id, false)
}

func (r *VariableExpenseRepository) GetByIDForUpdate(ctx context.Context, budgetID, id int64) (*expense.Variable, error) {
	return r.get(ctx, "lock variable expense", budgetID, id, true)
}

func (r *VariableExpenseRepository) get(ctx context.Context, op string, budgetID, id int64, lock bool) (*expense.Variable, error) {
	q := r.selectVariable(budgetID).Where(sq.Eq{"v.id": id})
	if lock {
		q = q.Suffix("FOR UPDATE OF v")
	}

	v, err := scanVariable(r.db.queryRow(ctx, q))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(op, err)
	}
	return v, nil
}

func (r *VariableExpenseRepository) List(ctx context.Context, budgetID int64, filter expense.Filter) ([]*expense.Variable, error) {
	// Overdue has no meaning without a due date.
	filter.Overdue = nil
	q := expenseFilter(r.selectVariable(budgetID), "v", filter).
		OrderBy("v.data_pgto DESC", "v.id DESC")

	rows, err := r.db.query(ctx, q)
	if err != nil {
		return nil, mapError("list variable expenses", err)
	}
	defer rows.Close()

	expenses := []*expense.Variable{}
	for rows.Next() {
		v, err := scanVariable(rows)
		if err != nil {
			return nil, mapError("scan variable expense", err)
		}
		expenses = append(expenses, v)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list variable expenses", err)
	}
	return expenses, nil
}

func (r *VariableExpenseRepository) Update(ctx context.Context, budgetID, id int64, params expense.UpdateVariableParams) (*expense.Variable, error) {
	u := psql.Update("variable_expenses").Set("updated_at", sq.Expr("now()"))
	u = setIf(u, "category_id", params.CategoryID)
	u = setIf(u, "descricao", params.Description)
	u = setPatch(u, "valor", params.Value)
	u = setPatch(u, "data_pgto", params.PaidAt)
	u = setPatch(u, "observacoes", params.Notes)
	u = setPatch(u, "data_inatividade", params.InactiveAt)
	u = u.Where(sq.Eq{"id": id, "budget_id": budgetID}).
		Where(active("")).
		Suffix("RETURNING id")

	var updated int64
	err := r.db.queryRow(ctx, u).Scan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, expense.ErrVariableNotFound
	}
	if err != nil {
		return nil, mapError("update variable expense", err)
	}
	return r.get(ctx, "update variable expense", budgetID, updated, false)
}

func (r *VariableExpenseRepository) SoftDelete(ctx context.Context, budgetID, id int64) error {
	return r.db.softDelete(ctx, "delete variable expense", "variable_expenses",
		sq.Eq{"id": id, "budget_id": budgetID},
		expense.ErrVariableNotFound,
	)
}
