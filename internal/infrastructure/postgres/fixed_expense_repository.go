package postgres

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"orcamentos/internal/domain/expense"
)

type FixedExpenseRepository struct {
	db *DB
}

func NewFixedExpenseRepository(db *DB) *FixedExpenseRepository {
	return &FixedExpenseRepository{db: db}
}

var fixedColumns = []string{
	"f.id", "f.budget_id", "f.category_id", "c.nome", "f.descricao", "f.previsto", "f.valor",
	"f.data_pgto", "f.data_venc", "f.observacoes", "f.data_inatividade", "f.created_at", "f.updated_at",
}

func scanFixed(row interface{ Scan(...any) error }) (*expense.Fixed, error) {
	var (
		f        expense.Fixed
		value    decimal.NullDecimal
		paidAt   sql.NullTime
		dueDate  sql.NullTime
		notes    sql.NullString
		inactive sql.NullTime
	)
	err := row.Scan(&f.ID, &f.BudgetID, &f.CategoryID, &f.CategoryName, &f.Description, &f.Expected, &value,
		&paidAt, &dueDate, &notes, &inactive, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	f.Value = nullDecimal(value)
	f.PaidAt = nullTime(paidAt)
	f.DueDate = nullTime(dueDate)
	f.Notes = nullString(notes)
	f.InactiveAt = nullTime(inactive)
	return &f, nil
}

func (r *FixedExpenseRepository) selectFixed(budgetID int64) sq.SelectBuilder {
	return psql.Select(fixedColumns...).
		From("fixed_expenses f").
		Join("categories c ON c.id = f.category_id").
		Where(sq.Eq{"f.budget_id": budgetID}).
		Where(active("f"))
}

func (r *FixedExpenseRepository) Create(ctx context.Context, budgetID int64, params expense.CreateFixedParams) (*expense.Fixed, error) {
	q := psql.Insert("fixed_expenses").
		Columns("budget_id", "category_id", "descricao", "previsto", "valor", "data_pgto", "data_venc",
			"observacoes", "data_inatividade").
		Values(budgetID, params.CategoryID, params.Description, params.Expected, params.Value, params.PaidAt,
			params.DueDate, params.Notes, params.InactiveAt).
		Suffix("RETURNING id")

	var id int64
	if err := r.db.queryRow(ctx, q).Scan(&id); err != nil {
		return nil, mapError("create fixed expense", err)
	}
	return r.get(ctx, "create fixed expense", budgetID, id, false)
}

func (r *FixedExpenseRepository) GetByID(ctx context.Context, budgetID, id int64) (*expense.Fixed, error) {
	return r.get(ctx, "get fixed expense", budgetID, id, false)
}

func (r *FixedExpenseRepository) GetByIDForUpdate(ctx context.Context, budgetID, id int64) (*expense.Fixed, error) {
	return r.get(ctx, "lock fixed expense", budgetID, id, true)
}

func (r *FixedExpenseRepository) get(ctx context.Context, op string, budgetID, id int64, lock bool) (*expense.Fixed, error) {
	q := r.selectFixed(budgetID).Where(sq.Eq{"f.id": id})
	if lock {
		q = q.Suffix("FOR UPDATE OF f")
	}

	f, err := scanFixed(r.db.queryRow(ctx, q))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(op, err)
	}
	return f, nil
}

func (r *FixedExpenseRepository) List(ctx context.Context, budgetID int64, filter expense.Filter) ([]*expense.Fixed, error) {
	q := expenseFilter(r.selectFixed(budgetID), "f", filter).
		OrderBy("f.data_venc ASC NULLS LAST", "f.id ASC")

	rows, err := r.db.query(ctx, q)
	if err != nil {
		return nil, mapError("list fixed expenses", err)
	}
	defer rows.Close()

	expenses := []*expense.Fixed{}
	for rows.Next() {
		f, err := scanFixed(rows)
		if err != nil {
			return nil, mapError("scan fixed expense", err)
		}
		expenses = append(expenses, f)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list fixed expenses", err)
	}
	return expenses, nil
}

func (r *FixedExpenseRepository) Update(ctx context.Context, budgetID, id int64, params expense.UpdateFixedParams) (*expense.Fixed, error) {
	u := psql.Update("fixed_expenses").Set("updated_at", sq.Expr("now()"))
	u = setIf(u, "category_id", params.CategoryID)
	u = setIf(u, "descricao", params.Description)
	u = setIf(u, "previsto", params.Expected)
	u = setPatch(u, "valor", params.Value)
	u = setPatch(u, "data_pgto", params.PaidAt)
	u = setPatch(u, "data_venc", params.DueDate)
	u = setPatch(u, "observacoes", params.Notes)
	u = setPatch(u, "data_inatividade", params.InactiveAt)
	u = u.Where(sq.Eq{"id": id, "budget_id": budgetID}).
		Where(active("")).
		Suffix("RETURNING id")

	var updated int64
	err := r.db.queryRow(ctx, u).Scan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, expense.ErrFixedNotFound
	}
	if err != nil {
		return nil, mapError("update fixed expense", err)
	}
	return r.get(ctx, "update fixed expense", budgetID, updated, false)
}

func (r *FixedExpenseRepository) SoftDelete(ctx context.Context, budgetID, id int64) error {
	return r.db.softDelete(ctx, "delete fixed expense", "fixed_expenses",
		sq.Eq{"id": id, "budget_id": budgetID},
		expense.ErrFixedNotFound,
	)
}
