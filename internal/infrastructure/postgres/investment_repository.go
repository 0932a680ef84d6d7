package postgres

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"orcamentos/internal/domain/investment"
)

type InvestmentRepository struct {
	db *DB
}

func NewInvestmentRepository(db *DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

var investmentColumns = []string{
	"i.id", "i.user_id", "i.category_id", "c.nome", "i.nome", "i.descricao", "i.valor_inicial",
	"i.data_inatividade", "i.created_at", "i.updated_at",
}

func scanInvestment(row interface{ Scan(...any) error }) (*investment.Investment, error) {
	var (
		inv      investment.Investment
		inactive sql.NullTime
	)
	err := row.Scan(&inv.ID, &inv.UserID, &inv.CategoryID, &inv.CategoryName, &inv.Name, &inv.Description,
		&inv.InitialValue, &inactive, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	inv.InactiveAt = nullTime(inactive)
	return &inv, nil
}

func (r *InvestmentRepository) selectInvestments(userID int64) sq.SelectBuilder {
	return psql.Select(investmentColumns...).
		From("investments i").
		Join("categories c ON c.id = i.category_id").
		Where(sq.Eq{"i.user_id": userID}).
		Where(active("i"))
}

func (r *InvestmentRepository) Create(ctx context.Context, userID int64, params investment.CreateParams) (*investment.Investment, error) {
	q := psql.Insert("investments").
		Columns("user_id", "category_id", "nome", "descricao", "valor_inicial", "data_inatividade").
		Values(userID, params.CategoryID, params.Name, params.Description, params.InitialValue, params.InactiveAt).
		Suffix("RETURNING id")

	var id int64
	if err := r.db.queryRow(ctx, q).Scan(&id); err != nil {
		return nil, mapError("create investment", err)
	}
	return r.get(ctx, "create investment", userID, id)
}

func (r *InvestmentRepository) GetByID(ctx context.Context, userID, id int64) (*investment.Investment, error) {
	return r.get(ctx, "get investment", userID, id)
}

func (r *InvestmentRepository) get(ctx context.Context, op string, userID, id int64) (*investment.Investment, error) {
	inv, err := scanInvestment(r.db.queryRow(ctx, r.selectInvestments(userID).Where(sq.Eq{"i.id": id})))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(op, err)
	}
	return inv, nil
}

func (r *InvestmentRepository) ListByUserID(ctx context.Context, userID int64) ([]*investment.Investment, error) {
	rows, err := r.db.query(ctx, r.selectInvestments(userID).OrderBy("i.created_at DESC", "i.id DESC"))
	if err != nil {
		return nil, mapError("list investments", err)
	}
	defer rows.Close()

	investments := []*investment.Investment{}
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, mapError("scan investment", err)
		}
		investments = append(investments, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list investments", err)
	}
	return investments, nil
}

func (r *InvestmentRepository) Update(ctx context.Context, userID, id int64, params investment.UpdateParams) (*investment.Investment, error) {
	u := psql.Update("investments").Set("updated_at", sq.Expr("now()"))
	u = setIf(u, "category_id", params.CategoryID)
	u = setIf(u, "nome", params.Name)
	u = setIf(u, "descricao", params.Description)
	u = setIf(u, "valor_inicial", params.InitialValue)
	u = setPatch(u, "data_inatividade", params.InactiveAt)
	u = u.Where(sq.Eq{"id": id, "user_id": userID}).
		Where(active("")).
		Suffix("RETURNING id")

	var updated int64
	err := r.db.queryRow(ctx, u).Scan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, investment.ErrNotFound
	}
	if err != nil {
		return nil, mapError("update investment", err)
	}
	return r.get(ctx, "update investment", userID, updated)
}

func (r *InvestmentRepository) SoftDelete(ctx context.Context, userID, id int64) error {
	return r.db.softDelete(ctx, "delete investment", "investments",
		sq.Eq{"id": id, "user_id": userID},
		investment.ErrNotFound,
	)
}
