package postgres

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"orcamentos/internal/domain/investment"
)

type TimelineRepository struct {
	db *DB
}

func NewTimelineRepository(db *DB) *TimelineRepository {
	return &TimelineRepository{db: db}
}

var timelineColumns = []string{
	"id", "investment_id", "valor", "data_registro", "data_inatividade", "created_at", "updated_at",
}

func scanEntry(row interface{ Scan(...any) error }) (*investment.TimelineEntry, error) {
	var (
		e        investment.TimelineEntry
		inactive sql.NullTime
	)
	err := row.Scan(&e.ID, &e.InvestmentID, &e.Value, &e.RegisteredAt, &inactive, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.InactiveAt = nullTime(inactive)
	return &e, nil
}

func (r *TimelineRepository) Create(ctx context.Context, investmentID int64, params investment.CreateEntryParams) (*investment.TimelineEntry, error) {
	q := psql.Insert("investment_timeline").
		Columns("investment_id", "valor", "data_registro", "data_inatividade").
		Values(investmentID, params.Value, params.RegisteredAt, params.InactiveAt).
		Suffix("RETURNING " + joinColumns(timelineColumns))

	e, err := scanEntry(r.db.queryRow(ctx, q))
	if err != nil {
		return nil, mapError("create timeline entry", err)
	}
	return e, nil
}

func (r *TimelineRepository) GetByID(ctx context.Context, investmentID, id int64) (*investment.TimelineEntry, error) {
	q := psql.Select(timelineColumns...).
		From("investment_timeline").
		Where(sq.Eq{"id": id, "investment_id": investmentID}).
		Where(active(""))

	e, err := scanEntry(r.db.queryRow(ctx, q))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get timeline entry", err)
	}
	return e, nil
}

func (r *TimelineRepository) List(ctx context.Context, investmentID int64) ([]*investment.TimelineEntry, error) {
	q := psql.Select(timelineColumns...).
		From("investment_timeline").
		Where(sq.Eq{"investment_id": investmentID}).
		Where(active("")).
		OrderBy("data_registro ASC", "id ASC")

	rows, err := r.db.query(ctx, q)
	if err != nil {
		return nil, mapError("list timeline", err)
	}
	defer rows.Close()

	entries := []*investment.TimelineEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, mapError("scan timeline entry", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list timeline", err)
	}
	return entries, nil
}

func (r *TimelineRepository) ListByInvestmentIDs(ctx context.Context, investmentIDs []int64) ([]investment.TimelineEntry, error) {
	if len(investmentIDs) == 0 {
		return nil, nil
	}

	q := psql.Select(timelineColumns...).
		From("investment_timeline").
		Where("investment_id = ANY(?)", pq.Array(investmentIDs)).
		Where(active(""))

	rows, err := r.db.query(ctx, q)
	if err != nil {
		return nil, mapError("load timelines", err)
	}
	defer rows.Close()

	var entries []investment.TimelineEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, mapError("scan timeline entry", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("load timelines", err)
	}
	return entries, nil
}

func (r *TimelineRepository) Update(ctx context.Context, investmentID, id int64, params investment.UpdateEntryParams) (*investment.TimelineEntry, error) {
	u := psql.Update("investment_timeline").Set("updated_at", sq.Expr("now()"))
	u = setIf(u, "valor", params.Value)
	u = setIf(u, "data_registro", params.RegisteredAt)
	u = setPatch(u, "data_inatividade", params.InactiveAt)
	u = u.Where(sq.Eq{"id": id, "investment_id": investmentID}).
		Where(active("")).
		Suffix("RETURNING " + joinColumns(timelineColumns))

	e, err := scanEntry(r.db.queryRow(ctx, u))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, investment.ErrTimelineEntryNotFound
	}
	if err != nil {
		return nil, mapError("update timeline entry", err)
	}
	return e, nil
}

func (r *TimelineRepository) SoftDelete(ctx context.Context, investmentID, id int64) error {
	return r.db.softDelete(ctx, "delete timeline entry", "investment_timeline",
		sq.Eq{"id": id, "investment_id": investmentID},
		investment.ErrTimelineEntryNotFound,
	)
}
