package postgres

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"orcamentos/internal/domain/category"
)

type CategoryRepository struct {
	db *DB
}

func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

var categoryColumns = []string{"id", "user_id", "kind", "nome", "data_inatividade", "created_at", "updated_at"}

func scanCategory(row interface{ Scan(...any) error }) (*category.Category, error) {
	var (
		c        category.Category
		inactive sql.NullTime
	)
	if err := row.Scan(&c.ID, &c.UserID, &c.Kind, &c.Name, &inactive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.InactiveAt = nullTime(inactive)
	return &c, nil
}

func categoryScope(userID int64, kind category.Kind) sq.And {
	return sq.And{sq.Eq{"user_id": userID, "kind": kind}, active("")}
}

func (r *CategoryRepository) Create(ctx context.Context, userID int64, kind category.Kind, params category.CreateParams) (*category.Category, error) {
	q := psql.Insert("categories").
		Columns("user_id", "kind", "nome", "data_inatividade").
		Values(userID, kind, params.Name, params.InactiveAt).
		Suffix("RETURNING " + joinColumns(categoryColumns))

	c, err := scanCategory(r.db.queryRow(ctx, q))
	if err != nil {
		return nil, mapError("create category", err)
	}
	return c, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, userID int64, kind category.Kind, id int64) (*category.Category, error) {
	q := psql.Select(categoryColumns...).
		From("categories").
		Where(sq.Eq{"id": id}).
		Where(categoryScope(userID, kind))

	c, err := scanCategory(r.db.queryRow(ctx, q))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get category", err)
	}
	return c, nil
}

func (r *CategoryRepository) List(ctx context.Context, userID int64, kind category.Kind, filter category.ListFilter) ([]*category.Category, error) {
	q := psql.Select(categoryColumns...).
		From("categories").
		Where(categoryScope(userID, kind)).
		OrderBy("nome ASC", "id ASC")
	if filter.Name != "" {
		q = q.Where(sq.ILike{"nome": "%" + escapeLike(filter.Name) + "%"})
	}

	rows, err := r.db.query(ctx, q)
	if err != nil {
		return nil, mapError("list categories", err)
	}
	defer rows.Close()

	categories := []*category.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, mapError("scan category", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list categories", err)
	}
	return categories, nil
}

func (r *CategoryRepository) NameTaken(ctx context.Context, userID int64, kind category.Kind, name string, excludeID int64) (bool, error) {
	sub := psql.Select("1").
		From("categories").
		Where(categoryScope(userID, kind)).
		Where(sq.Eq{"nome": name})
	if excludeID > 0 {
		sub = sub.Where(sq.NotEq{"id": excludeID})
	}

	var taken bool
	err := r.db.queryRow(ctx, sub.Prefix("SELECT EXISTS (").Suffix(")")).Scan(&taken)
	if err != nil {
		return false, mapError("check category name", err)
	}
	return taken, nil
}

// LockName takes a transaction-scoped advisory lock keyed on the category
// identity, so two writers of the same name run their check one after the other.
func (r *CategoryRepository) LockName(ctx context.Context, userID int64, kind category.Kind, name string) error {
	_, err := r.db.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1))`,
		categoryLockKey(userID, kind, name),
	)
	if err != nil {
		return mapError("lock category name", err)
	}
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, userID int64, kind category.Kind, id int64, params category.UpdateParams) (*category.Category, error) {
	u := psql.Update("categories").Set("updated_at", sq.Expr("now()"))
	u = setIf(u, "nome", params.Name)
	u = setPatch(u, "data_inatividade", params.InactiveAt)
	u = u.Where(sq.Eq{"id": id}).
		Where(categoryScope(userID, kind)).
		Suffix("RETURNING " + joinColumns(categoryColumns))

	c, err := scanCategory(r.db.queryRow(ctx, u))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, category.ErrNotFound
	}
	if err != nil {
		return nil, mapError("update category", err)
	}
	return c, nil
}

func (r *CategoryRepository) SoftDelete(ctx context.Context, userID int64, kind category.Kind, id int64) error {
	return r.db.softDelete(ctx, "delete category", "categories",
		sq.And{sq.Eq{"id": id, "user_id": userID, "kind": kind}},
		category.ErrNotFound,
	)
}
