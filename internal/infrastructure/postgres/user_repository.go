package postgres

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"orcamentos/internal/domain/user"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

var userColumns = []string{"id", "email", "name", "firebase_uid", "avatar_url", "created_at", "updated_at"}

func scanUser(row interface{ Scan(...any) error }) (*user.User, error) {
	var (
		u      user.User
		uid    sql.NullString
		avatar sql.NullString
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &uid, &avatar, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.FirebaseUID = nullString(uid)
	u.AvatarURL = nullString(avatar)
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, params user.CreateUserParams) (*user.User, error) {
	q := psql.Insert("users").
		Columns("email", "name", "firebase_uid", "avatar_url").
		Values(params.Email, params.Name, params.FirebaseUID, params.AvatarURL).
		Suffix("RETURNING " + joinColumns(userColumns))

	u, err := scanUser(r.db.queryRow(ctx, q))
	if err != nil {
		return nil, mapError("create user", err)
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return r.getOne(ctx, "get user", sq.Eq{"id": id})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getOne(ctx, "get user by email", sq.Eq{"email": email})
}

func (r *UserRepository) getOne(ctx context.Context, op string, where sq.Sqlizer) (*user.User, error) {
	q := psql.Select(userColumns...).From("users").Where(where)

	u, err := scanUser(r.db.queryRow(ctx, q))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(op, err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	rows, err := r.db.query(ctx, psql.Select(userColumns...).From("users").OrderBy("id"))
	if err != nil {
		return nil, mapError("list users", err)
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, mapError("scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list users", err)
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, userID int64, params user.UpdateUserParams) (*user.User, error) {
	u := psql.Update("users").Set("updated_at", sq.Expr("now()"))
	u = setIf(u, "name", params.Name)
	u = setIf(u, "firebase_uid", params.FirebaseUID)
	u = setIf(u, "avatar_url", params.AvatarURL)
	u = u.Where(sq.Eq{"id": userID}).Suffix("RETURNING " + joinColumns(userColumns))

	out, err := scanUser(r.db.queryRow(ctx, u))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, mapError("update user", err)
	}
	return out, nil
}
