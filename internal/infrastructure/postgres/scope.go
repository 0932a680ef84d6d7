package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"orcamentos/internal/shared/patch"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// active is the soft-delete predicate every lookup, update and delete carries.
// alias may be empty for single-table statements.
func active(alias string) sq.Eq {
	if alias == "" {
		return sq.Eq{"soft_delete": nil}
	}
	return sq.Eq{alias + ".soft_delete": nil}
}

// softDelete marks the single active row matched by where. It returns notFound
// when nothing matched, which covers rows that were already deleted.
func (db *DB) softDelete(ctx context.Context, op, table string, where sq.Sqlizer, notFound error) error {
	res, err := db.exec(ctx, psql.Update(table).
		Set("soft_delete", sq.Expr("now()")).
		Set("updated_at", sq.Expr("now()")).
		Where(where).
		Where(active("")))
	if err != nil {
		return mapError(op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return mapError(op, err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// setPatch adds col to the update when the field was sent; null clears it.
func setPatch[T any](u sq.UpdateBuilder, col string, f patch.Field[T]) sq.UpdateBuilder {
	if !f.Set {
		return u
	}
	if f.Null {
		return u.Set(col, nil)
	}
	return u.Set(col, f.Value)
}

// setIf adds col to the update when v is non-nil.
func setIf[T any](u sq.UpdateBuilder, col string, v *T) sq.UpdateBuilder {
	if v == nil {
		return u
	}
	return u.Set(col, *v)
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func nullDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func categoryLockKey(userID int64, kind any, name string) string {
	return fmt.Sprintf("categories:%d:%v:%s", userID, kind, name)
}
