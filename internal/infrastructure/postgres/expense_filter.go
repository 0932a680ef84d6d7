package postgres

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"orcamentos/internal/domain/expense"
)

const day = 24 * time.Hour

// expenseFilter turns a ledger filter into predicates over an expense table
// aliased as alias joined with categories aliased as c.
func expenseFilter(q sq.SelectBuilder, alias string, f expense.Filter) sq.SelectBuilder {
	col := func(name string) string { return alias + "." + name }

	if f.Description != "" {
		q = q.Where(sq.ILike{col("descricao"): "%" + escapeLike(f.Description) + "%"})
	}
	if f.Category != "" {
		q = q.Where(sq.ILike{"c.nome": "%" + escapeLike(f.Category) + "%"})
	}
	if f.PaidOn != nil {
		q = q.Where(sq.GtOrEq{col("data_pgto"): *f.PaidOn}).
			Where(sq.Lt{col("data_pgto"): f.PaidOn.Add(day)})
	}
	if f.PaidFrom != nil {
		q = q.Where(sq.GtOrEq{col("data_pgto"): *f.PaidFrom})
	}
	// data_pgto_fim includes the whole day it names.
	if f.PaidTo != nil {
		q = q.Where(sq.Lt{col("data_pgto"): f.PaidTo.Add(day)})
	}

	paid := sq.And{sq.NotEq{col("valor"): nil}, sq.NotEq{col("data_pgto"): nil}}
	unpaid := sq.Or{sq.Eq{col("valor"): nil}, sq.Eq{col("data_pgto"): nil}}
	switch f.Status {
	case expense.StatusPaid:
		q = q.Where(paid)
	case expense.StatusUnpaid:
		q = q.Where(unpaid)
	}

	if f.Overdue != nil {
		overdue := sq.And{unpaid, sq.Expr(col("data_venc") + " < now()")}
		if *f.Overdue {
			q = q.Where(overdue)
		} else {
			q = q.Where(sq.Or{paid, sq.Eq{col("data_venc"): nil}, sq.Expr(col("data_venc") + " >= now()")})
		}
	}
	return q
}
