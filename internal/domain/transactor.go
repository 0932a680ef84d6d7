package domain

import "context"

// Transactor runs fn inside a single store transaction. Repositories called
// with the ctx passed to fn take part in that transaction.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
