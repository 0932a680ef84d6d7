package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"orcamentos/internal/infrastructure/postgres"
)

// SeedUser inserts a user with a unique email and returns its id.
func SeedUser(t *testing.T, db *postgres.DB) int64 {
	t.Helper()

	var id int64
	err := db.QueryRowContext(context.Background(),
		`INSERT INTO users (email, name) VALUES ($1, $2) RETURNING id`,
		"user-"+uuid.NewString()+"@example.com", "Test User",
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: seed user: %v", err)
	}
	return id
}

// SeedCategory inserts an active category of the given kind ("gasto" or "investimento").
func SeedCategory(t *testing.T, db *postgres.DB, userID int64, kind, name string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRowContext(context.Background(),
		`INSERT INTO categories (user_id, kind, nome) VALUES ($1, $2, $3) RETURNING id`,
		userID, kind, name,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: seed category: %v", err)
	}
	return id
}

// SeedBudget inserts an active budget with the given initial value.
func SeedBudget(t *testing.T, db *postgres.DB, userID int64, initial string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRowContext(context.Background(),
		`INSERT INTO budgets (user_id, nome, valor_inicial) VALUES ($1, $2, $3) RETURNING id`,
		userID, "Orçamento "+uuid.NewString()[:8], decimal.RequireFromString(initial),
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: seed budget: %v", err)
	}
	return id
}
