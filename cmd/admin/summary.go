package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"orcamentos/internal/domain/budget"
	"orcamentos/internal/domain/investment"
)

// DefaultWorkerCount bounds how many users are summarized at once.
const DefaultWorkerCount = 4

type budgetLister interface {
	ListBudgets(ctx context.Context, userID int64) ([]*budget.Budget, error)
}

type investmentLister interface {
	ListInvestments(ctx context.Context, userID int64) ([]*investment.Investment, error)
}

// UserSummary holds the derived values of one user's budgets and investments.
type UserSummary struct {
	UserID      int64
	Budgets     []*budget.Budget
	Investments []*investment.Investment
}

// InvestedTotal sums the current value of every investment.
func (s *UserSummary) InvestedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, inv := range s.Investments {
		total = total.Add(inv.CurrentValue)
	}
	return total
}

// collectSummaries loads every user's summary with at most workers users in
// flight. The first failure cancels the rest.
func collectSummaries(ctx context.Context, userIDs []int64, workers int, budgets budgetLister, investments investmentLister) ([]*UserSummary, error) {
	if workers < 1 {
		workers = 1
	}

	summaries := make([]*UserSummary, len(userIDs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, userID := range userIDs {
		g.Go(func() error {
			b, err := budgets.ListBudgets(ctx, userID)
			if err != nil {
				return fmt.Errorf("user %d: list budgets: %w", userID, err)
			}
			inv, err := investments.ListInvestments(ctx, userID)
			if err != nil {
				return fmt.Errorf("user %d: list investments: %w", userID, err)
			}
			summaries[i] = &UserSummary{UserID: userID, Budgets: b, Investments: inv}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].UserID < summaries[j].UserID })
	return summaries, nil
}

func printSummary(w io.Writer, s *UserSummary) {
	fmt.Fprintf(w, "\n=== User %d ===\n", s.UserID)

	fmt.Fprintf(w, "  Budgets: %d\n", len(s.Budgets))
	for _, b := range s.Budgets {
		fmt.Fprintf(w, "    #%d %-30s inicial=%s atual=%s livre=%s\n",
			b.ID, b.Name, b.InitialValue.StringFixed(2), b.CurrentValue.StringFixed(2), b.FreeValue.StringFixed(2))
	}

	fmt.Fprintf(w, "  Investments: %d (total %s)\n", len(s.Investments), s.InvestedTotal().StringFixed(2))
	for _, inv := range s.Investments {
		fmt.Fprintf(w, "    #%d %-30s inicial=%s atual=%s\n",
			inv.ID, inv.Name, inv.InitialValue.StringFixed(2), inv.CurrentValue.StringFixed(2))
	}
}
