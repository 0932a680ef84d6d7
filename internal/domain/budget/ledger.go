package budget

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerLine is the slice of a fixed or variable expense the aggregation needs.
// Expected is only set for fixed expenses.
type LedgerLine struct {
	BudgetID int64
	Expected *decimal.Decimal
	Value    *decimal.Decimal
	PaidAt   *time.Time
}

// Paid reports whether both the paid amount and the payment date are present.
func (l LedgerLine) Paid() bool {
	return l.Value != nil && l.PaidAt != nil
}

// Summarize derives the budget balances from its active expenses.
//
//	current = initial - sum(paid valor)
//	free    = current - sum(previsto of unpaid fixed expenses)
//
// A paid fixed expense only counts through its valor, never through previsto.
func Summarize(initial decimal.Decimal, lines []LedgerLine) (current, free decimal.Decimal) {
	spent := decimal.Zero
	committed := decimal.Zero

	for _, l := range lines {
		switch {
		case l.Paid():
			spent = spent.Add(*l.Value)
		case l.Expected != nil:
			committed = committed.Add(*l.Expected)
		}
	}

	current = initial.Sub(spent)
	free = current.Sub(committed)
	return current, free
}

func (b *Budget) apply(lines []LedgerLine) {
	b.CurrentValue, b.FreeValue = Summarize(b.InitialValue, lines)
}
