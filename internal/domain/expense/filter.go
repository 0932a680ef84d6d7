package expense

import (
	"strings"
	"time"

	"orcamentos/internal/domain"
)

type PaymentStatus string

const (
	StatusPaid   PaymentStatus = "pago"
	StatusUnpaid PaymentStatus = "nao_pago"
)

// Filter narrows a ledger listing. Every set field adds an AND predicate.
type Filter struct {
	Description string
	PaidOn      *time.Time
	PaidFrom    *time.Time
	PaidTo      *time.Time
	Category    string
	Status      PaymentStatus
	// Overdue only applies to fixed expenses.
	Overdue *bool
}

func (f *Filter) Validate() error {
	f.Description = strings.TrimSpace(f.Description)
	f.Category = strings.TrimSpace(f.Category)

	var v domain.ValidationError
	switch f.Status {
	case "", StatusPaid, StatusUnpaid:
	default:
		v.Add("status", "status deve ser pago ou nao_pago")
	}
	if f.PaidFrom != nil && f.PaidTo != nil && f.PaidTo.Before(*f.PaidFrom) {
		v.Add("data_pgto_fim", "data_pgto_fim deve ser posterior a data_pgto_inicio")
	}
	return v.ErrOrNil()
}
