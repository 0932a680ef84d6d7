package expense

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"orcamentos/internal/domain"
	"orcamentos/internal/shared/patch"
)

var (
	ErrFixedNotFound    = domain.NewNotFound("O gasto fixo informado não foi encontrado.")
	ErrVariableNotFound = domain.NewNotFound("O gasto variado informado não foi encontrado.")

	// ErrPaymentDateRequired is returned when an expense would end up with a
	// paid amount and no payment date.
	ErrPaymentDateRequired = domain.NewConflict("Se o valor for preenchido, a data_pgto também deve ser preenchida.")
)

// CheckPayment enforces that a paid amount always comes with a payment date.
// It must be called with the merged state of a record, never a bare patch.
func CheckPayment(value *decimal.Decimal, paidAt *time.Time) error {
	if value != nil && paidAt == nil {
		return ErrPaymentDateRequired
	}
	return nil
}

// Fixed is a planned expense. It starts with an expected amount and becomes
// paid once both Value and PaidAt are set.
type Fixed struct {
	ID           int64
	BudgetID     int64
	CategoryID   int64
	CategoryName string
	Description  string
	Expected     decimal.Decimal
	Value        *decimal.Decimal
	PaidAt       *time.Time
	DueDate      *time.Time
	Notes        *string
	InactiveAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (f *Fixed) IsPaid() bool {
	return f.Value != nil && f.PaidAt != nil
}

// IsOverdue reports an unpaid fixed expense whose due date is before now.
func (f *Fixed) IsOverdue(now time.Time) bool {
	return !f.IsPaid() && f.DueDate != nil && f.DueDate.Before(now)
}

type CreateFixedParams struct {
	CategoryID  int64
	Description string
	Expected    decimal.Decimal
	Value       *decimal.Decimal
	PaidAt      *time.Time
	DueDate     *time.Time
	Notes       *string
	InactiveAt  *time.Time
}

func (p *CreateFixedParams) Validate() error {
	p.Description = strings.TrimSpace(p.Description)

	var v domain.ValidationError
	validateCategoryID(&v, p.CategoryID)
	validateDescription(&v, p.Description)
	if p.Expected.IsNegative() {
		v.Add("previsto", "previsto deve ser maior ou igual a zero")
	}
	if p.Value != nil && p.Value.IsNegative() {
		v.Add("valor", "valor deve ser maior ou igual a zero")
	}
	return v.ErrOrNil()
}

type UpdateFixedParams struct {
	CategoryID  *int64
	Description *string
	Expected    *decimal.Decimal
	Value       patch.Field[decimal.Decimal]
	PaidAt      patch.Field[time.Time]
	DueDate     patch.Field[time.Time]
	Notes       patch.Field[string]
	InactiveAt  patch.Field[time.Time]
}

func (p *UpdateFixedParams) Validate() error {
	var v domain.ValidationError
	if p.CategoryID != nil {
		validateCategoryID(&v, *p.CategoryID)
	}
	if p.Description != nil {
		d := strings.TrimSpace(*p.Description)
		p.Description = &d
		validateDescription(&v, d)
	}
	if p.Expected != nil && p.Expected.IsNegative() {
		v.Add("previsto", "previsto deve ser maior ou igual a zero")
	}
	if p.Value.HasValue() && p.Value.Value.IsNegative() {
		v.Add("valor", "valor deve ser maior ou igual a zero")
	}
	return v.ErrOrNil()
}

// Merge returns the record as it would look after the update.
func (p UpdateFixedParams) Merge(current Fixed) Fixed {
	merged := current
	if p.CategoryID != nil {
		merged.CategoryID = *p.CategoryID
	}
	if p.Description != nil {
		merged.Description = *p.Description
	}
	if p.Expected != nil {
		merged.Expected = *p.Expected
	}
	merged.Value = p.Value.Apply(current.Value)
	merged.PaidAt = p.PaidAt.Apply(current.PaidAt)
	merged.DueDate = p.DueDate.Apply(current.DueDate)
	merged.Notes = p.Notes.Apply(current.Notes)
	merged.InactiveAt = p.InactiveAt.Apply(current.InactiveAt)
	return merged
}

// Variable is an expense that was already incurred, so it always carries a
// paid amount and a payment date.
type Variable struct {
	ID           int64
	BudgetID     int64
	CategoryID   int64
	CategoryName string
	Description  string
	Value        decimal.Decimal
	PaidAt       time.Time
	Notes        *string
	InactiveAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateVariableParams struct {
	CategoryID  int64
	Description string
	Value       *decimal.Decimal
	PaidAt      *time.Time
	Notes       *string
	InactiveAt  *time.Time
}

func (p *CreateVariableParams) Validate() error {
	p.Description = strings.TrimSpace(p.Description)

	var v domain.ValidationError
	validateCategoryID(&v, p.CategoryID)
	validateDescription(&v, p.Description)
	switch {
	case p.Value == nil:
		v.Add("valor", "valor é obrigatório")
	case p.Value.IsNegative():
		v.Add("valor", "valor deve ser maior ou igual a zero")
	}
	if p.PaidAt == nil {
		v.Add("data_pgto", "data_pgto é obrigatória")
	}
	return v.ErrOrNil()
}

type UpdateVariableParams struct {
	CategoryID  *int64
	Description *string
	Value       patch.Field[decimal.Decimal]
	PaidAt      patch.Field[time.Time]
	Notes       patch.Field[string]
	InactiveAt  patch.Field[time.Time]
}

func (p *UpdateVariableParams) Validate() error {
	var v domain.ValidationError
	if p.CategoryID != nil {
		validateCategoryID(&v, *p.CategoryID)
	}
	if p.Description != nil {
		d := strings.TrimSpace(*p.Description)
		p.Description = &d
		validateDescription(&v, d)
	}
	switch {
	case p.Value.Set && p.Value.Null:
		v.Add("valor", "valor não pode ser removido de um gasto variado")
	case p.Value.HasValue() && p.Value.Value.IsNegative():
		v.Add("valor", "valor deve ser maior ou igual a zero")
	}
	return v.ErrOrNil()
}

// MergedPayment returns the payment state after the update, for CheckPayment.
func (p UpdateVariableParams) MergedPayment(current Variable) (*decimal.Decimal, *time.Time) {
	value := current.Value
	paidAt := current.PaidAt
	return p.Value.Apply(&value), p.PaidAt.Apply(&paidAt)
}

func validateCategoryID(v *domain.ValidationError, id int64) {
	if id <= 0 {
		v.Add("categoria_id", "categoria_id é obrigatório")
	}
}

func validateDescription(v *domain.ValidationError, d string) {
	switch {
	case d == "":
		v.Add("descricao", "descricao é obrigatória")
	case utf8.RuneCountInString(d) > 255:
		v.Add("descricao", "descricao deve ter no máximo 255 caracteres")
	}
}
