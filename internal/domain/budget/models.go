package budget

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"orcamentos/internal/domain"
	"orcamentos/internal/shared/patch"
)

var ErrNotFound = domain.NewNotFound("O orçamento informado não foi encontrado.")

// Budget is a spending envelope. CurrentValue and FreeValue are never stored;
// the service fills them from the expense ledger on every read.
type Budget struct {
	ID           int64
	UserID       int64
	Name         string
	InitialValue decimal.Decimal
	CurrentValue decimal.Decimal
	FreeValue    decimal.Decimal
	ClosingDate  *time.Time
	InactiveAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateParams struct {
	Name         string
	InitialValue decimal.Decimal
	ClosingDate  *time.Time
	InactiveAt   *time.Time
}

func (p *CreateParams) Validate() error {
	p.Name = strings.TrimSpace(p.Name)

	var v domain.ValidationError
	validateName(&v, p.Name)
	if p.InitialValue.IsNegative() {
		v.Add("valor_inicial", "valor_inicial deve ser maior ou igual a zero")
	}
	return v.ErrOrNil()
}

type UpdateParams struct {
	Name         *string
	InitialValue *decimal.Decimal
	ClosingDate  patch.Field[time.Time]
	InactiveAt   patch.Field[time.Time]
}

func (p *UpdateParams) Validate() error {
	var v domain.ValidationError
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		p.Name = &name
		validateName(&v, name)
	}
	if p.InitialValue != nil && p.InitialValue.IsNegative() {
		v.Add("valor_inicial", "valor_inicial deve ser maior ou igual a zero")
	}
	return v.ErrOrNil()
}

func validateName(v *domain.ValidationError, name string) {
	switch {
	case name == "":
		v.Add("nome", "nome é obrigatório")
	case utf8.RuneCountInString(name) > 100:
		v.Add("nome", "nome deve ter no máximo 100 caracteres")
	}
}
