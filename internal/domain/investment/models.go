package investment

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"orcamentos/internal/domain"
	"orcamentos/internal/shared/patch"
)

var (
	ErrNotFound              = domain.NewNotFound("O investimento informado não foi encontrado.")
	ErrTimelineEntryNotFound = domain.NewNotFound("O registro informado não foi encontrado na linha do tempo.")
)

// Investment tracks an asset whose value is registered over time.
// CurrentValue is derived from the timeline on every read.
type Investment struct {
	ID           int64
	UserID       int64
	CategoryID   int64
	CategoryName string
	Name         string
	Description  string
	InitialValue decimal.Decimal
	CurrentValue decimal.Decimal
	InactiveAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateParams struct {
	CategoryID   int64
	Name         string
	Description  string
	InitialValue decimal.Decimal
	InactiveAt   *time.Time
}

func (p *CreateParams) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)

	var v domain.ValidationError
	if p.CategoryID <= 0 {
		v.Add("categoria_id", "categoria_id é obrigatório")
	}
	validateName(&v, p.Name)
	if utf8.RuneCountInString(p.Description) > 255 {
		v.Add("descricao", "descricao deve ter no máximo 255 caracteres")
	}
	if p.InitialValue.IsNegative() {
		v.Add("valor_inicial", "valor_inicial deve ser maior ou igual a zero")
	}
	return v.ErrOrNil()
}

type UpdateParams struct {
	CategoryID   *int64
	Name         *string
	Description  *string
	InitialValue *decimal.Decimal
	InactiveAt   patch.Field[time.Time]
}

func (p *UpdateParams) Validate() error {
	var v domain.ValidationError
	if p.CategoryID != nil && *p.CategoryID <= 0 {
		v.Add("categoria_id", "categoria_id é obrigatório")
	}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		p.Name = &name
		validateName(&v, name)
	}
	if p.Description != nil {
		d := strings.TrimSpace(*p.Description)
		p.Description = &d
		if utf8.RuneCountInString(d) > 255 {
			v.Add("descricao", "descricao deve ter no máximo 255 caracteres")
		}
	}
	if p.InitialValue != nil && p.InitialValue.IsNegative() {
		v.Add("valor_inicial", "valor_inicial deve ser maior ou igual a zero")
	}
	return v.ErrOrNil()
}

// TimelineEntry registers the value of an investment at a given date.
type TimelineEntry struct {
	ID           int64
	InvestmentID int64
	Value        decimal.Decimal
	RegisteredAt time.Time
	InactiveAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateEntryParams struct {
	Value        *decimal.Decimal
	RegisteredAt *time.Time
	InactiveAt   *time.Time
}

func (p *CreateEntryParams) Validate() error {
	var v domain.ValidationError
	switch {
	case p.Value == nil:
		v.Add("valor", "valor é obrigatório")
	case p.Value.IsNegative():
		v.Add("valor", "valor deve ser maior ou igual a zero")
	}
	if p.RegisteredAt == nil {
		v.Add("data_registro", "data_registro é obrigatória")
	}
	return v.ErrOrNil()
}

type UpdateEntryParams struct {
	Value        *decimal.Decimal
	RegisteredAt *time.Time
	InactiveAt   patch.Field[time.Time]
}

func (p *UpdateEntryParams) Validate() error {
	var v domain.ValidationError
	if p.Value != nil && p.Value.IsNegative() {
		v.Add("valor", "valor deve ser maior ou igual a zero")
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
