package category

import (
	"strings"
	"time"
	"unicode/utf8"

	"orcamentos/internal/domain"
	"orcamentos/internal/shared/patch"
)

// Kind separates the spending and investment category registries. Both follow
// the same rules; names are unique per user and kind.
type Kind string

const (
	KindSpending   Kind = "gasto"
	KindInvestment Kind = "investimento"
)

func (k Kind) Valid() bool {
	return k == KindSpending || k == KindInvestment
}

const maxNameLength = 100

var (
	ErrNotFound      = domain.NewNotFound("A categoria informada não foi encontrada.")
	ErrDuplicateName = domain.NewConflict("Já existe uma categoria com o nome informado.")
)

type Category struct {
	ID         int64
	UserID     int64
	Kind       Kind
	Name       string
	InactiveAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type CreateParams struct {
	Name       string
	InactiveAt *time.Time
}

func (p *CreateParams) Validate() error {
	p.Name = strings.TrimSpace(p.Name)

	var v domain.ValidationError
	if p.Name == "" {
		v.Add("nome", "nome é obrigatório")
	} else if utf8.RuneCountInString(p.Name) > maxNameLength {
		v.Add("nome", "nome deve ter no máximo 100 caracteres")
	}
	return v.ErrOrNil()
}

type UpdateParams struct {
	Name       *string
	InactiveAt patch.Field[time.Time]
}

func (p *UpdateParams) Validate() error {
	var v domain.ValidationError
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		p.Name = &name
		if name == "" {
			v.Add("nome", "nome não pode ser vazio")
		} else if utf8.RuneCountInString(name) > maxNameLength {
			v.Add("nome", "nome deve ter no máximo 100 caracteres")
		}
	}
	return v.ErrOrNil()
}

// ListFilter narrows List results. Name is a case-insensitive substring.
type ListFilter struct {
	Name string
}
