package user

import (
	"strings"
	"time"

	"orcamentos/internal/domain"
)

var (
	ErrNotFound   = domain.NewNotFound("O usuário informado não foi encontrado.")
	ErrEmailTaken = domain.NewConflict("Já existe um usuário com o email informado.")
)

type User struct {
	ID          int64
	Email       string
	Name        string
	FirebaseUID *string
	AvatarURL   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Identity is what the identity provider vouches for after verifying a token.
type Identity struct {
	SubjectID string
	Email     string
	Name      string
	AvatarURL string
}

func (i *Identity) Validate() error {
	i.Email = strings.ToLower(strings.TrimSpace(i.Email))
	i.Name = strings.TrimSpace(i.Name)

	var v domain.ValidationError
	if i.SubjectID == "" {
		v.Add("id_token", "token sem identificador de usuário")
	}
	if i.Email == "" || !strings.Contains(i.Email, "@") {
		v.Add("email", "email é obrigatório")
	}
	return v.ErrOrNil()
}

type CreateUserParams struct {
	Email       string
	Name        string
	FirebaseUID *string
	AvatarURL   *string
}

type UpdateUserParams struct {
	Name        *string
	FirebaseUID *string
	AvatarURL   *string
}
