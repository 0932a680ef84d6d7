package postgres

import (
	"errors"

	"github.com/lib/pq"

	"orcamentos/internal/domain"
	"orcamentos/internal/domain/category"
	"orcamentos/internal/domain/expense"
	"orcamentos/internal/domain/user"
)

const (
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
	codeRaiseException  = "P0001"
)

// mapError translates driver errors into the domain taxonomy. Domain errors
// pass through untouched; anything unrecognised becomes a StoreError.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrValidation) {
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case codeUniqueViolation:
			switch pqErr.Constraint {
			case "categories_active_name_key":
				return category.ErrDuplicateName
			case "users_email_key":
				return user.ErrEmailTaken
			}
		case codeCheckViolation:
			switch pqErr.Constraint {
			case "fixed_expenses_payment_chk", "variable_expenses_payment_chk":
				return expense.ErrPaymentDateRequired
			}
		case codeRaiseException:
			return domain.NewConflict(pqErr.Message)
		}
	}

	return &domain.StoreError{Op: op, Err: err}
}
