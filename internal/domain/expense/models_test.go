package expense

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orcamentos/internal/domain"
	"orcamentos/internal/shared/patch"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCheckPayment(t *testing.T) {
	now := time.Now()

	assert.NoError(t, CheckPayment(nil, nil))
	assert.NoError(t, CheckPayment(nil, &now))
	assert.NoError(t, CheckPayment(dec("10.00"), &now))

	err := CheckPayment(dec("10.00"), nil)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, "Se o valor for preenchido, a data_pgto também deve ser preenchida.", err.Error())
}

func TestUpdateFixedParams_Merge(t *testing.T) {
	paidAt := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
	notes := "boleto"
	current := Fixed{
		ID:          1,
		CategoryID:  2,
		Description: "Aluguel",
		Expected:    decimal.RequireFromString("500.00"),
		Notes:       &notes,
	}

	t.Run("EmptyPatchKeepsEverything", func(t *testing.T) {
		merged := UpdateFixedParams{}.Merge(current)
		assert.Equal(t, current, merged)
	})

	t.Run("SetsPayment", func(t *testing.T) {
		merged := UpdateFixedParams{
			Value:  patch.Of(decimal.RequireFromString("500.00")),
			PaidAt: patch.Of(paidAt),
		}.Merge(current)

		require.NotNil(t, merged.Value)
		require.NotNil(t, merged.PaidAt)
		assert.True(t, merged.IsPaid())
		assert.NoError(t, CheckPayment(merged.Value, merged.PaidAt))
	})

	t.Run("ValueAloneOnUnpaidConflicts", func(t *testing.T) {
		merged := UpdateFixedParams{Value: patch.Of(decimal.RequireFromString("500.00"))}.Merge(current)
		assert.ErrorIs(t, CheckPayment(merged.Value, merged.PaidAt), ErrPaymentDateRequired)
	})

	t.Run("ClearingDateOfPaidConflicts", func(t *testing.T) {
		paid := current
		paid.Value = dec("500.00")
		paid.PaidAt = &paidAt

		merged := UpdateFixedParams{PaidAt: patch.Null[time.Time]()}.Merge(paid)
		assert.Nil(t, merged.PaidAt)
		assert.ErrorIs(t, CheckPayment(merged.Value, merged.PaidAt), ErrPaymentDateRequired)
	})

	t.Run("ClearingBothIsAllowed", func(t *testing.T) {
		paid := current
		paid.Value = dec("500.00")
		paid.PaidAt = &paidAt

		merged := UpdateFixedParams{
			Value:  patch.Null[decimal.Decimal](),
			PaidAt: patch.Null[time.Time](),
		}.Merge(paid)
		assert.NoError(t, CheckPayment(merged.Value, merged.PaidAt))
		assert.False(t, merged.IsPaid())
	})

	t.Run("ClearsNotes", func(t *testing.T) {
		merged := UpdateFixedParams{Notes: patch.Null[string]()}.Merge(current)
		assert.Nil(t, merged.Notes)
		assert.NotNil(t, current.Notes)
	})
}

func TestUpdateVariableParams_MergedPayment(t *testing.T) {
	paidAt := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
	current := Variable{Value: decimal.RequireFromString("42.00"), PaidAt: paidAt}

	value, date := UpdateVariableParams{}.MergedPayment(current)
	require.NotNil(t, value)
	require.NotNil(t, date)
	assert.Equal(t, "42.00", value.StringFixed(2))

	value, date = UpdateVariableParams{PaidAt: patch.Null[time.Time]()}.MergedPayment(current)
	assert.NotNil(t, value)
	assert.Nil(t, date)
	assert.ErrorIs(t, CheckPayment(value, date), ErrPaymentDateRequired)
}

func TestFixed_IsOverdue(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	assert.True(t, (&Fixed{DueDate: &yesterday}).IsOverdue(now))
	assert.False(t, (&Fixed{DueDate: &tomorrow}).IsOverdue(now))
	assert.False(t, (&Fixed{}).IsOverdue(now))
	assert.False(t, (&Fixed{DueDate: &yesterday, Value: dec("1"), PaidAt: &yesterday}).IsOverdue(now))
}

func TestCreateParams_Validate(t *testing.T) {
	fixed := CreateFixedParams{Description: "  ", Expected: decimal.NewFromInt(-5)}
	err := fixed.Validate()

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	fields := make([]string, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"categoria_id", "descricao", "previsto"}, fields)

	variable := CreateVariableParams{CategoryID: 1, Description: "Padaria"}
	err = variable.Validate()
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "valor", verr.Errors[0].Field)

	update := UpdateVariableParams{Value: patch.Null[decimal.Decimal]()}
	assert.ErrorIs(t, update.Validate(), domain.ErrValidation)
}

func TestFilter_Validate(t *testing.T) {
	from := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)

	assert.NoError(t, (&Filter{Status: StatusPaid}).Validate())
	assert.ErrorIs(t, (&Filter{Status: "talvez"}).Validate(), domain.ErrValidation)
	assert.ErrorIs(t, (&Filter{PaidFrom: &from, PaidTo: &to}).Validate(), domain.ErrValidation)
}
