package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orcamentos/internal/domain"
)

func TestWriteError(t *testing.T) {
	validation := &domain.ValidationError{}
	validation.Add("nome", "nome é obrigatório")
	validation.Add("valor_inicial", "valor_inicial deve ser maior ou igual a zero")

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantFields  int
	}{
		{"not found", domain.NewNotFound("O orçamento informado não foi encontrado."), http.StatusNotFound, "O orçamento informado não foi encontrado.", 0},
		{"conflict", domain.NewConflict("Já existe uma categoria com o nome informado."), http.StatusConflict, "Já existe uma categoria com o nome informado.", 0},
		{"validation", validation, http.StatusBadRequest, "Dados inválidos.", 2},
		{"unauthorized", domain.NewUnauthorized("Token inválido."), http.StatusUnauthorized, "Token inválido.", 0},
		{"store error hides detail", &domain.StoreError{Op: "list budgets", Err: errors.New("pq: password authentication failed")}, http.StatusInternalServerError, msgInternal, 0},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, msgInternal, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), discardLogger(), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			body := decodeBody[ErrorResponse](t, rec)
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.Len(t, body.Errors, tt.wantFields)
			assert.NotContains(t, rec.Body.String(), "pq:")
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst CreateBudgetRequest

	err := decodeJSON(newRequest(http.MethodPost, "/", `{"nome": 12}`), &dst)
	var v *domain.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "nome", v.Errors[0].Field)

	err = decodeJSON(newRequest(http.MethodPost, "/", `{`), &dst)
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = decodeJSON(newRequest(http.MethodPost, "/", `{"nome":"Março","valor_inicial":"10.5"}`), &dst)
	require.NoError(t, err)
	assert.True(t, dst.InitialValue.Equal(dec("10.5")))
}

func TestPathID(t *testing.T) {
	notFound := domain.NewNotFound("x")

	id, err := pathID(newRequest(http.MethodGet, "/", nil, "id", "42"), "id", notFound)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "0", "-3"} {
		_, err := pathID(newRequest(http.MethodGet, "/", nil, "id", raw), "id", notFound)
		assert.Same(t, notFound, err, raw)
	}
}

func TestParseDateParam(t *testing.T) {
	q := url.Values{
		"day":   {"2025-03-05"},
		"stamp": {"2025-03-05T10:30:00-03:00"},
		"bad":   {"05/03/2025"},
	}
	var v domain.ValidationError

	day := parseDateParam(q, "day", &v)
	require.NotNil(t, day)
	assert.Equal(t, "2025-03-05T00:00:00Z", day.Format("2006-01-02T15:04:05Z07:00"))

	stamp := parseDateParam(q, "stamp", &v)
	require.NotNil(t, stamp)
	assert.Equal(t, 13, stamp.UTC().Hour())

	assert.Nil(t, parseDateParam(q, "missing", &v))
	assert.Nil(t, parseDateParam(q, "bad", &v))
	require.Len(t, v.Errors, 1)
	assert.Equal(t, "bad", v.Errors[0].Field)
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "1000.00", money(dec("1000")).String())
	assert.Equal(t, "0.10", money(dec("0.1")).String())
	assert.Nil(t, moneyPtr(nil))
	assert.Equal(t, "2.50", moneyPtr(decPtr("2.5")).String())
}
