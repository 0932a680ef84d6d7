package patch

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type request struct {
	DataPgto Field[time.Time] `json:"data_pgto"`
	Nome     Field[string]    `json:"nome"`
}

func TestField_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantNull  bool
		wantValue string
	}{
		{name: "absent", body: `{}`, wantSet: false},
		{name: "explicit null", body: `{"nome": null}`, wantSet: true, wantNull: true},
		{name: "value", body: `{"nome": "Aluguel"}`, wantSet: true, wantValue: "Aluguel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req request
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			assert.Equal(t, tt.wantSet, req.Nome.Set)
			assert.Equal(t, tt.wantNull, req.Nome.Null)
			assert.Equal(t, tt.wantValue, req.Nome.Value)
		})
	}
}

func TestField_UnmarshalInvalid(t *testing.T) {
	var req request
	err := json.Unmarshal([]byte(`{"data_pgto": "not a date"}`), &req)
	assert.Error(t, err)
}

func TestField_Apply(t *testing.T) {
	current := "antigo"

	assert.Equal(t, &current, Field[string]{}.Apply(&current))
	assert.Nil(t, Null[string]().Apply(&current))

	got := Of("novo").Apply(&current)
	require.NotNil(t, got)
	assert.Equal(t, "novo", *got)
	assert.Equal(t, "antigo", current)
}

func TestField_Ptr(t *testing.T) {
	assert.Nil(t, Field[int]{}.Ptr())
	assert.Nil(t, Null[int]().Ptr())

	p := Of(3).Ptr()
	require.NotNil(t, p)
	assert.Equal(t, 3, *p)
}
