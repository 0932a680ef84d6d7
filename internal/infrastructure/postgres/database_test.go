package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "placeholders are kept",
			query: "SELECT id FROM budgets WHERE id = $1 AND user_id = $2",
			want:  "SELECT id FROM budgets WHERE id = $1 AND user_id = $2",
		},
		{
			name:  "string literals are masked",
			query: "SELECT id FROM categories WHERE kind = 'gasto'",
			want:  "SELECT id FROM categories WHERE kind = '?'",
		},
		{
			name:  "escaped quotes stay inside the literal",
			query: "SELECT 'it''s' AS x",
			want:  "SELECT '?' AS x",
		},
		{
			name:  "numeric literals are masked",
			query: "SELECT valor FROM fixed_expenses LIMIT 10 OFFSET 2.5",
			want:  "SELECT valor FROM fixed_expenses LIMIT ? OFFSET ?",
		},
		{
			name:  "digits inside identifiers are kept",
			query: "SELECT col1 FROM t2",
			want:  "SELECT col1 FROM t2",
		},
		{
			name:  "whitespace is collapsed",
			query: "\n\tSELECT  id\n\tFROM users\n",
			want:  "SELECT id FROM users",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeQuery(tt.query))
		})
	}
}

func TestSanitizeQuery_Truncates(t *testing.T) {
	long := "SELECT "
	for len(long) < 400 {
		long += "nome, "
	}

	got := sanitizeQuery(long)
	assert.Len(t, got, 256+len("..."))
	assert.Contains(t, got, "...")
}

func TestExtractSQLVerb(t *testing.T) {
	assert.Equal(t, "SELECT", extractSQLVerb("  select id from users"))
	assert.Equal(t, "UPDATE", extractSQLVerb("UPDATE budgets SET nome = $1"))
	assert.Equal(t, "COMMIT", extractSQLVerb("commit"))
	assert.Equal(t, "", extractSQLVerb(""))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\tmp`, escapeLike(`c:\tmp`))
	assert.Equal(t, "mercado", escapeLike("mercado"))
}
