package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	v := New()

	require.NotNil(t, v.Errors)
	assert.Empty(t, v.Errors)
	assert.True(t, v.Valid())
}

func TestValidator_FirstErrorPerKeyWins(t *testing.T) {
	v := New()
	v.AddError("query", "query is too long")
	v.AddError("query", "query contains markup")
	v.AddError("direction", "unknown direction")

	assert.Equal(t, map[string]string{
		"query":     "query is too long",
		"direction": "unknown direction",
	}, v.Errors)
	assert.False(t, v.Valid())
}

func TestValidator_Check(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  map[string]string
	}{
		{"short query passes", "nig", map[string]string{}},
		{"long query fails", "united kingdom of great britain", map[string]string{"query": "at most 10 characters"}},
		{"blank query fails", "   ", map[string]string{"query": "must not be blank"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.Check(NotBlank(tt.query), "query", "must not be blank")
			v.Check(MaxRunes(tt.query, 10), "query", "at most 10 characters")

			assert.Equal(t, tt.want, v.Errors)
			assert.Equal(t, len(tt.want) == 0, v.Valid())
		})
	}
}
