package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotBlank(t *testing.T) {
	validator := New()
	validator.Check(NotBlank(""), "name", "Name is required")
	if validator.Valid() {
		t.Error("validator.Valid() should return false")
	}
	if len(validator.Errors) != 1 {
		t.Error("validator.Errors should contain one entry")
	}
	if validator.Errors["name"] != "Name is required" {
		t.Error("validator.Errors[name] should contain the correct error message")
	}

	assert.False(t, NotBlank(" \t "))
	assert.True(t, NotBlank(" a "))
}

func TestRunes(t *testing.T) {
	assert.True(t, MaxRunes("Côte", 4))
	assert.False(t, MaxRunes("Côte d'Ivoire", 4))
	assert.True(t, MinRunes("ni", 2))
	assert.False(t, MinRunes("n", 2))
}

func TestIn(t *testing.T) {
	assert.True(t, In("next", "previous", "next"))
	assert.False(t, In("up", "previous", "next"))
	assert.False(t, In(3))
}

func TestURLs(t *testing.T) {
	tests := []struct {
		value  string
		isURL  bool
		isHTTP bool
	}{
		{"https://restcountries.com/v3.1/all", true, true},
		{"http://localhost:8080/all", true, true},
		{"ftp://example.com/file", true, false},
		{"/relative/path", false, false},
		{"", false, false},
		{"not a url", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.isURL, IsURL(tt.value))
			assert.Equal(t, tt.isHTTP, IsHTTPURL(tt.value))
		})
	}
}
