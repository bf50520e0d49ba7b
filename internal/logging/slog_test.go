package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
	}{
		{name: "regular email", email: "user@example.com"},
		{name: "another email", email: "other@example.org"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnonymizeEmail(tt.email)
			assert.NotEmpty(t, got)
			assert.NotContains(t, got, tt.email)
			// Same input must hash to the same value for correlation.
			assert.Equal(t, got, AnonymizeEmail(tt.email))
		})
	}
}

func TestAnonymizeEmailEmpty(t *testing.T) {
	assert.Empty(t, AnonymizeEmail(""))
}

func TestSanitizeToken(t *testing.T) {
	assert.Equal(t, "<empty>", SanitizeToken(""))
	got := SanitizeToken("ya29.secret-token-value")
	assert.NotContains(t, got, "secret")
	assert.Equal(t, "[token:23 chars]", got)
}

func TestErrNil(t *testing.T) {
	attr := Err(nil)
	assert.Empty(t, attr.Key)
}

func TestErrNonNil(t *testing.T) {
	attr := Err(errors.New("boom"))
	assert.Equal(t, KeyError, attr.Key)
	assert.Equal(t, "boom", attr.Value.String())
}
