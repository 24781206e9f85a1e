package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("longenough"))
	assert.Error(t, ValidatePassword(strings.Repeat("a", 129)))
	assert.NoError(t, ValidatePassword(strings.Repeat("a", 128)))
}

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last+tag@sub.domain.org",
	}
	for _, email := range valid {
		assert.NoError(t, ValidateEmail(email), email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@missinglocal.com",
		"missing-at.example.com",
		"user@nodot",
	}
	for _, email := range invalid {
		assert.Error(t, ValidateEmail(email), email)
	}
}

func TestValidateRating(t *testing.T) {
	for rating := 1; rating <= 5; rating++ {
		assert.NoError(t, ValidateRating(rating))
	}
	assert.Error(t, ValidateRating(0))
	assert.Error(t, ValidateRating(6))
	assert.Error(t, ValidateRating(-1))
}

func TestValidateFullName(t *testing.T) {
	assert.Error(t, ValidateFullName("A"))
	assert.NoError(t, ValidateFullName("Al"))
	assert.NoError(t, ValidateFullName("Grace Hopper"))
	assert.Error(t, ValidateFullName(strings.Repeat("x", 101)))
}
