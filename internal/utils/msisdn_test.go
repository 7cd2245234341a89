package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateMSISDN_ValidNumbers(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"with country code", "628123456789", "628123456789"},
		{"with plus prefix", "+628123456789", "628123456789"},
		{"with leading zero", "08123456789", "628123456789"},
		{"with dashes", "0812-3456-789", "628123456789"},
		{"telkomsel 821 prefix", "08211234567", "628211234567"},
		{"telkomsel 852 prefix", "08521234567", "628521234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, formatted, err := ValidateMSISDN(tt.input)

			assert.NoError(t, err)
			assert.True(t, valid)
			assert.Equal(t, tt.expected, formatted)
		})
	}
}

func TestValidateMSISDN_InvalidNumbers(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unsupported operator", "08571234567"},
		{"too short", "0812123"},
		{"too long", "0812345678901234"},
		{"not a number", "not-a-phone"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, formatted, err := ValidateMSISDN(tt.input)

			assert.Error(t, err)
			assert.False(t, valid)
			assert.Empty(t, formatted)
		})
	}
}
