package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnlyDigits(t *testing.T) {
	assert.Equal(t, "01012345678", OnlyDigits("010-1234-5678"))
	assert.Equal(t, "", OnlyDigits("abc-"))
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"mobile with dashes", "010-1234-5678", "010-1234-5678"},
		{"mobile bare digits", "01012345678", "010-1234-5678"},
		{"mobile with spaces", "010 1234 5678", "010-1234-5678"},
		{"ten digit landline", "0212345678", "021-234-5678"},
		{"unrecognized length passes through", "12345", "12345"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.in))
		})
	}
}
