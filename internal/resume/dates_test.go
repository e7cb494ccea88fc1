package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMonthYear(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"0", "0"},
		{"03", "03"},
		{"032", "03/2"},
		{"032021", "03/2021"},
		{"03/2021", "03/2021"},
		{"03-2021", "03/2021"},
		{"03/20219", "03/2021"}, // extra digits dropped
		{"abc", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMonthYear(tt.in), "input %q", tt.in)
	}
}

func TestValidateMonthYear(t *testing.T) {
	valid := []string{"01/2020", "12/1900", "06/2099"}
	for _, v := range valid {
		assert.True(t, ValidateMonthYear(v), "%q should validate", v)
	}

	invalid := []string{"", "13/2020", "00/2020", "01/1899", "01/2100", "1/2020", "012020", "01-2020"}
	for _, v := range invalid {
		assert.False(t, ValidateMonthYear(v), "%q should not validate", v)
	}
}

func TestDateConversionRoundTrip(t *testing.T) {
	assert.Equal(t, "03/2021", ToDisplayDate("2021-03"))
	assert.Equal(t, "2021-03", ToStorageDate("03/2021"))

	// already in target form passes through
	assert.Equal(t, "03/2021", ToDisplayDate("03/2021"))
	assert.Equal(t, "2021-03", ToStorageDate("2021-03"))

	// unrecognized values never get mangled
	assert.Equal(t, "Atual", ToDisplayDate("Atual"))
	assert.Equal(t, "Atual", ToStorageDate("Atual"))
	assert.Equal(t, "", ToDisplayDate(""))

	// bijection over every month of a year
	for _, stored := range []string{"1999-01", "1999-06", "1999-12", "2024-02"} {
		assert.Equal(t, stored, ToStorageDate(ToDisplayDate(stored)))
	}
}
