package csvfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	type testCase struct {
		in   string
		want string
	}

	tests := []testCase{
		{"1500", "1500"},
		{"1,234.56", "1234.56"},
		{"1.234,56", "1234.56"},
		{"1.234.567,89", "1234567.89"},
		{"1,234,567", "1234567"},
		{"12,5", "12.5"},
		{"1,500", "1500"},
		{"RM 2,000.00", "2000"},
		{"-588,74", "-588.74"},
		{"(75.10)", "-75.1"},
		{"6%", "6"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}

	for _, bad := range []string{"", "  ", "abc", "RM"} {
		_, err := parseAmount(bad)
		assert.Error(t, err, bad)
	}
}
