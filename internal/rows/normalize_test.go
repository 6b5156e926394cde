package rows

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindISIN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain token", "IN0000000000", "IN0000000000"},
		{"lowercase input", "| 1 | Reliance | in9182b01031 |", "IN9182B01031"},
		{"embedded in row", "2 | HDFC Bank Ltd | INE040A01034 | 500 | 1650.00", "INE040A01034"},
		{"first of two wins", "INE040A01034 and INE002A01018", "INE040A01034"},
		{"too short", "IN12345", ""},
		{"no token", "Company Name | Balance | Status", ""},
		{"not word-bounded", "PAIN0000000000X", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindISIN(tt.input))
		})
	}
}

func TestTidySecurityName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"serial prefix, glued percent, ISIN tail",
			"3 | Reliance Industries Ltd 12% ISIN IN0000000000",
			"Reliance Industries Ltd 12%",
		},
		{"pipes become spaces", "HDFC|Bank|Ltd", "HDFC Bank Ltd"},
		{"percent glued to coupon", "8.15%GOI2026", "8.15% GOI2026"},
		{"collapses whitespace", "  State  Bank   of India ", "State Bank of India"},
		{"lowercase isin marker truncates", "Tata Motors isin INE155A01022", "Tata Motors"},
		{"no isin word inside token", "DISINVESTMENT FUND", "DISINVESTMENT FUND"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TidySecurityName(tt.input))
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
		ok    bool
	}{
		{"parenthesized negative", "(1,234.50)", "-1234.5", true},
		{"rupee symbol", "₹ 10,000", "10000", true},
		{"dollar symbol", "$1,000.25", "1000.25", true},
		{"plain integer", "500", "500", true},
		{"trailing unit noise", "1650.00 Cr", "1650", true},
		{"empty", "", "", false},
		{"nil", nil, "", false},
		{"letters only", "Free Balance", "", false},
		{"two decimal points", "1.2.3", "", false},
		{"native float", 12.5, "12.5", true},
		{"native int", 7, "7", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumber(tt.input)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
					"got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseNumberNeverPanics(t *testing.T) {
	for _, in := range []any{"", "()", "((((", "₹₹₹", "....", struct{}{}, []string{"x"}} {
		assert.NotPanics(t, func() { ParseNumber(in) })
	}
}
