package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.005", "1.01"},
		{"1.004", "1"},
		{"2.675", "2.68"},
		{"-1.005", "-1"},
		{"-1.006", "-1.01"},
		{"30", "30"},
		{"0.125", "0.13"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Round(decimal.RequireFromString(tt.in))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestRoundFloatInputs(t *testing.T) {
	// 0.1 + 0.2 is 0.30000000000000004 in float64
	sum := decimal.NewFromFloat(0.1).Add(decimal.NewFromFloat(0.2))
	assert.True(t, Round(sum).Equal(decimal.RequireFromString("0.3")))
}

func TestPercent(t *testing.T) {
	assert.True(t, Percent(decimal.NewFromInt(250), decimal.NewFromInt(10)).Equal(decimal.NewFromInt(25)))
	assert.True(t, Percent(decimal.RequireFromString("99.99"), decimal.NewFromInt(15)).Equal(decimal.RequireFromString("15")))
}
