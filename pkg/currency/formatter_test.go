package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		amount float64
		code   string
		want   string
	}{
		{2850, "USD", "$ 2,850"},
		{1850, "EUR", "EUR 1,850"},
		{999, "usd", "$ 999"},
		{1234567, "BRL", "BRL 1,234,567"},
		{1234.5, "USD", "$ 1,234.50"},
		{19.999, "USD", "$ 20"},
		{0, "", "$ 0"},
		{-4200, "ARS", "ARS -4,200"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.amount, tt.code))
		})
	}
}

func TestAddThousandsSeparator(t *testing.T) {
	assert.Equal(t, "1", addThousandsSeparator("1", ","))
	assert.Equal(t, "100", addThousandsSeparator("100", ","))
	assert.Equal(t, "1,000", addThousandsSeparator("1000", ","))
	assert.Equal(t, "10,000,000", addThousandsSeparator("10000000", ","))
}
