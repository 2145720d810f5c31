package display

import (
	"testing"

	"fxdisplay/internal/currency"
	"fxdisplay/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	reg := currency.NewRegistry()
	cases := []struct {
		code   domain.CurrencyCode
		amount string
		mode   domain.RoundingMode
		want   string
	}{
		{"EUR", "92", domain.RoundBanker, "€92.00"},
		{"USD", "100", domain.RoundBanker, "$100.00"},
		{"USD", "-3", domain.RoundBanker, "-$3.00"},
		{"EUR", "1234.5", domain.RoundBanker, "€1,234.50"},
		{"USD", "1234567.891", domain.RoundBanker, "$1,234,567.89"},
		{"USD", "999.99", domain.RoundBanker, "$999.99"},
		{"USD", "-1000", domain.RoundBanker, "-$1,000.00"},
		{"JPY", "1200", domain.RoundBanker, "¥1,200"},
		{"JPY", "1200.5", domain.RoundBanker, "¥1,200"},
		{"KWD", "1.5", domain.RoundBanker, "KD 1.500"},
		{"BTC", "0.00012345", domain.RoundBanker, "₿0.00012345"},
		{"USD", "2.005", domain.RoundBanker, "$2.00"},
		{"USD", "2.005", domain.RoundHalfUp, "$2.01"},
		{"USD", "-0.001", domain.RoundBanker, "$0.00"},
		{"CAD", "5", domain.RoundBanker, "C$5.00"},
	}

	for _, tc := range cases {
		t.Run(string(tc.code)+"/"+tc.amount, func(t *testing.T) {
			cfg, err := reg.GetConfig(tc.code)
			require.NoError(t, err)
			require.Equal(t, tc.want, FormatMoney(decimal.RequireFromString(tc.amount), cfg, tc.mode))
		})
	}
}

func TestFormatUnknown(t *testing.T) {
	require.Equal(t, "10.00 XXX", FormatUnknown(domain.CurrencyAmount{Currency: "XXX", Amount: decimal.NewFromInt(10)}))
	require.Equal(t, "-12,345.60 XXX", FormatUnknown(domain.CurrencyAmount{Currency: "XXX", Amount: decimal.RequireFromString("-12345.6")}))
}

func TestFormatRate(t *testing.T) {
	require.Equal(t, "0.9200", FormatRate(decimal.RequireFromString("0.92")))
	require.Equal(t, "1.0870", FormatRate(decimal.RequireFromString("1.0869565217391304")))
}

func TestGroupThousands(t *testing.T) {
	require.Equal(t, "0.50", groupThousands("0.50"))
	require.Equal(t, "123", groupThousands("123"))
	require.Equal(t, "1,234", groupThousands("1234"))
	require.Equal(t, "123,456.7", groupThousands("123456.7"))
	require.Equal(t, "1,000,000", groupThousands("1000000"))
}
