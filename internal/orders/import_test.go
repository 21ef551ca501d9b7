package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseTurkishFloat(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1.234,56", 1234.56},
		{"140,00", 140.0},
		{"1234.56", 1234.56},
		{"500", 500},
		{" 85,50 TL ", 85.50},
		{"12,5", 12.5},
	}

	for _, tc := range cases {
		got, err := parseTurkishFloat(tc.in)
		require.NoError(t, err, "girdi: %q", tc.in)
		require.InDelta(t, tc.want, got, 0.0001, "girdi: %q", tc.in)
	}

	_, err := parseTurkishFloat("abc")
	require.Error(t, err)
}

func TestParseDeliveryDate(t *testing.T) {
	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{"2026-03-15", "15.03.2026", "15/03/2026"} {
		got, err := parseDeliveryDate(in)
		require.NoError(t, err, "girdi: %q", in)
		require.Equal(t, want, got, "girdi: %q", in)
	}

	_, err := parseDeliveryDate("15 Mart 2026")
	require.Error(t, err)
}

func TestNormalizeTurkish(t *testing.T) {
	require.Equal(t, "ozgur tekstil", normalizeTurkish("ÖZGÜR TEKSTİL"))
	require.Equal(t, "cagla giyim", normalizeTurkish("  Çağla Giyim "))
}
