package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAgingBucketFor(t *testing.T) {
	asOf := day(2026, time.March, 15)

	tests := []struct {
		name    string
		dueDate time.Time
		want    AgingBucket
	}{
		{"vadesi gelecekte", day(2026, time.April, 1), BucketCurrent},
		{"vade günü bugün", day(2026, time.March, 15), BucketCurrent},
		{"1 gün gecikmiş", day(2026, time.March, 14), Bucket1To30},
		{"30 gün gecikmiş", day(2026, time.February, 13), Bucket1To30},
		{"31 gün gecikmiş", day(2026, time.February, 12), Bucket31To60},
		{"60 gün gecikmiş", day(2026, time.January, 14), Bucket31To60},
		{"61 gün gecikmiş", day(2026, time.January, 13), Bucket61To90},
		{"90 gün gecikmiş", day(2025, time.December, 15), Bucket61To90},
		{"91 gün gecikmiş", day(2025, time.December, 14), BucketOver90},
		{"bir yıl gecikmiş", day(2025, time.March, 15), BucketOver90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, AgingBucketFor(tt.dueDate, asOf))
		})
	}
}

func TestAgingBucketForIgnoresTimeOfDay(t *testing.T) {
	// Vade 23:59'da, referans 00:01'de olsa bile gün bazında hesaplanmalı
	due := time.Date(2026, time.March, 14, 23, 59, 0, 0, time.UTC)
	asOf := time.Date(2026, time.March, 15, 0, 1, 0, 0, time.UTC)

	require.Equal(t, Bucket1To30, AgingBucketFor(due, asOf))
}

func TestAgingRowAddAmount(t *testing.T) {
	row := AgingRow{ClientID: 1, ClientName: "Moda Tekstil"}

	row.AddAmount(BucketCurrent, 100)
	row.AddAmount(Bucket1To30, 250.50)
	row.AddAmount(BucketOver90, 49.50)
	row.AddAmount(Bucket1To30, 100)

	require.Equal(t, 100.0, row.Current)
	require.Equal(t, 350.50, row.Days1To30)
	require.Equal(t, 0.0, row.Days31To60)
	require.Equal(t, 0.0, row.Days61To90)
	require.Equal(t, 49.50, row.DaysOver90)
	require.Equal(t, 500.0, row.Total)
}
