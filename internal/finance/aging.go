package finance

import "time"

// AgingBucket: Vade yaşlandırma kovası
type AgingBucket string

const (
	BucketCurrent AgingBucket = "current" // vadesi gelmemiş
	Bucket1To30   AgingBucket = "1_30"
	Bucket31To60  AgingBucket = "31_60"
	Bucket61To90  AgingBucket = "61_90"
	BucketOver90  AgingBucket = "over_90"
)

// AgingBucketFor: Vade tarihine göre kovayı belirler. Referans gün bazında
// hesaplanır; saat farkları yok sayılır. Vade günü henüz geçmemişse current.
func AgingBucketFor(dueDate, asOf time.Time) AgingBucket {
	due := time.Date(dueDate.Year(), dueDate.Month(), dueDate.Day(), 0, 0, 0, 0, time.UTC)
	ref := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)

	daysOverdue := int(ref.Sub(due).Hours() / 24)

	switch {
	case daysOverdue <= 0:
		return BucketCurrent
	case daysOverdue <= 30:
		return Bucket1To30
	case daysOverdue <= 60:
		return Bucket31To60
	case daysOverdue <= 90:
		return Bucket61To90
	default:
		return BucketOver90
	}
}

// AgingRow: Müşteri bazında yaşlandırma satırı
type AgingRow struct {
	ClientID   uint    `json:"client_id"`
	ClientName string  `json:"client_name"`
	Current    float64 `json:"current"`
	Days1To30  float64 `json:"days_1_30"`
	Days31To60 float64 `json:"days_31_60"`
	Days61To90 float64 `json:"days_61_90"`
	DaysOver90 float64 `json:"days_over_90"`
	Total      float64 `json:"total"`
}

// AddAmount: Verilen kovaya tutarı ekler, toplamı günceller.
func (r *AgingRow) AddAmount(bucket AgingBucket, amount float64) {
	switch bucket {
	case BucketCurrent:
		r.Current += amount
	case Bucket1To30:
		r.Days1To30 += amount
	case Bucket31To60:
		r.Days31To60 += amount
	case Bucket61To90:
		r.Days61To90 += amount
	case BucketOver90:
		r.DaysOver90 += amount
	}
	r.Total += amount
}
