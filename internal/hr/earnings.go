package hr

// CompletedWork: Bir çalışanın tamamladığı tek operasyon kaydı.
// Dakika ağırlığı operasyonun standart dakikası x bohçadaki güncel adettir;
// reddedilen parçalar için ücret ödenmez.
type CompletedWork struct {
	BundleNumber    string  `json:"bundle_number"`
	OperationName   string  `json:"operation_name"`
	StandardMinutes float64 `json:"standard_minutes"`
	Quantity        int     `json:"quantity"`
	CompletedAt     string  `json:"completed_at"`
}

// EarningsResult: Dönemlik hakediş özeti
type EarningsResult struct {
	TotalMinutes   float64 `json:"total_minutes"`
	TotalEarnings  float64 `json:"total_earnings"`
	OperationCount int     `json:"operation_count"`
}

// CalculateEarnings: Hakediş = toplam (standart dakika x adet) x dakika ücreti
func CalculateEarnings(works []CompletedWork, pieceRate float64) EarningsResult {
	result := EarningsResult{OperationCount: len(works)}
	for _, w := range works {
		result.TotalMinutes += w.StandardMinutes * float64(w.Quantity)
	}
	result.TotalEarnings = result.TotalMinutes * pieceRate
	return result
}
