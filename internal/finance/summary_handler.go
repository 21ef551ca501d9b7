package finance

import (
	"time"

	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type MonthlySummaryResponse struct {
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	InvoicedTotal  float64 `json:"invoiced_total"`  // kesilen fatura toplamı
	CollectedTotal float64 `json:"collected_total"` // tahsilat toplamı
	OpenBalance    float64 `json:"open_balance"`    // açık/gecikmiş faturaların kalan bakiyesi
	OverdueBalance float64 `json:"overdue_balance"` // sadece gecikmiş kısım
	InvoiceCount   int     `json:"invoice_count"`
	PaymentCount   int     `json:"payment_count"`
	OrderValue     float64 `json:"order_value"` // dönemde açılan siparişlerin tutarı
}

// GET /api/finance/summary?from=YYYY-MM-DD&to=YYYY-MM-DD
// Dönem finansal özeti. Açık bakiye dönemden bağımsız, rapor anı itibarıyladır.
func MonthlySummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fromStr := c.Query("from")
		toStr := c.Query("to")
		if fromStr == "" || toStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "from ve to tarihleri zorunlu (YYYY-MM-DD)")
		}

		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "from tarihi geçersiz")
		}
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "to tarihi geçersiz")
		}
		if to.Before(from) {
			return fiber.NewError(fiber.StatusBadRequest, "to tarihi from tarihinden önce olamaz")
		}
		// to gününü dahil et
		toEnd := to.AddDate(0, 0, 1)

		resp := MonthlySummaryResponse{
			StartDate: from.Format("2006-01-02"),
			EndDate:   to.Format("2006-01-02"),
		}

		// Dönemde kesilen faturalar (iptaller hariç)
		var periodInvoices []models.Invoice
		if err := database.DB.
			Where("issue_date >= ? AND issue_date < ? AND status <> ?", from, toEnd, models.InvoiceStatusCancelled).
			Find(&periodInvoices).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fatura özeti alınamadı")
		}
		resp.InvoiceCount = len(periodInvoices)
		for _, inv := range periodInvoices {
			resp.InvoicedTotal += inv.Amount
		}

		// Dönemdeki tahsilatlar
		var periodPayments []models.Payment
		if err := database.DB.
			Where("payment_date >= ? AND payment_date < ?", from, toEnd).
			Find(&periodPayments).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tahsilat özeti alınamadı")
		}
		resp.PaymentCount = len(periodPayments)
		for _, p := range periodPayments {
			resp.CollectedTotal += p.Amount
		}

		// Açık bakiye (tüm açık/gecikmiş faturalar, rapor anı)
		var openInvoices []models.Invoice
		if err := database.DB.
			Preload("Payments").
			Where("status IN ?", []models.InvoiceStatus{models.InvoiceStatusOpen, models.InvoiceStatusOverdue}).
			Find(&openInvoices).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Açık bakiye hesaplanamadı")
		}
		now := time.Now()
		for i := range openInvoices {
			inv := &openInvoices[i]
			balance := inv.Amount - paidAmount(inv)
			if balance <= 0 {
				continue
			}
			resp.OpenBalance += balance
			if AgingBucketFor(inv.DueDate, now) != BucketCurrent {
				resp.OverdueBalance += balance
			}
		}

		// Dönemde açılan siparişlerin tutarı (rapor anında taslak/iptal
		// olmayanlar; onay tarihi ayrıca tutulmuyor)
		var orders []models.Order
		if err := database.DB.
			Where("created_at >= ? AND created_at < ? AND status <> ?", from, toEnd, models.OrderStatusCancelled).
			Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş özeti alınamadı")
		}
		for _, o := range orders {
			if o.Status != models.OrderStatusDraft {
				resp.OrderValue += o.TotalValue
			}
		}

		return c.JSON(resp)
	}
}
