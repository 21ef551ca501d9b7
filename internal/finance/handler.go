package finance

import (
	"fmt"
	"strings"
	"time"

	"konfeksiyon-backend/internal/audit"
	"konfeksiyon-backend/internal/auth"
	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateInvoiceRequest struct {
	OrderID       uint    `json:"order_id"`
	InvoiceNumber string  `json:"invoice_number"`
	Amount        float64 `json:"amount"`
	IssueDate     string  `json:"issue_date"` // "2006-01-02"
	DueDate       string  `json:"due_date"`   // "2006-01-02"
	Note          string  `json:"note"`
}

type PaymentRequest struct {
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"payment_date"` // boşsa bugün
	Method      string  `json:"method"`
	Description string  `json:"description"`
}

type PaymentResponse struct {
	ID          uint    `json:"id"`
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"payment_date"`
	Method      string  `json:"method"`
	Description string  `json:"description"`
}

type InvoiceResponse struct {
	ID            uint              `json:"id"`
	OrderID       uint              `json:"order_id"`
	PONumber      string            `json:"po_number,omitempty"`
	ClientName    string            `json:"client_name,omitempty"`
	InvoiceNumber string            `json:"invoice_number"`
	Amount        float64           `json:"amount"`
	PaidAmount    float64           `json:"paid_amount"`
	Balance       float64           `json:"balance"`
	IssueDate     string            `json:"issue_date"`
	DueDate       string            `json:"due_date"`
	Status        string            `json:"status"`
	AgingBucket   string            `json:"aging_bucket"`
	Note          string            `json:"note,omitempty"`
	Payments      []PaymentResponse `json:"payments,omitempty"`
}

func paidAmount(inv *models.Invoice) float64 {
	var total float64
	for _, p := range inv.Payments {
		total += p.Amount
	}
	return total
}

func buildInvoiceResponse(inv *models.Invoice, withPayments bool) InvoiceResponse {
	paid := paidAmount(inv)
	resp := InvoiceResponse{
		ID:            inv.ID,
		OrderID:       inv.OrderID,
		InvoiceNumber: inv.InvoiceNumber,
		Amount:        inv.Amount,
		PaidAmount:    paid,
		Balance:       inv.Amount - paid,
		IssueDate:     inv.IssueDate.Format("2006-01-02"),
		DueDate:       inv.DueDate.Format("2006-01-02"),
		Status:        string(inv.Status),
		AgingBucket:   string(AgingBucketFor(inv.DueDate, time.Now())),
		Note:          inv.Note,
	}

	if inv.Order.ID != 0 {
		resp.PONumber = inv.Order.PONumber
		if inv.Order.Client.ID != 0 {
			resp.ClientName = inv.Order.Client.Name
		}
	}

	if withPayments {
		resp.Payments = make([]PaymentResponse, 0, len(inv.Payments))
		for _, p := range inv.Payments {
			resp.Payments = append(resp.Payments, PaymentResponse{
				ID:          p.ID,
				Amount:      p.Amount,
				PaymentDate: p.PaymentDate.Format("2006-01-02"),
				Method:      p.Method,
				Description: p.Description,
			})
		}
	}

	return resp
}

// POST /api/invoices
func CreateInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateInvoiceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.InvoiceNumber = strings.TrimSpace(body.InvoiceNumber)
		if body.InvoiceNumber == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Fatura numarası boş olamaz")
		}
		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Fatura tutarı pozitif olmalı")
		}

		var order models.Order
		if err := database.DB.First(&order, body.OrderID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}
		if order.Status == models.OrderStatusDraft || order.Status == models.OrderStatusCancelled {
			return fiber.NewError(fiber.StatusBadRequest, "Taslak veya iptal edilmiş siparişe fatura kesilemez")
		}

		issueDate, err := time.Parse("2006-01-02", body.IssueDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz fatura tarihi, format: 2006-01-02")
		}
		dueDate, err := time.Parse("2006-01-02", body.DueDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz vade tarihi, format: 2006-01-02")
		}
		if dueDate.Before(issueDate) {
			return fiber.NewError(fiber.StatusBadRequest, "Vade tarihi fatura tarihinden önce olamaz")
		}

		var existing models.Invoice
		if err := database.DB.Where("invoice_number = ?", body.InvoiceNumber).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bu fatura numarası zaten kayıtlı")
		}

		invoice := models.Invoice{
			OrderID:       order.ID,
			InvoiceNumber: body.InvoiceNumber,
			Amount:        body.Amount,
			IssueDate:     issueDate,
			DueDate:       dueDate,
			Status:        models.InvoiceStatusOpen,
			Note:          body.Note,
		}

		if err := database.DB.Create(&invoice).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fatura oluşturulamadı")
		}

		if userID, userName, err := auth.GetUserInfo(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "invoice",
				EntityID:    invoice.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Fatura kesildi: %s, %.2f TL (%s)", invoice.InvoiceNumber, invoice.Amount, order.PONumber),
				Before:      nil,
				After:       invoice,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(buildInvoiceResponse(&invoice, false))
	}
}

// GET /api/invoices?status=&client_id=
func ListInvoicesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Preload("Order").Preload("Order.Client").Preload("Payments")

		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if clientID := c.Query("client_id"); clientID != "" {
			query = query.Joins("JOIN orders ON orders.id = invoices.order_id").
				Where("orders.client_id = ?", clientID)
		}

		var invoices []models.Invoice
		if err := query.Order("due_date ASC").Find(&invoices).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Faturalar listelenemedi")
		}

		resp := make([]InvoiceResponse, 0, len(invoices))
		for i := range invoices {
			resp = append(resp, buildInvoiceResponse(&invoices[i], false))
		}

		return c.JSON(resp)
	}
}

// GET /api/invoices/:id
func GetInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var invoice models.Invoice
		if err := database.DB.
			Preload("Order").Preload("Order.Client").Preload("Payments").
			First(&invoice, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Fatura bulunamadı")
		}

		return c.JSON(buildInvoiceResponse(&invoice, true))
	}
}

// POST /api/invoices/:id/payments
func CreatePaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var invoice models.Invoice
		if err := database.DB.Preload("Payments").First(&invoice, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Fatura bulunamadı")
		}

		if invoice.Status == models.InvoiceStatusCancelled {
			return fiber.NewError(fiber.StatusBadRequest, "İptal edilmiş faturaya tahsilat girilemez")
		}
		if invoice.Status == models.InvoiceStatusPaid {
			return fiber.NewError(fiber.StatusBadRequest, "Fatura zaten ödenmiş")
		}

		var body PaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Tahsilat tutarı pozitif olmalı")
		}

		balance := invoice.Amount - paidAmount(&invoice)
		if body.Amount > balance {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Tahsilat tutarı kalan bakiyeyi aşamaz (kalan: %.2f TL)", balance))
		}

		paymentDate := time.Now()
		if body.PaymentDate != "" {
			parsed, err := time.Parse("2006-01-02", body.PaymentDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tahsilat tarihi, format: 2006-01-02")
			}
			paymentDate = parsed
		}

		payment := models.Payment{
			InvoiceID:   invoice.ID,
			Amount:      body.Amount,
			PaymentDate: paymentDate,
			Method:      body.Method,
			Description: body.Description,
		}

		if err := database.DB.Create(&payment).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tahsilat kaydedilemedi")
		}

		// Bakiye kapandıysa fatura ödendi
		invoice.Payments = append(invoice.Payments, payment)
		if paidAmount(&invoice) >= invoice.Amount {
			invoice.Status = models.InvoiceStatusPaid
			if err := database.DB.Save(&invoice).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Fatura durumu güncellenemedi")
			}
		}

		if userID, userName, err := auth.GetUserInfo(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "payment",
				EntityID:    payment.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Tahsilat: %.2f TL (%s)", payment.Amount, invoice.InvoiceNumber),
				Before:      nil,
				After:       payment,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(buildInvoiceResponse(&invoice, true))
	}
}

// POST /api/invoices/:id/cancel
func CancelInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var invoice models.Invoice
		if err := database.DB.Preload("Payments").First(&invoice, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Fatura bulunamadı")
		}

		if invoice.Status == models.InvoiceStatusCancelled {
			return fiber.NewError(fiber.StatusBadRequest, "Fatura zaten iptal edilmiş")
		}
		if len(invoice.Payments) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Tahsilatı olan fatura iptal edilemez")
		}

		before := invoice
		invoice.Status = models.InvoiceStatusCancelled
		if err := database.DB.Save(&invoice).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fatura iptal edilemedi")
		}

		if userID, userName, err := auth.GetUserInfo(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "invoice",
				EntityID:    invoice.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Fatura iptal edildi: %s", invoice.InvoiceNumber),
				Before:      before,
				After:       invoice,
			})
		}

		return c.JSON(buildInvoiceResponse(&invoice, false))
	}
}

// GET /api/finance/aging
// Müşteri bazında alacak yaşlandırma. Sadece açık/gecikmiş faturaların
// ödenmemiş bakiyesi kovalanır.
func AgingReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var invoices []models.Invoice
		if err := database.DB.
			Preload("Order").Preload("Order.Client").Preload("Payments").
			Where("status IN ?", []models.InvoiceStatus{models.InvoiceStatusOpen, models.InvoiceStatusOverdue}).
			Find(&invoices).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Yaşlandırma raporu oluşturulamadı")
		}

		now := time.Now()
		rows := make(map[uint]*AgingRow)
		var order []uint // map sırası belirsiz, ekleme sırasını koru

		for i := range invoices {
			inv := &invoices[i]
			balance := inv.Amount - paidAmount(inv)
			if balance <= 0 {
				continue
			}

			clientID := inv.Order.ClientID
			row, ok := rows[clientID]
			if !ok {
				row = &AgingRow{ClientID: clientID, ClientName: inv.Order.Client.Name}
				rows[clientID] = row
				order = append(order, clientID)
			}
			row.AddAmount(AgingBucketFor(inv.DueDate, now), balance)
		}

		resp := make([]AgingRow, 0, len(rows))
		var grandTotal float64
		for _, clientID := range order {
			resp = append(resp, *rows[clientID])
			grandTotal += rows[clientID].Total
		}

		return c.JSON(fiber.Map{
			"as_of":       now.Format("2006-01-02"),
			"rows":        resp,
			"grand_total": grandTotal,
		})
	}
}
