package finance

import (
	"fmt"
	"time"

	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/finance/aging/export
// Yaşlandırma raporunu XLSX olarak indirir.
func ExportAgingHandler() fiber.Handler {
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
		order := make([]uint, 0) // map sırası rastgele, ekleme sırasını koru

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

		f := excelize.NewFile()
		defer f.Close()

		sheet := "Yaslandirma"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{"Müşteri", "Vadesi Gelmemiş", "1-30 Gün", "31-60 Gün", "61-90 Gün", "90+ Gün", "Toplam"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		rowIdx := 2
		var grandTotal float64
		for _, clientID := range order {
			row := rows[clientID]
			values := []any{row.ClientName, row.Current, row.Days1To30, row.Days31To60, row.Days61To90, row.DaysOver90, row.Total}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, rowIdx)
				f.SetCellValue(sheet, cell, v)
			}
			grandTotal += row.Total
			rowIdx++
		}

		cell, _ := excelize.CoordinatesToCellName(1, rowIdx)
		f.SetCellValue(sheet, cell, "GENEL TOPLAM")
		cell, _ = excelize.CoordinatesToCellName(7, rowIdx)
		f.SetCellValue(sheet, cell, grandTotal)

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı")
		}

		filename := fmt.Sprintf("yaslandirma_%s.xlsx", now.Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
		return c.Send(buf.Bytes())
	}
}
