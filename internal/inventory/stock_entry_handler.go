package inventory

import (
	"fmt"
	"time"

	"konfeksiyon-backend/internal/audit"
	"konfeksiyon-backend/internal/auth"
	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type StockEntryRequest struct {
	MaterialID uint    `json:"material_id"`
	OrderID    *uint   `json:"order_id"` // sadece çıkışlar için anlamlı
	Type       string  `json:"type"`     // "in" / "out"
	Quantity   float64 `json:"quantity"`
	Date       string  `json:"date"` // boşsa bugün
	Note       string  `json:"note"`
}

type StockEntryResponse struct {
	ID           uint    `json:"id"`
	MaterialID   uint    `json:"material_id"`
	MaterialName string  `json:"material_name"`
	Unit         string  `json:"unit"`
	OrderID      *uint   `json:"order_id,omitempty"`
	Type         string  `json:"type"`
	Quantity     float64 `json:"quantity"`
	Date         string  `json:"date"`
	Note         string  `json:"note,omitempty"`
}

// POST /api/stock-entries
func CreateStockEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body StockEntryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		entryType := models.StockEntryType(body.Type)
		if entryType != models.StockEntryIn && entryType != models.StockEntryOut {
			return fiber.NewError(fiber.StatusBadRequest, "Hareket tipi 'in' veya 'out' olmalı")
		}
		if body.Quantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Miktar pozitif olmalı")
		}

		var material models.Material
		if err := database.DB.First(&material, body.MaterialID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Malzeme bulunamadı")
		}

		if body.OrderID != nil {
			if entryType != models.StockEntryOut {
				return fiber.NewError(fiber.StatusBadRequest, "Sipariş bağlantısı sadece çıkış hareketlerinde kullanılır")
			}
			var order models.Order
			if err := database.DB.First(&order, *body.OrderID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
			}
		}

		date := time.Now()
		if body.Date != "" {
			parsed, err := time.Parse("2006-01-02", body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tarih, format: 2006-01-02")
			}
			date = parsed
		}

		entry := models.MaterialStockEntry{
			MaterialID: material.ID,
			OrderID:    body.OrderID,
			Type:       entryType,
			Quantity:   body.Quantity,
			Date:       date,
			Note:       body.Note,
		}

		if err := database.DB.Create(&entry).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok hareketi kaydedilemedi")
		}

		if userID, userName, err := auth.GetUserInfo(c); err == nil {
			direction := "giriş"
			if entryType == models.StockEntryOut {
				direction = "çıkış"
			}
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "stock_entry",
				EntityID:    entry.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Stok %s: %s, %.2f %s", direction, material.Name, entry.Quantity, material.Unit),
				Before:      nil,
				After:       entry,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(buildStockEntryResponse(&entry, &material))
	}
}

// GET /api/stock-entries?material_id=&order_id=&type=
func ListStockEntriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := database.DB.Preload("Material")

		if materialID := c.Query("material_id"); materialID != "" {
			query = query.Where("material_id = ?", materialID)
		}
		if orderID := c.Query("order_id"); orderID != "" {
			query = query.Where("order_id = ?", orderID)
		}
		if entryType := c.Query("type"); entryType != "" {
			query = query.Where("type = ?", entryType)
		}

		var entries []models.MaterialStockEntry
		if err := query.Order("date DESC, id DESC").Find(&entries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok hareketleri listelenemedi")
		}

		resp := make([]StockEntryResponse, 0, len(entries))
		for i := range entries {
			resp = append(resp, buildStockEntryResponse(&entries[i], &entries[i].Material))
		}

		return c.JSON(resp)
	}
}

type MonthlyUsageRow struct {
	MaterialID   uint    `json:"material_id"`
	MaterialName string  `json:"material_name"`
	Unit         string  `json:"unit"`
	TotalIn      float64 `json:"total_in"`
	TotalOut     float64 `json:"total_out"`
}

// GET /api/inventory/usage?year=2026&month=8
// Ay bazında malzeme giriş/çıkış özeti.
func MonthlyUsageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		year := c.QueryInt("year")
		month := c.QueryInt("month")
		if year < 2000 || month < 1 || month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "year ve month parametreleri zorunlu")
		}

		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)

		var entries []models.MaterialStockEntry
		if err := database.DB.
			Preload("Material").
			Where("date >= ? AND date < ?", start, end).
			Find(&entries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanım raporu oluşturulamadı")
		}

		rows := make(map[uint]*MonthlyUsageRow)
		order := make([]uint, 0)
		for i := range entries {
			e := &entries[i]
			row, ok := rows[e.MaterialID]
			if !ok {
				row = &MonthlyUsageRow{
					MaterialID:   e.MaterialID,
					MaterialName: e.Material.Name,
					Unit:         e.Material.Unit,
				}
				rows[e.MaterialID] = row
				order = append(order, e.MaterialID)
			}
			if e.Type == models.StockEntryIn {
				row.TotalIn += e.Quantity
			} else {
				row.TotalOut += e.Quantity
			}
		}

		resp := make([]MonthlyUsageRow, 0, len(rows))
		for _, id := range order {
			resp = append(resp, *rows[id])
		}

		return c.JSON(fiber.Map{
			"period": start.Format("2006-01"),
			"rows":   resp,
		})
	}
}

func buildStockEntryResponse(entry *models.MaterialStockEntry, material *models.Material) StockEntryResponse {
	return StockEntryResponse{
		ID:           entry.ID,
		MaterialID:   entry.MaterialID,
		MaterialName: material.Name,
		Unit:         material.Unit,
		OrderID:      entry.OrderID,
		Type:         string(entry.Type),
		Quantity:     entry.Quantity,
		Date:         entry.Date.Format("2006-01-02"),
		Note:         entry.Note,
	}
}
