package production

import (
	"fmt"
	"time"

	"konfeksiyon-backend/internal/audit"
	"konfeksiyon-backend/internal/auth"
	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateQCInspectionRequest struct {
	InspectorID *uint  `json:"inspector_id"`
	Date        string `json:"date"` // "2025-12-09", boşsa bugün
	PassQty     int    `json:"pass_qty"`
	RejectQty   int    `json:"reject_qty"`
	DefectCode  string `json:"defect_code"`
	Note        string `json:"note"`
}

// POST /api/bundles/:id/qc
// Kalite kontrol kaydı girer; ret adedi bohçanın mevcut adedinden düşülür
func CreateQCInspectionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateQCInspectionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.PassQty < 0 || body.RejectQty < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "pass_qty ve reject_qty negatif olamaz")
		}
		if body.PassQty == 0 && body.RejectQty == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "En az bir adet girilmeli")
		}

		var bundle models.Bundle
		if err := database.DB.First(&bundle, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bohça bulunamadı")
		}

		if bundle.Status == models.BundleStatusCancelled {
			return fiber.NewError(fiber.StatusBadRequest, "İptal edilmiş bohçaya kalite kaydı girilemez")
		}

		if body.RejectQty > bundle.CurrentQty {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Ret adedi mevcut adetten büyük olamaz (mevcut: %d)", bundle.CurrentQty))
		}
		if body.RejectQty > 0 && body.DefectCode == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ret varsa defect_code zorunlu")
		}

		date := time.Now()
		if body.Date != "" {
			d, err := time.Parse("2006-01-02", body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			date = d
		}

		if body.InspectorID != nil {
			var inspector models.Employee
			if err := database.DB.First(&inspector, *body.InspectorID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Kontrolcü bulunamadı")
			}
		}

		inspection := models.QCInspection{
			BundleID:    bundle.ID,
			InspectorID: body.InspectorID,
			Date:        date,
			PassQty:     body.PassQty,
			RejectQty:   body.RejectQty,
			DefectCode:  body.DefectCode,
			Note:        body.Note,
		}

		if err := database.DB.Create(&inspection).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kalite kaydı oluşturulamadı")
		}

		// Ret adedini bohçadan düş
		if body.RejectQty > 0 {
			bundle.CurrentQty -= body.RejectQty
			if err := database.DB.Save(&bundle).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Bohça güncellenemedi")
			}
		}

		userID, userName, err := auth.GetUserInfo(c)
		if err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "qc_inspection",
				EntityID:    inspection.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Kalite kaydı: %s, geçen %d, ret %d", bundle.BundleNumber, body.PassQty, body.RejectQty),
				Before:      nil,
				After:       inspection,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":          inspection.ID,
			"bundle_id":   bundle.ID,
			"pass_qty":    inspection.PassQty,
			"reject_qty":  inspection.RejectQty,
			"defect_code": inspection.DefectCode,
			"current_qty": bundle.CurrentQty,
		})
	}
}

// GET /api/bundles/:id/qc
func ListQCInspectionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var inspections []models.QCInspection
		if err := database.DB.
			Preload("Inspector").
			Where("bundle_id = ?", c.Params("id")).
			Order("date DESC, created_at DESC").
			Find(&inspections).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kalite kayıtları listelenemedi")
		}

		resp := make([]fiber.Map, 0, len(inspections))
		for _, ins := range inspections {
			item := fiber.Map{
				"id":          ins.ID,
				"date":        ins.Date.Format("2006-01-02"),
				"pass_qty":    ins.PassQty,
				"reject_qty":  ins.RejectQty,
				"defect_code": ins.DefectCode,
				"note":        ins.Note,
			}
			if ins.Inspector != nil {
				item["inspector"] = ins.Inspector.Name
			}
			resp = append(resp, item)
		}

		return c.JSON(resp)
	}
}
