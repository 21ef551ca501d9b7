package inventory

import (
	"fmt"
	"strings"

	"konfeksiyon-backend/internal/audit"
	"konfeksiyon-backend/internal/auth"
	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type MaterialRequest struct {
	Name      string `json:"name"`
	StockCode string `json:"stock_code"`
	Unit      string `json:"unit"`
}

type MaterialResponse struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	StockCode    string  `json:"stock_code,omitempty"`
	Unit         string  `json:"unit"`
	CurrentStock float64 `json:"current_stock"`
}

// currentStock: giriş - çıkış toplamı. Negatif olabilir (sayım farkı), rapor
// tarafında görünür olsun diye sıfıra kıstırmıyoruz.
func currentStock(materialID uint) (float64, error) {
	var in, out float64
	if err := database.DB.Model(&models.MaterialStockEntry{}).
		Where("material_id = ? AND type = ?", materialID, models.StockEntryIn).
		Select("COALESCE(SUM(quantity), 0)").Scan(&in).Error; err != nil {
		return 0, err
	}
	if err := database.DB.Model(&models.MaterialStockEntry{}).
		Where("material_id = ? AND type = ?", materialID, models.StockEntryOut).
		Select("COALESCE(SUM(quantity), 0)").Scan(&out).Error; err != nil {
		return 0, err
	}
	return in - out, nil
}

// POST /api/materials
func CreateMaterialHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body MaterialRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Malzeme adı boş olamaz")
		}
		if strings.TrimSpace(body.Unit) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Birim boş olamaz (metre, kg, adet, top)")
		}

		var existing models.Material
		if err := database.DB.Where("name = ?", body.Name).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bu malzeme adı zaten kayıtlı")
		}

		material := models.Material{
			Name:      body.Name,
			StockCode: body.StockCode,
			Unit:      body.Unit,
		}

		if err := database.DB.Create(&material).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Malzeme oluşturulamadı")
		}

		if userID, userName, err := auth.GetUserInfo(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "material",
				EntityID:    material.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Malzeme eklendi: %s (%s)", material.Name, material.Unit),
				Before:      nil,
				After:       material,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(MaterialResponse{
			ID:        material.ID,
			Name:      material.Name,
			StockCode: material.StockCode,
			Unit:      material.Unit,
		})
	}
}

// GET /api/materials
func ListMaterialsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var materials []models.Material
		if err := database.DB.Order("name ASC").Find(&materials).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Malzemeler listelenemedi")
		}

		resp := make([]MaterialResponse, 0, len(materials))
		for _, m := range materials {
			stock, err := currentStock(m.ID)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Stok hesaplanamadı")
			}
			resp = append(resp, MaterialResponse{
				ID:           m.ID,
				Name:         m.Name,
				StockCode:    m.StockCode,
				Unit:         m.Unit,
				CurrentStock: stock,
			})
		}

		return c.JSON(resp)
	}
}

// PUT /api/materials/:id
func UpdateMaterialHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var material models.Material
		if err := database.DB.First(&material, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Malzeme bulunamadı")
		}

		var body struct {
			Name      *string `json:"name"`
			StockCode *string `json:"stock_code"`
			Unit      *string `json:"unit"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		before := material

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Malzeme adı boş olamaz")
			}
			material.Name = name
		}
		if body.StockCode != nil {
			material.StockCode = *body.StockCode
		}
		if body.Unit != nil {
			if strings.TrimSpace(*body.Unit) == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Birim boş olamaz")
			}
			material.Unit = *body.Unit
		}

		if err := database.DB.Save(&material).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Malzeme güncellenemedi")
		}

		if userID, userName, err := auth.GetUserInfo(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "material",
				EntityID:    material.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Malzeme güncellendi: %s", material.Name),
				Before:      before,
				After:       material,
			})
		}

		return c.JSON(fiber.Map{"message": "Malzeme güncellendi"})
	}
}

// DELETE /api/materials/:id
func DeleteMaterialHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var material models.Material
		if err := database.DB.First(&material, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Malzeme bulunamadı")
		}

		var entryCount int64
		database.DB.Model(&models.MaterialStockEntry{}).Where("material_id = ?", material.ID).Count(&entryCount)
		if entryCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Stok hareketi olan malzeme silinemez")
		}

		if err := database.DB.Delete(&material).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Malzeme silinemedi")
		}

		if userID, userName, err := auth.GetUserInfo(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "material",
				EntityID:    material.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Malzeme silindi: %s", material.Name),
				Before:      nil,
				After:       material,
			})
		}

		return c.JSON(fiber.Map{"message": "Malzeme silindi"})
	}
}
