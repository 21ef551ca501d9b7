package production

import (
	"fmt"
	"strings"

	"konfeksiyon-backend/internal/audit"
	"konfeksiyon-backend/internal/auth"
	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateBundleRequest struct {
	OrderID   uint   `json:"order_id"`
	TotalQty  int    `json:"total_qty"`
	Color     string `json:"color"`
	SizeLabel string `json:"size_label"`
}

type BundleOperationResponse struct {
	ID              uint    `json:"id"`
	OperationID     uint    `json:"operation_id"`
	Name            string  `json:"name"`
	StandardMinutes float64 `json:"standard_minutes"`
	DependsOn       string  `json:"depends_on"`
	Status          string  `json:"status"`
	EmployeeID      *uint   `json:"employee_id"`
	StartedAt       string  `json:"started_at,omitempty"`
	CompletedAt     string  `json:"completed_at,omitempty"`
}

type BundleResponse struct {
	ID           uint                      `json:"id"`
	OrderID      uint                      `json:"order_id"`
	BundleNumber string                    `json:"bundle_number"`
	TotalQty     int                       `json:"total_qty"`
	CurrentQty   int                       `json:"current_qty"`
	Status       string                    `json:"status"`
	Color        string                    `json:"color"`
	SizeLabel    string                    `json:"size_label"`
	Progress     *BundleProgress           `json:"progress,omitempty"`
	Operations   []BundleOperationResponse `json:"operations,omitempty"`
	CreatedAt    string                    `json:"created_at"`
}

// POST /api/bundles
// Bohça oluşturur; rotadaki her dikim operasyonu için toplu "pending" kayıt açar
func CreateBundleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateBundleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.TotalQty <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "total_qty 0'dan büyük olmalı")
		}

		var order models.Order
		if err := database.DB.First(&order, body.OrderID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Sipariş bulunamadı")
		}

		if order.Status != models.OrderStatusConfirmed && order.Status != models.OrderStatusInProduction {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece onaylanmış veya üretimdeki siparişlere bohça açılabilir")
		}

		ops, err := loadOrderOperations(&order)
		if err != nil {
			return err
		}
		if len(ops) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Rota şablonunda dikim operasyonu tanımlı değil")
		}

		// Bohça numarası: sipariş no + kısa uuid
		bundleNumber := fmt.Sprintf("%s-B%s", order.PONumber, strings.ToUpper(uuid.NewString()[:8]))

		bundle := models.Bundle{
			OrderID:      order.ID,
			BundleNumber: bundleNumber,
			TotalQty:     body.TotalQty,
			CurrentQty:   body.TotalQty,
			Status:       models.BundleStatusCreated,
			Color:        body.Color,
			SizeLabel:    body.SizeLabel,
		}

		// Her operasyon için pending kayıt (cascade ile birlikte yaratılır)
		for _, op := range ops {
			bundle.Operations = append(bundle.Operations, models.BundleOperation{
				OperationID: op.ID,
				Status:      models.BundleOpStatusPending,
			})
		}

		if err := database.DB.Create(&bundle).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bohça oluşturulamadı")
		}

		// Sipariş üretime geçti
		if order.Status == models.OrderStatusConfirmed {
			order.Status = models.OrderStatusInProduction
			if err := database.DB.Save(&order).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Sipariş durumu güncellenemedi")
			}
		}

		// Audit log yaz
		userID, userName, err := auth.GetUserInfo(c)
		if err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "bundle",
				EntityID:    bundle.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Bohça açıldı: %s, %d adet, %d operasyon", bundle.BundleNumber, bundle.TotalQty, len(bundle.Operations)),
				Before:      nil,
				After:       bundle,
			})
		}

		if err := database.DB.Preload("Operations.Operation").First(&bundle, bundle.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bohça yüklenemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(buildBundleResponse(&bundle, true))
	}
}

// GET /api/orders/:id/bundles
func ListBundlesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orderID := c.Params("id")

		var order models.Order
		if err := database.DB.First(&order, "id = ?", orderID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		var bundles []models.Bundle
		if err := database.DB.
			Preload("Operations.Operation").
			Where("order_id = ?", order.ID).
			Order("created_at ASC").
			Find(&bundles).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bohçalar listelenemedi")
		}

		ops, err := loadOrderOperations(&order)
		if err != nil {
			return err
		}
		specs := operationSpecs(ops)

		resp := make([]BundleResponse, 0, len(bundles))
		for i := range bundles {
			b := buildBundleResponse(&bundles[i], false)
			progress := CalculateBundleProgress(specs, completedNames(bundles[i].Operations))
			b.Progress = &progress
			resp = append(resp, b)
		}

		return c.JSON(resp)
	}
}

// GET /api/bundles/:id
// Bohça detayı + hesaplanmış ilerleme
func GetBundleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var bundle models.Bundle
		if err := database.DB.Preload("Operations.Operation").First(&bundle, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bohça bulunamadı")
		}

		progress, err := calculateForBundle(&bundle)
		if err != nil {
			return err
		}

		resp := buildBundleResponse(&bundle, true)
		resp.Progress = &progress

		return c.JSON(resp)
	}
}

// POST /api/bundles/:id/cancel
func CancelBundleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var bundle models.Bundle
		if err := database.DB.First(&bundle, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bohça bulunamadı")
		}

		if bundle.Status == models.BundleStatusCompleted {
			return fiber.NewError(fiber.StatusBadRequest, "Tamamlanmış bohça iptal edilemez")
		}
		if bundle.Status == models.BundleStatusCancelled {
			return fiber.NewError(fiber.StatusBadRequest, "Bohça zaten iptal edilmiş")
		}

		before := bundle
		bundle.Status = models.BundleStatusCancelled
		if err := database.DB.Save(&bundle).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bohça güncellenemedi")
		}

		userID, userName, err := auth.GetUserInfo(c)
		if err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "bundle",
				EntityID:    bundle.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Bohça iptal edildi: %s", bundle.BundleNumber),
				Before:      before,
				After:       bundle,
			})
		}

		return c.JSON(fiber.Map{
			"message":   "Bohça iptal edildi",
			"bundle_id": bundle.ID,
		})
	}
}

func buildBundleResponse(bundle *models.Bundle, withOperations bool) BundleResponse {
	resp := BundleResponse{
		ID:           bundle.ID,
		OrderID:      bundle.OrderID,
		BundleNumber: bundle.BundleNumber,
		TotalQty:     bundle.TotalQty,
		CurrentQty:   bundle.CurrentQty,
		Status:       string(bundle.Status),
		Color:        bundle.Color,
		SizeLabel:    bundle.SizeLabel,
		CreatedAt:    bundle.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	if withOperations {
		resp.Operations = make([]BundleOperationResponse, 0, len(bundle.Operations))
		for _, bo := range bundle.Operations {
			item := BundleOperationResponse{
				ID:              bo.ID,
				OperationID:     bo.OperationID,
				Name:            bo.Operation.Name,
				StandardMinutes: bo.Operation.StandardMinutes,
				DependsOn:       bo.Operation.DependsOn,
				Status:          string(bo.Status),
				EmployeeID:      bo.EmployeeID,
			}
			if bo.StartedAt != nil {
				item.StartedAt = bo.StartedAt.Format("2006-01-02 15:04:05")
			}
			if bo.CompletedAt != nil {
				item.CompletedAt = bo.CompletedAt.Format("2006-01-02 15:04:05")
			}
			resp.Operations = append(resp.Operations, item)
		}
	}

	return resp
}
