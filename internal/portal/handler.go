package portal

import (
	"konfeksiyon-backend/internal/auth"
	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"
	"konfeksiyon-backend/internal/production"

	"github.com/gofiber/fiber/v2"
)

// resolveClientID: Portal kullanıcısının bağlı olduğu müşteriyi çözer.
// client rolündeki her kullanıcıda client_id olmak zorunda.
func resolveClientID(c *fiber.Ctx) (uint, error) {
	val := c.Locals(auth.CtxClientIDKey)
	ptr, ok := val.(*uint)
	if !ok || ptr == nil {
		return 0, fiber.NewError(fiber.StatusForbidden, "Müşteri bilgisi bulunamadı")
	}
	return *ptr, nil
}

type PortalBundleSummary struct {
	BundleNumber     string  `json:"bundle_number"`
	Status           string  `json:"status"`
	Quantity         int     `json:"quantity"`
	ProgressPct      float64 `json:"progress_pct"`
	RemainingMinutes float64 `json:"remaining_minutes"`
}

type PortalOrderResponse struct {
	ID                 uint                  `json:"id"`
	PONumber           string                `json:"po_number"`
	ProductType        string                `json:"product_type"`
	TotalQty           int                   `json:"total_qty"`
	Status             string                `json:"status"`
	TargetDeliveryDate string                `json:"target_delivery_date"`
	ActualDeliveryDate string                `json:"actual_delivery_date,omitempty"`
	ProgressPct        float64               `json:"progress_pct"` // adet ağırlıklı bohça ortalaması
	RemainingMinutes   float64               `json:"remaining_minutes"`
	Bundles            []PortalBundleSummary `json:"bundles,omitempty"`
}

// orderRollup: Sipariş ilerlemesi = bohça ilerlemelerinin adet ağırlıklı
// ortalaması. İptal bohçalar katılmaz. Hiç bohça yoksa %0.
func orderRollup(order *models.Order, withBundles bool) (PortalOrderResponse, error) {
	resp := PortalOrderResponse{
		ID:                 order.ID,
		PONumber:           order.PONumber,
		ProductType:        order.ProductType,
		TotalQty:           order.TotalQty,
		Status:             string(order.Status),
		TargetDeliveryDate: order.TargetDeliveryDate.Format("2006-01-02"),
	}
	if order.ActualDeliveryDate != nil {
		resp.ActualDeliveryDate = order.ActualDeliveryDate.Format("2006-01-02")
	}

	var bundles []models.Bundle
	if err := database.DB.
		Where("order_id = ? AND status <> ?", order.ID, models.BundleStatusCancelled).
		Find(&bundles).Error; err != nil {
		return resp, fiber.NewError(fiber.StatusInternalServerError, "Bohçalar yüklenemedi")
	}

	var weightedPct float64
	var totalQty int
	for i := range bundles {
		b := &bundles[i]
		progress, err := production.ProgressForBundle(b)
		if err != nil {
			return resp, err
		}

		weightedPct += progress.OverallProgressPct * float64(b.CurrentQty)
		totalQty += b.CurrentQty
		resp.RemainingMinutes += progress.EstimatedCompletionTimeMins

		if withBundles {
			resp.Bundles = append(resp.Bundles, PortalBundleSummary{
				BundleNumber:     b.BundleNumber,
				Status:           string(b.Status),
				Quantity:         b.CurrentQty,
				ProgressPct:      progress.OverallProgressPct,
				RemainingMinutes: progress.EstimatedCompletionTimeMins,
			})
		}
	}

	if totalQty > 0 {
		resp.ProgressPct = weightedPct / float64(totalQty)
	}

	return resp, nil
}

// GET /api/portal/orders
// Müşteri sadece kendi siparişlerini görür.
func ListMyOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		clientID, err := resolveClientID(c)
		if err != nil {
			return err
		}

		var orders []models.Order
		if err := database.DB.
			Where("client_id = ?", clientID).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Siparişler listelenemedi")
		}

		resp := make([]PortalOrderResponse, 0, len(orders))
		for i := range orders {
			row, err := orderRollup(&orders[i], false)
			if err != nil {
				return err
			}
			resp = append(resp, row)
		}

		return c.JSON(resp)
	}
}

// GET /api/portal/orders/:id
func GetMyOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		clientID, err := resolveClientID(c)
		if err != nil {
			return err
		}

		var order models.Order
		if err := database.DB.First(&order, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		// Başka müşterinin siparişi de 404 döner, varlığı sızdırma
		if order.ClientID != clientID {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		resp, err := orderRollup(&order, true)
		if err != nil {
			return err
		}

		return c.JSON(resp)
	}
}
