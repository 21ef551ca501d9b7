package orders

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

type CreateOrderRequest struct {
	PONumber           string  `json:"po_number"`
	ClientID           uint    `json:"client_id"`
	RouteTemplateID    *uint   `json:"route_template_id"`
	ProductType        string  `json:"product_type"`
	TotalQty           int     `json:"total_qty"`
	UnitPrice          float64 `json:"unit_price"`
	TargetDeliveryDate string  `json:"target_delivery_date"` // "2026-03-15"
	Note               string  `json:"note"`
}

type UpdateOrderRequest struct {
	RouteTemplateID    *uint    `json:"route_template_id"`
	ProductType        *string  `json:"product_type"`
	TotalQty           *int     `json:"total_qty"`
	UnitPrice          *float64 `json:"unit_price"`
	TargetDeliveryDate *string  `json:"target_delivery_date"`
	Note               *string  `json:"note"`
}

type OrderResponse struct {
	ID                 uint    `json:"id"`
	PONumber           string  `json:"po_number"`
	ClientID           uint    `json:"client_id"`
	ClientName         string  `json:"client_name,omitempty"`
	RouteTemplateID    *uint   `json:"route_template_id"`
	ProductType        string  `json:"product_type"`
	TotalQty           int     `json:"total_qty"`
	UnitPrice          float64 `json:"unit_price"`
	TotalValue         float64 `json:"total_value"`
	TargetDeliveryDate string  `json:"target_delivery_date"`
	ActualDeliveryDate string  `json:"actual_delivery_date,omitempty"`
	Status             string  `json:"status"`
	Note               string  `json:"note"`
	CreatedAt          string  `json:"created_at"`
}

// POST /api/orders
func CreateOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.PONumber = strings.TrimSpace(body.PONumber)
		if body.PONumber == "" {
			return fiber.NewError(fiber.StatusBadRequest, "po_number zorunlu")
		}
		if body.ProductType == "" {
			return fiber.NewError(fiber.StatusBadRequest, "product_type zorunlu")
		}
		if body.TotalQty <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "total_qty 0'dan büyük olmalı")
		}
		if body.UnitPrice < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "unit_price negatif olamaz")
		}

		var client models.Client
		if err := database.DB.First(&client, body.ClientID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Müşteri bulunamadı")
		}

		if body.RouteTemplateID != nil {
			var tpl models.RouteTemplate
			if err := database.DB.First(&tpl, *body.RouteTemplateID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Rota şablonu bulunamadı")
			}
		}

		targetDate, err := time.Parse("2006-01-02", body.TargetDeliveryDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "target_delivery_date formatı 'YYYY-MM-DD' olmalı")
		}

		var count int64
		database.DB.Model(&models.Order{}).Where("po_number = ?", body.PONumber).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Bu po_number ile kayıtlı sipariş var")
		}

		order := models.Order{
			PONumber:           body.PONumber,
			ClientID:           body.ClientID,
			RouteTemplateID:    body.RouteTemplateID,
			ProductType:        body.ProductType,
			TotalQty:           body.TotalQty,
			UnitPrice:          body.UnitPrice,
			TotalValue:         float64(body.TotalQty) * body.UnitPrice,
			TargetDeliveryDate: targetDate,
			Status:             models.OrderStatusDraft,
			Note:               body.Note,
		}

		if err := database.DB.Create(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş oluşturulamadı")
		}

		userID, userName, err := auth.GetUserInfo(c)
		if err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "order",
				EntityID:    order.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Sipariş eklendi: %s, %d adet %s", order.PONumber, order.TotalQty, order.ProductType),
				Before:      nil,
				After:       order,
			})
		}

		order.Client = client
		return c.Status(fiber.StatusCreated).JSON(buildOrderResponse(&order))
	}
}

// GET /api/orders?status=in_production&client_id=3
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Preload("Client").Model(&models.Order{})

		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}
		if clientIDStr := c.Query("client_id"); clientIDStr != "" {
			var cid uint
			if _, err := fmt.Sscan(clientIDStr, &cid); err == nil && cid > 0 {
				dbq = dbq.Where("client_id = ?", cid)
			}
		}

		var orderList []models.Order
		if err := dbq.Order("created_at DESC").Find(&orderList).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Siparişler listelenemedi")
		}

		resp := make([]OrderResponse, 0, len(orderList))
		for i := range orderList {
			resp = append(resp, buildOrderResponse(&orderList[i]))
		}

		return c.JSON(resp)
	}
}

// GET /api/orders/:id
func GetOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var order models.Order
		if err := database.DB.Preload("Client").First(&order, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		return c.JSON(buildOrderResponse(&order))
	}
}

// PUT /api/orders/:id
// Sadece taslak ve onaylanmış siparişler düzenlenebilir
func UpdateOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var order models.Order
		if err := database.DB.First(&order, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		if order.Status != models.OrderStatusDraft && order.Status != models.OrderStatusConfirmed {
			return fiber.NewError(fiber.StatusBadRequest, "Üretime girmiş sipariş düzenlenemez")
		}

		var body UpdateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		before := order

		if body.RouteTemplateID != nil {
			var tpl models.RouteTemplate
			if err := database.DB.First(&tpl, *body.RouteTemplateID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Rota şablonu bulunamadı")
			}
			order.RouteTemplateID = body.RouteTemplateID
		}
		if body.ProductType != nil {
			order.ProductType = *body.ProductType
		}
		if body.TotalQty != nil {
			if *body.TotalQty <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "total_qty 0'dan büyük olmalı")
			}
			order.TotalQty = *body.TotalQty
		}
		if body.UnitPrice != nil {
			if *body.UnitPrice < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "unit_price negatif olamaz")
			}
			order.UnitPrice = *body.UnitPrice
		}
		if body.TargetDeliveryDate != nil {
			d, err := time.Parse("2006-01-02", *body.TargetDeliveryDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "target_delivery_date formatı 'YYYY-MM-DD' olmalı")
			}
			order.TargetDeliveryDate = d
		}
		if body.Note != nil {
			order.Note = *body.Note
		}

		order.TotalValue = float64(order.TotalQty) * order.UnitPrice

		if err := database.DB.Save(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş güncellenemedi")
		}

		userID, userName, err := auth.GetUserInfo(c)
		if err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "order",
				EntityID:    order.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Sipariş güncellendi: %s", order.PONumber),
				Before:      before,
				After:       order,
			})
		}

		return c.JSON(buildOrderResponse(&order))
	}
}

// POST /api/orders/:id/status
// İleri yönlü durum geçişleri: draft -> confirmed -> in_production -> completed
// İptal, tamamlanmamış her durumdan yapılabilir
func UpdateOrderStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Status models.OrderStatus `json:"status"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var order models.Order
		if err := database.DB.First(&order, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		before := order

		switch body.Status {
		case models.OrderStatusConfirmed:
			if order.Status != models.OrderStatusDraft {
				return fiber.NewError(fiber.StatusBadRequest, "Sadece taslak sipariş onaylanabilir")
			}
			if order.RouteTemplateID == nil {
				return fiber.NewError(fiber.StatusBadRequest, "Onay için siparişe rota şablonu atanmalı")
			}

		case models.OrderStatusCompleted:
			if order.Status != models.OrderStatusInProduction {
				return fiber.NewError(fiber.StatusBadRequest, "Sadece üretimdeki sipariş tamamlanabilir")
			}
			// Açık bohçası olan sipariş tamamlanamaz
			var openCount int64
			database.DB.Model(&models.Bundle{}).
				Where("order_id = ? AND status IN ?", order.ID,
					[]models.BundleStatus{models.BundleStatusCreated, models.BundleStatusInProgress}).
				Count(&openCount)
			if openCount > 0 {
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("Tamamlanmamış %d bohça var, sipariş kapatılamaz", openCount))
			}
			now := time.Now()
			order.ActualDeliveryDate = &now

		case models.OrderStatusCancelled:
			if order.Status == models.OrderStatusCompleted {
				return fiber.NewError(fiber.StatusBadRequest, "Tamamlanmış sipariş iptal edilemez")
			}

		default:
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz durum geçişi")
		}

		order.Status = body.Status
		if err := database.DB.Save(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş güncellenemedi")
		}

		userID, userName, err := auth.GetUserInfo(c)
		if err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "order",
				EntityID:    order.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Sipariş durumu: %s -> %s (%s)", before.Status, order.Status, order.PONumber),
				Before:      before,
				After:       order,
			})
		}

		return c.JSON(buildOrderResponse(&order))
	}
}

// DELETE /api/orders/:id
// Sadece taslak sipariş silinebilir
func DeleteOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var order models.Order
		if err := database.DB.First(&order, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		if order.Status != models.OrderStatusDraft {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece taslak sipariş silinebilir")
		}

		if err := database.DB.Delete(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş silinemedi")
		}

		userID, userName, err := auth.GetUserInfo(c)
		if err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "order",
				EntityID:    order.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Sipariş silindi: %s", order.PONumber),
				Before:      nil,
				After:       order,
			})
		}

		return c.JSON(fiber.Map{"message": "Sipariş silindi"})
	}
}

func buildOrderResponse(order *models.Order) OrderResponse {
	resp := OrderResponse{
		ID:                 order.ID,
		PONumber:           order.PONumber,
		ClientID:           order.ClientID,
		ClientName:         order.Client.Name,
		RouteTemplateID:    order.RouteTemplateID,
		ProductType:        order.ProductType,
		TotalQty:           order.TotalQty,
		UnitPrice:          order.UnitPrice,
		TotalValue:         order.TotalValue,
		TargetDeliveryDate: order.TargetDeliveryDate.Format("2006-01-02"),
		Status:             string(order.Status),
		Note:               order.Note,
		CreatedAt:          order.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if order.ActualDeliveryDate != nil {
		resp.ActualDeliveryDate = order.ActualDeliveryDate.Format("2006-01-02")
	}
	return resp
}
