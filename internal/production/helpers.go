package production

import (
	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// loadOrderOperations: Siparişin rota şablonundaki tüm dikim operasyonlarını
// adım sırasına göre yükler
func loadOrderOperations(order *models.Order) ([]models.SewingOperation, error) {
	if order.RouteTemplateID == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Siparişe rota şablonu atanmamış")
	}

	var steps []models.RoutingStep
	if err := database.DB.
		Preload("Operations").
		Where("route_template_id = ?", *order.RouteTemplateID).
		Order("sequence ASC").
		Find(&steps).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Rota adımları yüklenemedi")
	}

	var ops []models.SewingOperation
	for _, st := range steps {
		ops = append(ops, st.Operations...)
	}
	return ops, nil
}

// completedNames: Bohça operasyon kayıtlarından tamamlanmış operasyon
// ADLARI kümesini çıkarır (Operation preload edilmiş olmalı)
func completedNames(bundleOps []models.BundleOperation) map[string]bool {
	completed := make(map[string]bool)
	for _, bo := range bundleOps {
		if bo.Status == models.BundleOpStatusCompleted {
			completed[bo.Operation.Name] = true
		}
	}
	return completed
}

// ProgressForBundle: Dış paketler için (müşteri portalı, dashboard) bohça
// ilerlemesi. Operasyonları preload edilmemiş bohçayı da kabul eder.
func ProgressForBundle(bundle *models.Bundle) (BundleProgress, error) {
	if len(bundle.Operations) == 0 {
		if err := database.DB.
			Preload("Operation").
			Where("bundle_id = ?", bundle.ID).
			Find(&bundle.Operations).Error; err != nil {
			return BundleProgress{}, fiber.NewError(fiber.StatusInternalServerError, "Bohça operasyonları yüklenemedi")
		}
	}
	return calculateForBundle(bundle)
}

// calculateForBundle: Bohçayı yükleyip ilerlemesini hesaplar.
// Bohça operasyonları Operation preload'u ile yüklenmiş olmalı.
func calculateForBundle(bundle *models.Bundle) (BundleProgress, error) {
	var order models.Order
	if err := database.DB.First(&order, bundle.OrderID).Error; err != nil {
		return BundleProgress{}, fiber.NewError(fiber.StatusInternalServerError, "Sipariş yüklenemedi")
	}

	ops, err := loadOrderOperations(&order)
	if err != nil {
		return BundleProgress{}, err
	}

	return CalculateBundleProgress(operationSpecs(ops), completedNames(bundle.Operations)), nil
}
