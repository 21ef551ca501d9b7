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

type StartOperationRequest struct {
	EmployeeID *uint `json:"employee_id"`
}

type CompleteOperationRequest struct {
	EmployeeID *uint `json:"employee_id"`
}

// parseOpID: path parametresindeki operasyon ID'sini sayıya çevirir.
// Karşılaştırma sayısal yapılır, "05" gibi girişler de eşleşir.
func parseOpID(s string) (uint, error) {
	var id uint
	if _, err := fmt.Sscan(s, &id); err != nil || id == 0 {
		return 0, fmt.Errorf("geçersiz operasyon ID: %s", s)
	}
	return id, nil
}

// loadBundleOperation: Bohça + ilgili operasyon kaydını yükler
func loadBundleOperation(c *fiber.Ctx) (*models.Bundle, *models.BundleOperation, error) {
	bundleID := c.Params("id")

	opID, err := parseOpID(c.Params("opId"))
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "Geçersiz operasyon ID")
	}

	var bundle models.Bundle
	if err := database.DB.Preload("Operations.Operation").First(&bundle, "id = ?", bundleID).Error; err != nil {
		return nil, nil, fiber.NewError(fiber.StatusNotFound, "Bohça bulunamadı")
	}

	if bundle.Status == models.BundleStatusCancelled {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "İptal edilmiş bohçada işlem yapılamaz")
	}

	var target *models.BundleOperation
	for i := range bundle.Operations {
		if bundle.Operations[i].ID == opID {
			target = &bundle.Operations[i]
			break
		}
	}
	if target == nil {
		return nil, nil, fiber.NewError(fiber.StatusNotFound, "Operasyon kaydı bulunamadı")
	}

	return &bundle, target, nil
}

// POST /api/bundles/:id/operations/:opId/start
// Operasyonu başlatır. Bağımlılıkları bitmemiş operasyon başlatılamaz.
func StartOperationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body StartOperationRequest
		_ = c.BodyParser(&body) // gövde opsiyonel

		bundle, bundleOp, err := loadBundleOperation(c)
		if err != nil {
			return err
		}

		if bundleOp.Status != models.BundleOpStatusPending {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece bekleyen operasyon başlatılabilir")
		}

		progress, err := calculateForBundle(bundle)
		if err != nil {
			return err
		}

		available := false
		for _, name := range progress.NextAvailableOperations {
			if name == bundleOp.Operation.Name {
				available = true
				break
			}
		}
		if !available {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Operasyon başlatılamaz, bağımlılıkları tamamlanmamış: %s", bundleOp.Operation.DependsOn))
		}

		if body.EmployeeID != nil {
			var employee models.Employee
			if err := database.DB.First(&employee, *body.EmployeeID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Çalışan bulunamadı")
			}
			bundleOp.EmployeeID = body.EmployeeID
		}

		now := time.Now()
		bundleOp.Status = models.BundleOpStatusInProgress
		bundleOp.StartedAt = &now
		if err := database.DB.Save(bundleOp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Operasyon güncellenemedi")
		}

		// İlk operasyon başladığında bohça da üretime geçer
		if bundle.Status == models.BundleStatusCreated {
			bundle.Status = models.BundleStatusInProgress
			bundle.StartedAt = &now
			if err := database.DB.Save(bundle).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Bohça güncellenemedi")
			}
		}

		userID, userName, err := auth.GetUserInfo(c)
		if err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "bundle_operation",
				EntityID:    bundleOp.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Operasyon başlatıldı: %s / %s", bundle.BundleNumber, bundleOp.Operation.Name),
				Before:      nil,
				After:       bundleOp,
			})
		}

		return c.JSON(fiber.Map{
			"message":   "Operasyon başlatıldı",
			"bundle_id": bundle.ID,
			"operation": bundleOp.Operation.Name,
			"status":    bundleOp.Status,
		})
	}
}

// POST /api/bundles/:id/operations/:opId/complete
// Operasyonu tamamlar. Bekleyen operasyon, bağımlılıkları bitmişse doğrudan
// da tamamlanabilir (operatörler her zaman start'a basmıyor). Geri alma yok.
func CompleteOperationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CompleteOperationRequest
		_ = c.BodyParser(&body)

		bundle, bundleOp, err := loadBundleOperation(c)
		if err != nil {
			return err
		}

		if bundleOp.Status == models.BundleOpStatusCompleted {
			return fiber.NewError(fiber.StatusBadRequest, "Operasyon zaten tamamlanmış")
		}

		progress, err := calculateForBundle(bundle)
		if err != nil {
			return err
		}

		// Bekleyen operasyon ancak "başlanabilir" durumdaysa tamamlanabilir;
		// devam eden operasyon zaten bağımlılık kontrolünden geçmiştir
		if bundleOp.Status == models.BundleOpStatusPending {
			available := false
			for _, name := range progress.NextAvailableOperations {
				if name == bundleOp.Operation.Name {
					available = true
					break
				}
			}
			if !available {
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("Operasyon tamamlanamaz, bağımlılıkları tamamlanmamış: %s", bundleOp.Operation.DependsOn))
			}
		}

		if body.EmployeeID != nil {
			var employee models.Employee
			if err := database.DB.First(&employee, *body.EmployeeID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Çalışan bulunamadı")
			}
			bundleOp.EmployeeID = body.EmployeeID
		}

		now := time.Now()
		if bundleOp.StartedAt == nil {
			bundleOp.StartedAt = &now
		}
		bundleOp.Status = models.BundleOpStatusCompleted
		bundleOp.CompletedAt = &now
		if err := database.DB.Save(bundleOp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Operasyon güncellenemedi")
		}

		// Tüm operasyonlar bitti mi?
		allDone := true
		for i := range bundle.Operations {
			if bundle.Operations[i].ID == bundleOp.ID {
				continue
			}
			if bundle.Operations[i].Status != models.BundleOpStatusCompleted {
				allDone = false
				break
			}
		}

		if allDone {
			bundle.Status = models.BundleStatusCompleted
			bundle.CompletedAt = &now
		} else if bundle.Status == models.BundleStatusCreated {
			bundle.Status = models.BundleStatusInProgress
			bundle.StartedAt = &now
		}
		if err := database.DB.Save(bundle).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bohça güncellenemedi")
		}

		userID, userName, err := auth.GetUserInfo(c)
		if err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "bundle_operation",
				EntityID:    bundleOp.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Operasyon tamamlandı: %s / %s", bundle.BundleNumber, bundleOp.Operation.Name),
				Before:      nil,
				After:       bundleOp,
			})
		}

		resp := fiber.Map{
			"message":   "Operasyon tamamlandı",
			"bundle_id": bundle.ID,
			"operation": bundleOp.Operation.Name,
			"status":    bundleOp.Status,
		}
		if allDone {
			resp["bundle_completed"] = true
		}

		return c.JSON(resp)
	}
}
