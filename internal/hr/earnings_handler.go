package hr

import (
	"time"

	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type EarningsResponse struct {
	EmployeeID   uint            `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	PieceRate    float64         `json:"piece_rate"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	EarningsResult
	Details []CompletedWork `json:"details"`
}

// GET /api/employees/:id/earnings?from=YYYY-MM-DD&to=YYYY-MM-DD
// Parça başı hakediş raporu: dönemde tamamlanan operasyonlardan hesaplanır.
func EmployeeEarningsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var employee models.Employee
		if err := database.DB.First(&employee, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Çalışan bulunamadı")
		}

		fromStr := c.Query("from")
		toStr := c.Query("to")
		if fromStr == "" || toStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "from ve to tarihleri zorunlu (YYYY-MM-DD)")
		}

		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "from tarihi geçersiz")
		}
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "to tarihi geçersiz")
		}
		if to.Before(from) {
			return fiber.NewError(fiber.StatusBadRequest, "to tarihi from tarihinden önce olamaz")
		}
		toEnd := to.AddDate(0, 0, 1)

		var bundleOps []models.BundleOperation
		if err := database.DB.
			Preload("Operation").
			Where("employee_id = ? AND status = ? AND completed_at >= ? AND completed_at < ?",
				employee.ID, models.BundleOpStatusCompleted, from, toEnd).
			Order("completed_at ASC").
			Find(&bundleOps).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hakediş kayıtları alınamadı")
		}

		// Bohça bilgileri (adet ve numara) için tek sorgu
		bundleIDs := make([]uint, 0, len(bundleOps))
		for _, bo := range bundleOps {
			bundleIDs = append(bundleIDs, bo.BundleID)
		}
		bundlesByID := make(map[uint]models.Bundle)
		if len(bundleIDs) > 0 {
			var bundles []models.Bundle
			if err := database.DB.Where("id IN ?", bundleIDs).Find(&bundles).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Bohça bilgileri alınamadı")
			}
			for _, b := range bundles {
				bundlesByID[b.ID] = b
			}
		}

		works := make([]CompletedWork, 0, len(bundleOps))
		for _, bo := range bundleOps {
			bundle := bundlesByID[bo.BundleID]
			work := CompletedWork{
				BundleNumber:    bundle.BundleNumber,
				OperationName:   bo.Operation.Name,
				StandardMinutes: bo.Operation.StandardMinutes,
				Quantity:        bundle.CurrentQty,
			}
			if bo.CompletedAt != nil {
				work.CompletedAt = bo.CompletedAt.Format("2006-01-02 15:04:05")
			}
			works = append(works, work)
		}

		return c.JSON(EarningsResponse{
			EmployeeID:     employee.ID,
			EmployeeName:   employee.Name,
			PieceRate:      employee.PieceRate,
			StartDate:      from.Format("2006-01-02"),
			EndDate:        to.Format("2006-01-02"),
			EarningsResult: CalculateEarnings(works, employee.PieceRate),
			Details:        works,
		})
	}
}
