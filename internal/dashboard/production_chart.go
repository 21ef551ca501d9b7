package dashboard

import (
	"sort"
	"time"

	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProductionChartPoint struct {
	Label            string `json:"label"` // tarih
	CompletedBundles int    `json:"completed_bundles"`
	CompletedQty     int    `json:"completed_qty"`
}

type ProductionChartResponse struct {
	From        string                 `json:"from"`
	To          string                 `json:"to"`
	Points      []ProductionChartPoint `json:"points"`
	TotalBundle int                    `json:"total_bundles"`
	TotalQty    int                    `json:"total_qty"`
}

// GET /api/dashboard/production-chart?days=14
// Gün bazında tamamlanan bohça ve adet grafiği.
func ProductionChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		days := c.QueryInt("days", 14)
		if days <= 0 || days > 365 {
			return fiber.NewError(fiber.StatusBadRequest, "days 1-365 arası olmalı")
		}

		now := time.Now()
		loc := now.Location()
		// bugünün 00:00'ı
		end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		start := end.AddDate(0, 0, -(days - 1))

		type row struct {
			Bucket  time.Time `gorm:"column:bucket"`
			Bundles int       `gorm:"column:bundles"`
			Qty     int       `gorm:"column:qty"`
		}
		var rows []row

		sql := `
			SELECT completed_at::date AS bucket,
				   COUNT(*) AS bundles,
				   SUM(current_qty) AS qty
			FROM bundles
			WHERE status = 'completed' AND completed_at >= ?
			GROUP BY bucket
			ORDER BY bucket ASC;
		`

		if err := database.DB.Raw(sql, start).Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Veri toplanırken hata oluştu")
		}

		byDay := make(map[string]row)
		for _, r := range rows {
			byDay[r.Bucket.Format("2006-01-02")] = r
		}

		resp := ProductionChartResponse{
			From:   start.Format("2006-01-02"),
			To:     end.Format("2006-01-02"),
			Points: make([]ProductionChartPoint, 0, days),
		}

		// boş günler 0 ile doldurulur, grafik eksiksiz olsun
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			label := d.Format("2006-01-02")
			r := byDay[label]
			resp.Points = append(resp.Points, ProductionChartPoint{
				Label:            label,
				CompletedBundles: r.Bundles,
				CompletedQty:     r.Qty,
			})
			resp.TotalBundle += r.Bundles
			resp.TotalQty += r.Qty
		}

		return c.JSON(resp)
	}
}

type WIPStatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
	Qty    int    `json:"qty"`
}

type OverviewResponse struct {
	OrdersByStatus  map[string]int   `json:"orders_by_status"`
	BundlesByStatus []WIPStatusCount `json:"bundles_by_status"`
	LateOrderCount  int              `json:"late_order_count"`
	OpenInvoices    int              `json:"open_invoices"`
	OverdueInvoices int              `json:"overdue_invoices"`
}

// GET /api/dashboard/overview
// İmalat paneli: durum bazında sipariş/bohça sayıları, geciken siparişler.
func OverviewHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp := OverviewResponse{OrdersByStatus: make(map[string]int)}

		type statusRow struct {
			Status string `gorm:"column:status"`
			Count  int    `gorm:"column:count"`
			Qty    int    `gorm:"column:qty"`
		}

		var orderRows []statusRow
		if err := database.DB.Model(&models.Order{}).
			Select("status, COUNT(*) AS count").
			Group("status").
			Scan(&orderRows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş sayıları alınamadı")
		}
		for _, r := range orderRows {
			resp.OrdersByStatus[r.Status] = r.Count
		}

		var bundleRows []statusRow
		if err := database.DB.Model(&models.Bundle{}).
			Select("status, COUNT(*) AS count, COALESCE(SUM(current_qty), 0) AS qty").
			Group("status").
			Scan(&bundleRows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bohça sayıları alınamadı")
		}
		sort.Slice(bundleRows, func(i, j int) bool { return bundleRows[i].Status < bundleRows[j].Status })
		resp.BundlesByStatus = make([]WIPStatusCount, 0, len(bundleRows))
		for _, r := range bundleRows {
			resp.BundlesByStatus = append(resp.BundlesByStatus, WIPStatusCount{Status: r.Status, Count: r.Count, Qty: r.Qty})
		}

		// hedef teslim tarihi geçmiş ve hala kapanmamış siparişler
		var lateCount int64
		if err := database.DB.Model(&models.Order{}).
			Where("target_delivery_date < ? AND status IN ?",
				time.Now(),
				[]models.OrderStatus{models.OrderStatusConfirmed, models.OrderStatusInProduction}).
			Count(&lateCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Geciken sipariş sayısı alınamadı")
		}
		resp.LateOrderCount = int(lateCount)

		var openCount, overdueCount int64
		database.DB.Model(&models.Invoice{}).Where("status = ?", models.InvoiceStatusOpen).Count(&openCount)
		database.DB.Model(&models.Invoice{}).Where("status = ?", models.InvoiceStatusOverdue).Count(&overdueCount)
		resp.OpenInvoices = int(openCount)
		resp.OverdueInvoices = int(overdueCount)

		return c.JSON(resp)
	}
}
