package jobs

import (
	"fmt"
	"log"
	"time"

	"konfeksiyon-backend/internal/config"
	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"

	"github.com/go-co-op/gocron/v2"
)

// Start: Günlük arka plan işlerini kurar ve başlatır. Dönen scheduler
// kapanışta Shutdown için saklanmalı.
func Start(cfg *config.Config) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("zamanlayıcı oluşturulamadı: %w", err)
	}

	// Her gece 00:30'da vadesi geçen faturaları işaretle
	_, err = scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 30, 0))),
		gocron.NewTask(func() {
			if err := MarkOverdueInvoices(); err != nil {
				log.Printf("Vadesi geçen fatura işaretleme hatası: %v", err)
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("fatura vade işi kurulamadı: %w", err)
	}

	// Her sabah 06:00'da uzun süredir dokunulmayan bohçaları logla
	_, err = scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(6, 0, 0))),
		gocron.NewTask(func() {
			if err := WarnStaleBundles(cfg.StaleBundleDays); err != nil {
				log.Printf("Bekleyen bohça kontrol hatası: %v", err)
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("bekleyen bohça işi kurulamadı: %w", err)
	}

	scheduler.Start()
	log.Println("Günlük arka plan işleri başlatıldı")
	return scheduler, nil
}

// MarkOverdueInvoices: Vadesi geçmiş açık faturaları overdue durumuna çeker.
func MarkOverdueInvoices() error {
	result := database.DB.Model(&models.Invoice{}).
		Where("status = ? AND due_date < ?", models.InvoiceStatusOpen, time.Now()).
		Update("status", models.InvoiceStatusOverdue)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		log.Printf("%d fatura vadesi geçti olarak işaretlendi", result.RowsAffected)
	}
	return nil
}

// WarnStaleBundles: staleDays gündür hiçbir operasyonu ilerlemeyen açık
// bohçaları loglar. Şimdilik sadece log; bildirim entegrasyonu yok.
func WarnStaleBundles(staleDays int) error {
	if staleDays <= 0 {
		return nil
	}
	cutoff := time.Now().AddDate(0, 0, -staleDays)

	var bundles []models.Bundle
	if err := database.DB.
		Where("status IN ? AND updated_at < ?",
			[]models.BundleStatus{models.BundleStatusCreated, models.BundleStatusInProgress},
			cutoff).
		Find(&bundles).Error; err != nil {
		return err
	}

	for _, b := range bundles {
		log.Printf("UYARI: Bohça %s %d gündür ilerlemiyor (durum: %s)",
			b.BundleNumber, staleDays, b.Status)
	}
	return nil
}
