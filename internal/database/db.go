package database

import (
	"log"

	"konfeksiyon-backend/internal/config"
	"konfeksiyon-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	// SewingOperation.depends_on migration: eski kurulumlarda kolon 255
	// karakterdi, uzun operasyon listeleri kesiliyordu (AutoMigrate'ten ÖNCE)
	if DB.Migrator().HasTable(&models.SewingOperation{}) {
		if DB.Migrator().HasColumn(&models.SewingOperation{}, "depends_on") {
			if err := DB.Exec("ALTER TABLE sewing_operations ALTER COLUMN depends_on TYPE VARCHAR(500)").Error; err != nil {
				log.Printf("depends_on kolonu genişletilirken hata (zaten 500 olabilir): %v", err)
			}
		}
	}

	err = DB.AutoMigrate(
		&models.Client{},
		&models.User{},
		&models.RouteTemplate{},
		&models.RoutingStep{},
		&models.SewingOperation{},
		&models.Order{},
		&models.Bundle{},
		&models.BundleOperation{},
		&models.Employee{},
		&models.QCInspection{},
		&models.Invoice{},
		&models.Payment{},
		&models.Material{},
		&models.MaterialStockEntry{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	// Aynı bohçada aynı operasyon iki kez oluşmasın
	DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_bundle_operations_bundle_op ON bundle_operations(bundle_id, operation_id)")

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}
