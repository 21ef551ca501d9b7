package models

import "time"

// QCInspection: Bohça bazlı kalite kontrol kaydı
type QCInspection struct {
	ID          uint `gorm:"primaryKey"`
	BundleID    uint `gorm:"index;not null"`
	Bundle      Bundle
	InspectorID *uint     `gorm:"index"`
	Inspector   *Employee `gorm:"foreignKey:InspectorID"`
	Date        time.Time `gorm:"index;not null"`
	PassQty     int       `gorm:"not null"` // geçen adet
	RejectQty   int       `gorm:"not null"` // ret adet
	DefectCode  string    `gorm:"size:50"`  // hata kodu (örn: DK-03 iplik atlaması)
	Note        string    `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
