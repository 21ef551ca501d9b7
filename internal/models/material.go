package models

import "time"

// Material: Kumaş / aksesuar malzemesi
type Material struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;unique"`
	StockCode string `gorm:"size:50;index"`
	Unit      string `gorm:"size:20;not null"` // metre, kg, adet, top
	CreatedAt time.Time
	UpdatedAt time.Time
}

type StockEntryType string

const (
	StockEntryIn  StockEntryType = "in"  // giriş (satın alma / iade)
	StockEntryOut StockEntryType = "out" // çıkış (üretim tüketimi)
)

// MaterialStockEntry: Malzeme stok hareketi. Çıkışlar siparişe bağlanabilir
// (sipariş bazlı kumaş tüketimi raporu için).
type MaterialStockEntry struct {
	ID         uint `gorm:"primaryKey"`
	MaterialID uint `gorm:"index;not null"`
	Material   Material
	OrderID    *uint          `gorm:"index"` // tüketim hangi sipariş için (opsiyonel)
	Type       StockEntryType `gorm:"size:10;not null"`
	Quantity   float64        `gorm:"not null"`
	Date       time.Time      `gorm:"index;not null"`
	Note       string         `gorm:"size:255"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
