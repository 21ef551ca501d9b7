package models

import "time"

// Employee: Atölye çalışanı (makineci, ortacı, kalite kontrolcü...)
type Employee struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"size:100;not null"`
	Role      string  `gorm:"size:50"`  // makineci, ortacı, kalite, ütücü
	PieceRate float64 `gorm:"not null"` // standart dakika başına TL (parça başı ücret)
	IsActive  bool    `gorm:"not null;default:true"`
	HireDate  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
