package models

import "time"

// Client: Sipariş veren müşteri firma (marka)
type Client struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:100;not null;unique"`
	Brand        string `gorm:"size:100"` // marka adı (firma adından farklı olabilir)
	ContactName  string `gorm:"size:100"`
	ContactEmail string `gorm:"size:100"`
	Phone        string `gorm:"size:50"`
	Address      string `gorm:"size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Users  []User
	Orders []Order
}
