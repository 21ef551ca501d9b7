package models

import "time"

type InvoiceStatus string

const (
	InvoiceStatusOpen      InvoiceStatus = "open"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// Invoice: Sipariş faturası
type Invoice struct {
	ID            uint   `gorm:"primaryKey"`
	OrderID       uint   `gorm:"index;not null"`
	Order         Order
	InvoiceNumber string        `gorm:"size:50;uniqueIndex;not null"`
	Amount        float64       `gorm:"not null"`
	IssueDate     time.Time     `gorm:"index;not null"`
	DueDate       time.Time     `gorm:"index;not null"` // vade tarihi
	Status        InvoiceStatus `gorm:"size:20;not null;default:open"`
	Note          string        `gorm:"size:255"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Payments []Payment `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// Payment: Faturaya yapılan tahsilat
type Payment struct {
	ID          uint      `gorm:"primaryKey"`
	InvoiceID   uint      `gorm:"index;not null"`
	Amount      float64   `gorm:"not null"`
	PaymentDate time.Time `gorm:"index;not null"`
	Method      string    `gorm:"size:20"` // havale / nakit / çek
	Description string    `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
