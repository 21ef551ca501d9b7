package models

import "time"

type OrderStatus string

const (
	OrderStatusDraft        OrderStatus = "draft"         // taslak
	OrderStatusConfirmed    OrderStatus = "confirmed"     // onaylandı
	OrderStatusInProduction OrderStatus = "in_production" // üretimde
	OrderStatusCompleted    OrderStatus = "completed"     // tamamlandı
	OrderStatusCancelled    OrderStatus = "cancelled"     // iptal
)

// Order: Müşteri siparişi (PO)
type Order struct {
	ID                 uint   `gorm:"primaryKey"`
	PONumber           string `gorm:"size:50;uniqueIndex;not null"` // sipariş numarası
	ClientID           uint   `gorm:"index;not null"`
	Client             Client
	RouteTemplateID    *uint `gorm:"index"` // üretim rotası (onay sırasında zorunlu)
	RouteTemplate      *RouteTemplate
	ProductType        string      `gorm:"size:100;not null"` // tişört, gömlek, pantolon vs.
	TotalQty           int         `gorm:"not null"`          // toplam adet
	UnitPrice          float64     `gorm:"not null"`          // birim fiyat
	TotalValue         float64     `gorm:"not null"`          // toplam tutar
	TargetDeliveryDate time.Time   `gorm:"index;not null"`    // hedef teslim tarihi
	ActualDeliveryDate *time.Time  // gerçekleşen teslim tarihi
	Status             OrderStatus `gorm:"size:20;not null;default:draft"`
	Note               string      `gorm:"size:500"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Bundles  []Bundle  `gorm:"foreignKey:OrderID"`
	Invoices []Invoice `gorm:"foreignKey:OrderID"`
}
