package models

import "time"

type BundleStatus string

const (
	BundleStatusCreated    BundleStatus = "created"
	BundleStatusInProgress BundleStatus = "in_progress"
	BundleStatusCompleted  BundleStatus = "completed"
	BundleStatusCancelled  BundleStatus = "cancelled"
)

// Bundle: Kesimden çıkıp dikim operasyonlarından geçen iş paketi (bohça)
type Bundle struct {
	ID           uint   `gorm:"primaryKey"`
	OrderID      uint   `gorm:"index;not null"`
	Order        Order
	BundleNumber string       `gorm:"size:50;uniqueIndex;not null"`
	TotalQty     int          `gorm:"not null"` // kesimden çıkan adet
	CurrentQty   int          `gorm:"not null"` // fire/ret düşüldükten sonraki adet
	Status       BundleStatus `gorm:"size:20;not null;default:created"`
	Color        string       `gorm:"size:50"`
	SizeLabel    string       `gorm:"size:20"` // beden (S, M, L...)
	StartedAt    *time.Time
	CompletedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Operations []BundleOperation `gorm:"foreignKey:BundleID;constraint:OnDelete:CASCADE"`
}

type BundleOperationStatus string

const (
	BundleOpStatusPending    BundleOperationStatus = "pending"
	BundleOpStatusInProgress BundleOperationStatus = "in_progress"
	BundleOpStatusCompleted  BundleOperationStatus = "completed"
)

// BundleOperation: Bohça x dikim operasyonu ara kaydı. Bohça oluşturulurken
// rotadaki her operasyon için toplu olarak "pending" yaratılır ve sadece
// ileri yönde geçiş yapar (geri alma yok).
type BundleOperation struct {
	ID          uint                  `gorm:"primaryKey"`
	BundleID    uint                  `gorm:"index;not null"`
	OperationID uint                  `gorm:"index;not null"`
	Operation   SewingOperation       `gorm:"foreignKey:OperationID"`
	Status      BundleOperationStatus `gorm:"size:20;not null;default:pending"`
	EmployeeID  *uint                 `gorm:"index"` // operasyonu tamamlayan çalışan
	Employee    *Employee
	StartedAt   *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
