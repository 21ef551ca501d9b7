package models

import (
	"strings"
	"time"
)

// RouteTemplate: Üretim rotası şablonu (kesim -> dikim -> kalite -> paket gibi)
type RouteTemplate struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null;unique"`
	Description string `gorm:"size:255"`
	IsActive    bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Steps []RoutingStep `gorm:"foreignKey:RouteTemplateID;constraint:OnDelete:CASCADE"`
}

// RoutingStep: Rotadaki her adım (sıralı)
type RoutingStep struct {
	ID              uint   `gorm:"primaryKey"`
	RouteTemplateID uint   `gorm:"index;not null"`
	StepName        string `gorm:"size:100;not null"` // "Kesim", "Dikim", "Kalite Kontrol", "Paketleme"
	WorkCenter      string `gorm:"size:100"`          // bant / masa / istasyon
	Sequence        int    `gorm:"not null"`          // adım sırası
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Operations []SewingOperation `gorm:"foreignKey:RoutingStepID;constraint:OnDelete:CASCADE"`
}

// SewingOperation: Dikim adımındaki her operasyon (örn: "yaka takma")
// DependsOn: virgülle ayrılmış operasyon ADLARI. Foreign key değil, serbest
// metin; eşleşme isimle yapılır. Listede olmayan bir isim o operasyonu
// kalıcı olarak bloke eder (kasıtlı davranış, bkz. production paketi).
type SewingOperation struct {
	ID              uint    `gorm:"primaryKey"`
	RoutingStepID   uint    `gorm:"index;not null"`
	Name            string  `gorm:"size:100;not null"`
	StandardMinutes float64 `gorm:"not null"` // standart dakika (ilerleme ağırlığı)
	DependsOn       string  `gorm:"size:500"` // örn: "kol takma, yaka takma"
	MachineType     string  `gorm:"size:100"` // overlok, düz makine vs.
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DependsOnNames: DependsOn alanını isim listesine çevirir. Boş parçalar atlanır.
func (op *SewingOperation) DependsOnNames() []string {
	if strings.TrimSpace(op.DependsOn) == "" {
		return nil
	}
	parts := strings.Split(op.DependsOn, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			names = append(names, p)
		}
	}
	return names
}
