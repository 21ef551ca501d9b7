package models

import "time"

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleProduction UserRole = "production" // üretim şefi / bant sorumlusu
	RoleFinance    UserRole = "finance"
	RoleHR         UserRole = "hr"
	RoleClient     UserRole = "client" // müşteri portalı kullanıcısı
)

type User struct {
	ID           uint  `gorm:"primaryKey"`
	ClientID     *uint // sadece portal kullanıcıları için dolu
	Client       *Client
	Name         string   `gorm:"size:100;not null"`
	Email        string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
