package auth

import "time"

// Account is an authorized API caller scoped to a single tenant.
type Account struct {
	ID           uint64    `gorm:"primaryKey"`
	TenantID     string    `gorm:"index;not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null;default:now()"`
}
