package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Tool struct {
	ID           string          `gorm:"primaryKey;size:36;not null"`
	Name         string          `gorm:"size:128;not null"`
	Description  string          `gorm:"size:1024"`
	Image        string          `gorm:"size:512"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MinimumOrder int             `gorm:"not null;default:1"`
	Available    int             `gorm:"not null;check:available >= 0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Review struct {
	ID        string `gorm:"primaryKey;size:36;not null"`
	ToolID    string `gorm:"size:36;index;not null"`
	UserID    string `gorm:"size:128;index;not null"`
	Name      string `gorm:"size:128"`
	Rating    int    `gorm:"not null"`
	Comment   string `gorm:"size:2048"`
	CreatedAt time.Time
}
