package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const PaymentStatusPaid = "paid"

type Order struct {
	ID      string `gorm:"primaryKey;size:36;not null"`
	UserID  string `gorm:"size:128;index;not null"` // owner, the auth subject (email)
	Name    string `gorm:"size:128;not null"`
	Phone   string `gorm:"size:32;not null"`
	Address string `gorm:"size:255;not null"`

	ToolID   string          `gorm:"size:36;index;not null"`
	Quantity int             `gorm:"not null"`
	Total    decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	PaymentStatus *string `gorm:"size:16;index"` // nil until paid
	TransactionID *string `gorm:"size:128"`
	PaidOn        *time.Time
	CreatedAt     time.Time
}

func (o *Order) IsPaid() bool {
	return o.PaymentStatus != nil && *o.PaymentStatus == PaymentStatusPaid
}

// Payment is an append-only ledger entry, one per confirmed order.
type Payment struct {
	ID            string          `gorm:"primaryKey;size:36;not null"`
	OrderID       string          `gorm:"size:36;uniqueIndex;not null"`
	UserID        string          `gorm:"size:128;index;not null"`
	ToolID        string          `gorm:"size:36;not null"`
	TransactionID string          `gorm:"size:128;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt     time.Time
}
