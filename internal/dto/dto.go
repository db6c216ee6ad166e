package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TokenRequest carries the ID token issued by the upstream identity provider.
type TokenRequest struct {
	IDToken string `json:"id_token"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type UserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

type UserResponse struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Photo     string    `json:"photo,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type UpsertUserResponse struct {
	User    UserResponse `json:"user"`
	Created bool         `json:"created"`
}

type RoleResponse struct {
	Role string `json:"role"`
}

type ToolRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Image        string          `json:"image"`
	Price        decimal.Decimal `json:"price"`
	MinimumOrder int             `json:"minimum_order"`
	Available    int             `json:"available"`
}

type ToolResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Image        string          `json:"image"`
	Price        decimal.Decimal `json:"price"`
	MinimumOrder int             `json:"minimum_order"`
	Available    int             `json:"available"`
}

type OrderRequest struct {
	Email    string          `json:"email"`
	ToolID   string          `json:"tool_id"`
	Quantity int             `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
	Name     string          `json:"name"`
	Phone    string          `json:"phone"`
	Address  string          `json:"address"`
}

type OrderResponse struct {
	ID            string          `json:"id"`
	Email         string          `json:"email"`
	ToolID        string          `json:"tool_id"`
	Quantity      int             `json:"quantity"`
	Total         decimal.Decimal `json:"total"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	Address       string          `json:"address"`
	PaymentStatus *string         `json:"payment_status"`
	TransactionID *string         `json:"transaction_id,omitempty"`
	PaidOn        *time.Time      `json:"paid_on,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

type PaymentIntentRequest struct {
	Email    string          `json:"email"`
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type ConfirmPaymentRequest struct {
	Email         string          `json:"email"`
	OrderID       string          `json:"order_id"`
	ToolID        string          `json:"tool_id"`
	TransactionID string          `json:"transaction_id"`
	Quantity      int             `json:"quantity"`
	Total         decimal.Decimal `json:"total"`
}

type ConfirmPaymentResponse struct {
	Order    OrderResponse   `json:"order"`
	Payment  PaymentResponse `json:"payment"`
	Replayed bool            `json:"replayed"`
}

type PaymentResponse struct {
	ID            string          `json:"id"`
	OrderID       string          `json:"order_id"`
	ToolID        string          `json:"tool_id"`
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     time.Time       `json:"created_at"`
}

type ReviewRequest struct {
	ToolID  string `json:"tool_id"`
	Name    string `json:"name"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type ReviewResponse struct {
	ID        string    `json:"id"`
	ToolID    string    `json:"tool_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
