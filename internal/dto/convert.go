package dto

import (
	"paint-it-black-manufacturer/internal/model"
)

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		Email:     u.ID,
		Name:      u.Name,
		Photo:     u.Photo,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func NewToolResponse(t *model.Tool) ToolResponse {
	return ToolResponse{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		Image:        t.Image,
		Price:        t.Price,
		MinimumOrder: t.MinimumOrder,
		Available:    t.Available,
	}
}

func NewOrderResponse(o *model.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID,
		Email:         o.UserID,
		ToolID:        o.ToolID,
		Quantity:      o.Quantity,
		Total:         o.Total,
		Name:          o.Name,
		Phone:         o.Phone,
		Address:       o.Address,
		PaymentStatus: o.PaymentStatus,
		TransactionID: o.TransactionID,
		PaidOn:        o.PaidOn,
		CreatedAt:     o.CreatedAt,
	}
}

func NewPaymentResponse(p *model.Payment) PaymentResponse {
	if p == nil {
		return PaymentResponse{}
	}
	return PaymentResponse{
		ID:            p.ID,
		OrderID:       p.OrderID,
		ToolID:        p.ToolID,
		TransactionID: p.TransactionID,
		Amount:        p.Amount,
		CreatedAt:     p.CreatedAt,
	}
}

func NewReviewResponse(r *model.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		ToolID:    r.ToolID,
		Email:     r.UserID,
		Name:      r.Name,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func Map[T any, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
