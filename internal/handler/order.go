package handler

import (
	"net/http"

	"paint-it-black-manufacturer/internal/dto"
	"paint-it-black-manufacturer/internal/middleware"
	"paint-it-black-manufacturer/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.OrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	order, err := h.orderService.CreateOrder(ctx, service.CreateOrderRequest{
		Caller:   middleware.IdentityFrom(c),
		Owner:    req.Email,
		ToolID:   req.ToolID,
		Quantity: req.Quantity,
		Total:    req.Total,
		Contact: service.Contact{
			Name:    req.Name,
			Phone:   req.Phone,
			Address: req.Address,
		},
	})
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusCreated, dto.NewOrderResponse(order))
}

// CancelOrder expects the owner as the email query parameter, matching the body field of the other routes.
func (h *OrderHandler) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()

	err := h.orderService.CancelOrder(ctx, service.CancelOrderRequest{
		Caller:  middleware.IdentityFrom(c),
		Owner:   c.QueryParam("email"),
		OrderID: c.Param("id"),
	})
	if err != nil {
		return respondError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.orderService.ListOrders(ctx, middleware.IdentityFrom(c))
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, dto.Map(orders, dto.NewOrderResponse))
}

func (h *OrderHandler) CreatePaymentIntent(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PaymentIntentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	intent, err := h.orderService.CreatePaymentIntent(ctx, service.PaymentIntentRequest{
		Caller:   middleware.IdentityFrom(c),
		Owner:    req.Email,
		Total:    req.Total,
		Currency: req.Currency,
	})
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, dto.PaymentIntentResponse{
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     intent.Currency,
	})
}

func (h *OrderHandler) ConfirmPayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ConfirmPaymentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.orderService.ConfirmPayment(ctx, service.ConfirmPaymentRequest{
		Caller:        middleware.IdentityFrom(c),
		Owner:         req.Email,
		OrderID:       req.OrderID,
		ToolID:        req.ToolID,
		TransactionID: req.TransactionID,
		Quantity:      req.Quantity,
		Total:         req.Total,
	})
	if err != nil {
		return respondError(err)
	}

	status := http.StatusCreated
	if res.Replayed {
		status = http.StatusOK
	}
	return c.JSON(status, dto.ConfirmPaymentResponse{
		Order:    dto.NewOrderResponse(res.Order),
		Payment:  dto.NewPaymentResponse(res.Payment),
		Replayed: res.Replayed,
	})
}

func (h *OrderHandler) ListPayments(c echo.Context) error {
	ctx := c.Request().Context()

	payments, err := h.orderService.ListPayments(ctx, middleware.IdentityFrom(c))
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, dto.Map(payments, dto.NewPaymentResponse))
}
