package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"paint-it-black-manufacturer/internal/client"
	"paint-it-black-manufacturer/internal/config"
	"paint-it-black-manufacturer/internal/metrics"
	"paint-it-black-manufacturer/internal/model"
	"paint-it-black-manufacturer/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

const (
	useCaseCreateOrder    = "order.create"
	useCaseCancelOrder    = "order.cancel"
	useCaseListOrders     = "order.list"
	useCasePaymentIntent  = "payment.intent"
	useCaseConfirmPayment = "payment.confirm"
	useCaseListPayments   = "payment.list"
)

// OrderService drives an order from placement through payment confirmation.
type OrderService interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*model.Order, error)
	CancelOrder(ctx context.Context, req CancelOrderRequest) error
	ListOrders(ctx context.Context, caller Identity) ([]*model.Order, error)

	CreatePaymentIntent(ctx context.Context, req PaymentIntentRequest) (*client.PaymentIntent, error)
	ConfirmPayment(ctx context.Context, req ConfirmPaymentRequest) (*ConfirmPaymentResult, error)
	ListPayments(ctx context.Context, caller Identity) ([]*model.Payment, error)
}

type Contact struct {
	Name    string
	Phone   string
	Address string
}

type CreateOrderRequest struct {
	Caller   Identity
	Owner    string
	ToolID   string
	Quantity int
	Total    decimal.Decimal
	Contact  Contact
}

type CancelOrderRequest struct {
	Caller  Identity
	Owner   string
	OrderID string
}

type orderServiceImpl struct {
	db          *gorm.DB
	processor   client.PaymentProcessor
	orderRepo   repository.OrderRepository
	toolRepo    repository.ToolRepository
	paymentRepo repository.PaymentRepository
	metrics     *metrics.Metrics
	locks       *keyLock

	storeTimeout   time.Duration
	paymentTimeout time.Duration
	currency       string
	now            func() time.Time
}

func NewOrderService(
	db *gorm.DB,
	processor client.PaymentProcessor,
	orderRepo repository.OrderRepository,
	toolRepo repository.ToolRepository,
	paymentRepo repository.PaymentRepository,
	m *metrics.Metrics,
	dbCfg config.Database,
	paymentCfg config.Payment,
) OrderService {
	return &orderServiceImpl{
		db:             db,
		processor:      processor,
		orderRepo:      orderRepo,
		toolRepo:       toolRepo,
		paymentRepo:    paymentRepo,
		metrics:        m,
		locks:          newKeyLock(),
		storeTimeout:   dbCfg.Timeout,
		paymentTimeout: paymentCfg.Timeout,
		currency:       paymentCfg.Currency,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// readContext bounds a store read; it still ends when the caller goes away.
func (s *orderServiceImpl) readContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.storeTimeout)
}

// writeContext detaches from caller cancellation so issued writes finish, bounded by the store timeout.
func (s *orderServiceImpl) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.storeTimeout)
}

func (s *orderServiceImpl) CreateOrder(ctx context.Context, req CreateOrderRequest) (_ *model.Order, err error) {
	ctx, op := startOperation(ctx, s.metrics, useCaseCreateOrder, "CreateOrder",
		attribute.String("tool.id", req.ToolID),
		attribute.Int("order.quantity", req.Quantity),
	)
	defer func() { op.done(err) }()

	owner, err := authorize(req.Caller, req.Owner)
	if err != nil {
		return nil, op.fail(err)
	}
	if err := validateCreateOrder(req); err != nil {
		return nil, op.fail(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, op.fail(contextError(err))
	}

	readCtx, cancelRead := s.readContext(ctx)
	defer cancelRead()

	tool, err := s.toolRepo.FindByID(readCtx, nil, req.ToolID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, op.fail(fmt.Errorf("%w: tool %s", ErrNotFound, req.ToolID))
	}
	if err != nil {
		return nil, op.storeFail("find_tool", err)
	}
	if req.Quantity < tool.MinimumOrder {
		return nil, op.fail(validationError("quantity must be at least %d", tool.MinimumOrder))
	}

	order := &model.Order{
		ID:        uuid.NewString(),
		UserID:    owner,
		Name:      strings.TrimSpace(req.Contact.Name),
		Phone:     strings.TrimSpace(req.Contact.Phone),
		Address:   strings.TrimSpace(req.Contact.Address),
		ToolID:    req.ToolID,
		Quantity:  req.Quantity,
		Total:     req.Total,
		CreatedAt: s.now(),
	}
	op.setOrder(order.ID)

	writeCtx, cancelWrite := s.writeContext(ctx)
	defer cancelWrite()

	if err := s.orderRepo.Create(writeCtx, nil, order); err != nil {
		return nil, op.storeFail("create_order", err)
	}

	return order, nil
}

func validateCreateOrder(req CreateOrderRequest) error {
	if req.ToolID == "" {
		return validationError("tool id is required")
	}
	if !validReference(req.ToolID) {
		return invalidReference("tool id")
	}
	if req.Quantity <= 0 {
		return validationError("quantity must be positive")
	}
	if err := validateAmount("total", req.Total); err != nil {
		return err
	}
	if strings.TrimSpace(req.Contact.Name) == "" {
		return validationError("name is required")
	}
	if strings.TrimSpace(req.Contact.Phone) == "" {
		return validationError("phone is required")
	}
	if strings.TrimSpace(req.Contact.Address) == "" {
		return validationError("address is required")
	}
	return nil
}

func (s *orderServiceImpl) CancelOrder(ctx context.Context, req CancelOrderRequest) (err error) {
	ctx, op := startOperation(ctx, s.metrics, useCaseCancelOrder, "CancelOrder",
		attribute.String("order.id", req.OrderID),
	)
	defer func() { op.done(err) }()

	owner, err := authorize(req.Caller, req.Owner)
	if err != nil {
		return op.fail(err)
	}
	if !validReference(req.OrderID) {
		return op.fail(invalidReference("order id"))
	}
	op.setOrder(req.OrderID)

	// Shares the confirmation lock so a cancel never interleaves with a payment for the same order.
	release, err := s.locks.acquire(ctx, req.OrderID)
	if err != nil {
		return op.fail(contextError(err))
	}
	defer release()

	if err := ctx.Err(); err != nil {
		return op.fail(contextError(err))
	}

	writeCtx, cancel := s.writeContext(ctx)
	defer cancel()

	order, err := s.orderRepo.FindByID(writeCtx, nil, req.OrderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return op.fail(fmt.Errorf("%w: order %s", ErrNotFound, req.OrderID))
	}
	if err != nil {
		return op.storeFail("find_order", err)
	}
	if order.UserID != owner {
		return op.fail(ErrAuthorizationDenied)
	}
	if order.IsPaid() {
		return op.fail(ErrNotCancelable)
	}

	err = s.orderRepo.DeleteUnpaid(writeCtx, nil, req.OrderID, owner)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return op.fail(fmt.Errorf("%w: order %s", ErrNotFound, req.OrderID))
	}
	if err != nil {
		return op.storeFail("delete_order", err)
	}

	return nil
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, caller Identity) (_ []*model.Order, err error) {
	ctx, op := startOperation(ctx, s.metrics, useCaseListOrders, "ListOrders")
	defer func() { op.done(err) }()

	if caller.Subject == "" {
		return nil, op.fail(ErrAuthorizationDenied)
	}

	readCtx, cancel := s.readContext(ctx)
	defer cancel()

	orders, err := s.orderRepo.ListByUser(readCtx, caller.Subject)
	if err != nil {
		return nil, op.storeFail("list_orders", err)
	}
	return orders, nil
}
