package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"paint-it-black-manufacturer/internal/client"
	"paint-it-black-manufacturer/internal/model"
	"paint-it-black-manufacturer/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PaymentIntentRequest struct {
	Caller   Identity
	Owner    string
	Total    decimal.Decimal
	Currency string // empty selects the configured currency
}

type ConfirmPaymentRequest struct {
	Caller        Identity
	Owner         string
	OrderID       string
	ToolID        string
	TransactionID string
	Quantity      int
	Total         decimal.Decimal
}

type ConfirmPaymentResult struct {
	Order   *model.Order
	Payment *model.Payment
	// Replayed is set when the order was already confirmed with the same transaction id.
	Replayed bool
}

func (s *orderServiceImpl) CreatePaymentIntent(ctx context.Context, req PaymentIntentRequest) (_ *client.PaymentIntent, err error) {
	ctx, op := startOperation(ctx, s.metrics, useCasePaymentIntent, "CreatePaymentIntent")
	defer func() { op.done(err) }()

	if _, err := authorize(req.Caller, req.Owner); err != nil {
		return nil, op.fail(err)
	}
	if err := validateAmount("total", req.Total); err != nil {
		return nil, op.fail(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, op.fail(contextError(err))
	}

	currency := strings.ToLower(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = s.currency
	}
	amount := minorUnits(req.Total)
	op.span.SetAttributes(
		attribute.Int64("payment.amount", amount),
		attribute.String("payment.currency", currency),
		attribute.String("payment.provider", s.processor.Provider()),
	)

	callCtx, cancel := context.WithTimeout(ctx, s.paymentTimeout)
	defer cancel()

	intent, err := s.processor.CreateIntent(callCtx, amount, currency)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.metrics.ObserveProcessor(s.processor.Provider(), "timeout")
			return nil, op.fail(ErrTimeout)
		}
		s.metrics.ObserveProcessor(s.processor.Provider(), outcomeError)
		return nil, op.fail(fmt.Errorf("%w: %s", ErrPaymentProcessor, err.Error()))
	}
	s.metrics.ObserveProcessor(s.processor.Provider(), outcomeSuccess)

	return intent, nil
}

func validateConfirmPayment(req ConfirmPaymentRequest) error {
	if !validReference(req.OrderID) {
		return invalidReference("order id")
	}
	if !validReference(req.ToolID) {
		return invalidReference("tool id")
	}
	if strings.TrimSpace(req.TransactionID) == "" {
		return validationError("transaction id is required")
	}
	if req.Quantity <= 0 {
		return validationError("quantity must be positive")
	}
	return validateAmount("total", req.Total)
}

// ConfirmPayment marks the order paid, decrements stock and appends the ledger record as one unit.
// Calls for the same order are serialized; a repeat with the same transaction id is acknowledged
// without further writes.
func (s *orderServiceImpl) ConfirmPayment(ctx context.Context, req ConfirmPaymentRequest) (_ *ConfirmPaymentResult, err error) {
	ctx, op := startOperation(ctx, s.metrics, useCaseConfirmPayment, "ConfirmPayment",
		attribute.String("order.id", req.OrderID),
		attribute.String("tool.id", req.ToolID),
		attribute.Int("order.quantity", req.Quantity),
	)
	defer func() { op.done(err) }()

	owner, err := authorize(req.Caller, req.Owner)
	if err != nil {
		return nil, op.fail(err)
	}
	if err := validateConfirmPayment(req); err != nil {
		return nil, op.fail(err)
	}
	op.setOrder(req.OrderID)

	release, err := s.locks.acquire(ctx, req.OrderID)
	if err != nil {
		return nil, op.fail(contextError(err))
	}
	defer release()

	if err := ctx.Err(); err != nil {
		return nil, op.fail(contextError(err))
	}

	txCtx, cancel := s.writeContext(ctx)
	defer cancel()

	result := &ConfirmPaymentResult{}
	err = s.db.WithContext(txCtx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByID(txCtx, tx, req.OrderID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: order %s", ErrNotFound, req.OrderID)
		}
		if err != nil {
			return fmt.Errorf("load order: %w", err)
		}
		if order.UserID != owner {
			return ErrAuthorizationDenied
		}

		if order.IsPaid() {
			if order.TransactionID == nil || *order.TransactionID != req.TransactionID {
				return ErrAlreadyPaid
			}
			payment, err := s.paymentRepo.FindByOrderID(txCtx, tx, order.ID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("load payment: %w", err)
			}
			result.Order, result.Payment, result.Replayed = order, payment, true
			return nil
		}

		if order.ToolID != req.ToolID || order.Quantity != req.Quantity || !order.Total.Equal(req.Total) {
			return validationError("payment does not match the order")
		}

		paidOn := s.now()
		err = s.orderRepo.MarkPaid(txCtx, tx, order.ID, req.TransactionID, paidOn)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAlreadyPaid
		}
		if err != nil {
			return fmt.Errorf("mark order paid: %w", err)
		}

		err = s.toolRepo.DecrementAvailable(txCtx, tx, order.ToolID, order.Quantity)
		switch {
		case errors.Is(err, repository.ErrInsufficientStock):
			return ErrInsufficientStock
		case errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("%w: tool %s", ErrNotFound, order.ToolID)
		case err != nil:
			return fmt.Errorf("decrement stock: %w", err)
		}

		payment := &model.Payment{
			ID:            uuid.NewString(),
			OrderID:       order.ID,
			UserID:        order.UserID,
			ToolID:        order.ToolID,
			TransactionID: req.TransactionID,
			Amount:        order.Total,
			CreatedAt:     paidOn,
		}
		err = s.paymentRepo.Create(txCtx, tx, payment)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyPaid
		}
		if err != nil {
			return fmt.Errorf("append payment: %w", err)
		}

		status := model.PaymentStatusPaid
		order.PaymentStatus = &status
		order.TransactionID = &payment.TransactionID
		order.PaidOn = &paidOn

		result.Order, result.Payment = order, payment
		return nil
	})
	if err != nil {
		return nil, op.storeFail("confirm_payment", err)
	}

	if result.Replayed {
		op.status = "IDEMPOTENT_REPLAY"
		op.logger.Info("payment_replayed", zap.String("transaction_id", req.TransactionID))
	}
	return result, nil
}

func (s *orderServiceImpl) ListPayments(ctx context.Context, caller Identity) (_ []*model.Payment, err error) {
	ctx, op := startOperation(ctx, s.metrics, useCaseListPayments, "ListPayments")
	defer func() { op.done(err) }()

	if caller.Subject == "" {
		return nil, op.fail(ErrAuthorizationDenied)
	}

	readCtx, cancel := s.readContext(ctx)
	defer cancel()

	payments, err := s.paymentRepo.ListByUser(readCtx, caller.Subject)
	if err != nil {
		return nil, op.storeFail("list_payments", err)
	}
	return payments, nil
}
