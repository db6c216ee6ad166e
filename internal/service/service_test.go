package service

import (
	"context"
	"testing"
	"time"

	"paint-it-black-manufacturer/internal/client"
	"paint-it-black-manufacturer/internal/config"
	"paint-it-black-manufacturer/internal/metrics"
	"paint-it-black-manufacturer/internal/model"
	"paint-it-black-manufacturer/internal/repository"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	ann = "ann@example.com"
	bob = "bob@example.com"
)

type fakeProcessor struct {
	createIntent func(ctx context.Context, amount int64, currency string) (*client.PaymentIntent, error)
}

func (f *fakeProcessor) Provider() string { return "fake" }

func (f *fakeProcessor) CreateIntent(ctx context.Context, amount int64, currency string) (*client.PaymentIntent, error) {
	return f.createIntent(ctx, amount, currency)
}

type fixture struct {
	db        *gorm.DB
	processor *fakeProcessor
	metrics   *metrics.Metrics
	orders    OrderService
	tools     repository.ToolRepository
	orderRepo repository.OrderRepository
	payments  repository.PaymentRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := client.InitDatabase(config.Database{
		Driver:       config.DriverSQLite,
		URL:          ":memory:",
		MaxIdleConns: 1,
		MaxOpenConns: 1,
		Timeout:      5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.CloseDatabase(db) })

	f := &fixture{
		db:        db,
		metrics:   metrics.New(prometheus.NewRegistry()),
		tools:     repository.NewToolRepository(db),
		orderRepo: repository.NewOrderRepository(db),
		payments:  repository.NewPaymentRepository(db),
		processor: &fakeProcessor{
			createIntent: func(_ context.Context, amount int64, currency string) (*client.PaymentIntent, error) {
				return &client.PaymentIntent{ID: "pi_1", ClientSecret: "pi_1_secret", Amount: amount, Currency: currency}, nil
			},
		},
	}
	f.orders = NewOrderService(
		db,
		f.processor,
		f.orderRepo,
		f.tools,
		f.payments,
		f.metrics,
		config.Database{Timeout: 5 * time.Second},
		config.Payment{Currency: "usd", Timeout: 200 * time.Millisecond},
	)
	return f
}

func (f *fixture) seedTool(t *testing.T, available int) *model.Tool {
	t.Helper()
	tool := &model.Tool{
		ID:           uuid.NewString(),
		Name:         "Roller",
		Price:        decimal.RequireFromString("12.50"),
		MinimumOrder: 1,
		Available:    available,
	}
	require.NoError(t, f.tools.Create(context.Background(), tool))
	return tool
}

func (f *fixture) placeOrder(t *testing.T, owner, toolID string, quantity int, total string) *model.Order {
	t.Helper()
	order, err := f.orders.CreateOrder(context.Background(), CreateOrderRequest{
		Caller:   Identity{Subject: owner, Role: model.RoleUser},
		Owner:    owner,
		ToolID:   toolID,
		Quantity: quantity,
		Total:    decimal.RequireFromString(total),
		Contact:  Contact{Name: "Ann", Phone: "555-0100", Address: "1 Main St"},
	})
	require.NoError(t, err)
	return order
}

func (f *fixture) available(t *testing.T, toolID string) int {
	t.Helper()
	tool, err := f.tools.FindByID(context.Background(), nil, toolID)
	require.NoError(t, err)
	return tool.Available
}

func (f *fixture) paymentCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.Payment{}).Count(&n).Error)
	return n
}

func confirmRequest(order *model.Order, transactionID string) ConfirmPaymentRequest {
	return ConfirmPaymentRequest{
		Caller:        Identity{Subject: order.UserID, Role: model.RoleUser},
		Owner:         order.UserID,
		OrderID:       order.ID,
		ToolID:        order.ToolID,
		TransactionID: transactionID,
		Quantity:      order.Quantity,
		Total:         order.Total,
	}
}
