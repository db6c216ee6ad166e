package repository

import (
	"context"
	"testing"
	"time"

	"paint-it-black-manufacturer/internal/client"
	"paint-it-black-manufacturer/internal/config"
	"paint-it-black-manufacturer/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := client.InitDatabase(config.Database{
		Driver:       config.DriverSQLite,
		URL:          ":memory:",
		MaxIdleConns: 1,
		MaxOpenConns: 1,
		Timeout:      time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.CloseDatabase(db) })
	return db
}

func seedTool(t *testing.T, db *gorm.DB, available int) *model.Tool {
	t.Helper()
	tool := &model.Tool{
		ID:           uuid.NewString(),
		Name:         "Spray gun",
		Price:        decimal.RequireFromString("12.50"),
		MinimumOrder: 1,
		Available:    available,
	}
	require.NoError(t, NewToolRepository(db).Create(context.Background(), tool))
	return tool
}

func seedOrder(t *testing.T, db *gorm.DB, userID, toolID string) *model.Order {
	t.Helper()
	order := &model.Order{
		ID:       uuid.NewString(),
		UserID:   userID,
		Name:     "Ann",
		Phone:    "555-0100",
		Address:  "1 Main St",
		ToolID:   toolID,
		Quantity: 2,
		Total:    decimal.RequireFromString("25.00"),
	}
	require.NoError(t, NewOrderRepository(db).Create(context.Background(), nil, order))
	return order
}

func TestOrderRepository_MarkPaidOnce(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewOrderRepository(db)
	order := seedOrder(t, db, "ann@example.com", uuid.NewString())

	require.NoError(t, repo.MarkPaid(ctx, nil, order.ID, "tx-1", time.Now()))
	assert.ErrorIs(t, repo.MarkPaid(ctx, nil, order.ID, "tx-2", time.Now()), gorm.ErrRecordNotFound)

	got, err := repo.FindByID(ctx, nil, order.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPaid())
	assert.Equal(t, "tx-1", *got.TransactionID)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("25")))
}

func TestOrderRepository_DeleteUnpaid(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewOrderRepository(db)

	order := seedOrder(t, db, "ann@example.com", uuid.NewString())
	assert.ErrorIs(t, repo.DeleteUnpaid(ctx, nil, order.ID, "bob@example.com"), gorm.ErrRecordNotFound)
	require.NoError(t, repo.DeleteUnpaid(ctx, nil, order.ID, "ann@example.com"))
	assert.ErrorIs(t, repo.DeleteUnpaid(ctx, nil, order.ID, "ann@example.com"), gorm.ErrRecordNotFound)

	paid := seedOrder(t, db, "ann@example.com", uuid.NewString())
	require.NoError(t, repo.MarkPaid(ctx, nil, paid.ID, "tx", time.Now()))
	assert.ErrorIs(t, repo.DeleteUnpaid(ctx, nil, paid.ID, "ann@example.com"), gorm.ErrRecordNotFound)

	orders, err := repo.ListByUser(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestToolRepository_DecrementAvailable(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewToolRepository(db)
	tool := seedTool(t, db, 3)

	require.NoError(t, repo.DecrementAvailable(ctx, nil, tool.ID, 2))
	assert.ErrorIs(t, repo.DecrementAvailable(ctx, nil, tool.ID, 2), ErrInsufficientStock)
	assert.ErrorIs(t, repo.DecrementAvailable(ctx, nil, uuid.NewString(), 1), gorm.ErrRecordNotFound)

	got, err := repo.FindByID(ctx, nil, tool.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Available)
}

func TestToolRepository_DecrementRollsBackWithTransaction(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewToolRepository(db)
	tool := seedTool(t, db, 5)

	err := db.Transaction(func(tx *gorm.DB) error {
		require.NoError(t, repo.DecrementAvailable(ctx, tx, tool.ID, 4))
		return repo.DecrementAvailable(ctx, tx, tool.ID, 4)
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	got, err := repo.FindByID(ctx, nil, tool.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Available)
}

func TestPaymentRepository_UniqueOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewPaymentRepository(db)
	orderID := uuid.NewString()

	newPayment := func() *model.Payment {
		return &model.Payment{
			ID:            uuid.NewString(),
			OrderID:       orderID,
			UserID:        "ann@example.com",
			ToolID:        uuid.NewString(),
			TransactionID: "tx-1",
			Amount:        decimal.RequireFromString("25.00"),
		}
	}

	require.NoError(t, repo.Create(ctx, nil, newPayment()))
	assert.ErrorIs(t, repo.Create(ctx, nil, newPayment()), gorm.ErrDuplicatedKey)

	got, err := repo.FindByOrderID(ctx, nil, orderID)
	require.NoError(t, err)
	assert.Equal(t, "tx-1", got.TransactionID)

	payments, err := repo.ListByUser(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}

func TestUserRepository_CreateIfAbsentKeepsRole(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	created, err := repo.CreateIfAbsent(ctx, &model.User{ID: "boss@example.com", Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.CreateIfAbsent(ctx, &model.User{ID: "boss@example.com", Name: "Boss", Role: model.RoleUser})
	require.NoError(t, err)
	assert.False(t, created)

	user, err := repo.FindByID(ctx, "boss@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.Empty(t, user.Name)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestReviewRepository_ListByTool(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewReviewRepository(db)
	toolA, toolB := uuid.NewString(), uuid.NewString()

	for _, toolID := range []string{toolA, toolA, toolB} {
		require.NoError(t, repo.Create(ctx, &model.Review{
			ID:     uuid.NewString(),
			ToolID: toolID,
			UserID: "ann@example.com",
			Rating: 4,
		}))
	}

	reviews, err := repo.ListByTool(ctx, toolA)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	all, err := repo.ListByTool(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
