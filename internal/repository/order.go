package repository

import (
	"context"
	"time"

	"paint-it-black-manufacturer/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	FindByID(ctx context.Context, tx *gorm.DB, orderID string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Order, error)
	DeleteUnpaid(ctx context.Context, tx *gorm.DB, orderID, userID string) error
	MarkPaid(ctx context.Context, tx *gorm.DB, orderID, transactionID string, paidOn time.Time) error
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return conn(r.db, tx).WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, tx *gorm.DB, orderID string) (*model.Order, error) {
	var order model.Order
	err := conn(r.db, tx).WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

// DeleteUnpaid removes the order only while it is owned by userID and still unpaid.
func (r *orderRepoImpl) DeleteUnpaid(ctx context.Context, tx *gorm.DB, orderID, userID string) error {
	result := conn(r.db, tx).WithContext(ctx).
		Where(`
			id = ?
			AND user_id = ?
			AND payment_status IS NULL
		`,
			orderID,
			userID,
		).
		Delete(&model.Order{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkPaid flips an unpaid order to paid. A second attempt matches no row.
func (r *orderRepoImpl) MarkPaid(ctx context.Context, tx *gorm.DB, orderID, transactionID string, paidOn time.Time) error {
	result := conn(r.db, tx).WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND payment_status IS NULL", orderID).
		Updates(map[string]interface{}{
			"payment_status": model.PaymentStatusPaid,
			"transaction_id": transactionID,
			"paid_on":        paidOn,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
