package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/storekit/multisafepay-gateway/internal/gateway/domain"
)

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Order{}, &domain.OrderItem{}, &domain.OrderHistory{})
}

func (r *GormOrderRepository) FindByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_number = ?", orderNumber).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ApplyStatus writes the target status only when it differs from the current
// one and the order is not already shipped. The single conditional UPDATE is
// what makes concurrent webhook and redirect deliveries safe: at most one of
// them observes an affected row.
func (r *GormOrderRepository) ApplyStatus(ctx context.Context, orderNumber, status string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("order_number = ?", orderNumber).
		Where("order_status <> ?", status).
		Where("order_status <> ?", domain.OrderStatusShipped).
		Update("order_status", status)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *GormOrderRepository) AppendHistory(ctx context.Context, history *domain.OrderHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}

func (r *GormOrderRepository) HistoryContains(ctx context.Context, orderNumber, statusCode string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.OrderHistory{}).
		Where("order_number = ? AND status_code = ?", orderNumber, statusCode).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
