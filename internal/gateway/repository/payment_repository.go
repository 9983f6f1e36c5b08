package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storekit/multisafepay-gateway/internal/gateway/domain"
)

type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.PaymentRecord{})
}

// Create inserts the payment snapshot for an order. An order keeps a single
// record, so a retried checkout refreshes the existing row instead of
// tripping the unique index.
func (r *GormPaymentRepository) Create(ctx context.Context, record *domain.PaymentRecord) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "order_number"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"method_id",
				"payment_name",
				"order_total",
				"currency",
				"cost_per_transaction",
				"cost_percent",
				"tax_id",
				"gateway",
				"ip_address",
				"updated_at",
			}),
		}).
		Create(record).Error
}

func (r *GormPaymentRepository) FindByID(ctx context.Context, id uint) (*domain.PaymentRecord, error) {
	var record domain.PaymentRecord
	err := r.db.WithContext(ctx).First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *GormPaymentRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.PaymentRecord, error) {
	var record domain.PaymentRecord
	err := r.db.WithContext(ctx).
		Where("order_number = ?", orderNumber).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *GormPaymentRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.PaymentRecord, error) {
	var records []domain.PaymentRecord
	err := r.db.WithContext(ctx).
		Limit(limit).Offset(offset).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

func (r *GormPaymentRepository) SetTransaction(ctx context.Context, orderNumber, transactionID, status string) error {
	return r.db.WithContext(ctx).
		Model(&domain.PaymentRecord{}).
		Where("order_number = ?", orderNumber).
		Updates(map[string]interface{}{
			"transaction_id": transactionID,
			"status":         status,
		}).Error
}

func (r *GormPaymentRepository) SetStatus(ctx context.Context, orderNumber, status string) error {
	return r.db.WithContext(ctx).
		Model(&domain.PaymentRecord{}).
		Where("order_number = ?", orderNumber).
		Update("status", status).Error
}
