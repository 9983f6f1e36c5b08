package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/storekit/multisafepay-gateway/internal/gateway/domain"
)

type GormMethodRepository struct {
	db *gorm.DB
}

func NewGormMethodRepository(db *gorm.DB) *GormMethodRepository {
	return &GormMethodRepository{db: db}
}

func (r *GormMethodRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.PaymentMethodConfig{})
}

func (r *GormMethodRepository) FindByID(ctx context.Context, id uint) (*domain.PaymentMethodConfig, error) {
	var method domain.PaymentMethodConfig
	err := r.db.WithContext(ctx).First(&method, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrMethodNotFound
	}
	if err != nil {
		return nil, err
	}
	return &method, nil
}

func (r *GormMethodRepository) FindActive(ctx context.Context) ([]domain.PaymentMethodConfig, error) {
	var methods []domain.PaymentMethodConfig
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("id").
		Find(&methods).Error
	return methods, err
}
