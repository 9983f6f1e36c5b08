package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/storekit/multisafepay-gateway/internal/gateway/domain"
)

var tracer = otel.Tracer("gateway-repository")

// GormOrderRepositoryWithTracing wraps GormOrderRepository with tracing
type GormOrderRepositoryWithTracing struct {
	*GormOrderRepository
}

// NewGormOrderRepositoryWithTracing creates a new repository with tracing
func NewGormOrderRepositoryWithTracing(db *gorm.DB) *GormOrderRepositoryWithTracing {
	return &GormOrderRepositoryWithTracing{
		GormOrderRepository: NewGormOrderRepository(db),
	}
}

func (r *GormOrderRepositoryWithTracing) FindByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByNumber",
		trace.WithAttributes(
			attribute.String("order.number", orderNumber),
		),
	)
	defer span.End()

	order, err := r.GormOrderRepository.FindByNumber(ctx, orderNumber)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("order.status", order.OrderStatus))
	return order, nil
}

func (r *GormOrderRepositoryWithTracing) ApplyStatus(ctx context.Context, orderNumber, status string) (bool, error) {
	ctx, span := tracer.Start(ctx, "repository.ApplyStatus",
		trace.WithAttributes(
			attribute.String("order.number", orderNumber),
			attribute.String("order.target_status", status),
		),
	)
	defer span.End()

	applied, err := r.GormOrderRepository.ApplyStatus(ctx, orderNumber, status)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}

	span.SetAttributes(attribute.Bool("order.status_applied", applied))
	return applied, nil
}

func (r *GormOrderRepositoryWithTracing) AppendHistory(ctx context.Context, history *domain.OrderHistory) error {
	ctx, span := tracer.Start(ctx, "repository.AppendHistory",
		trace.WithAttributes(
			attribute.String("order.number", history.OrderNumber),
			attribute.String("order.status_code", history.StatusCode),
		),
	)
	defer span.End()

	if err := r.GormOrderRepository.AppendHistory(ctx, history); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (r *GormOrderRepositoryWithTracing) HistoryContains(ctx context.Context, orderNumber, statusCode string) (bool, error) {
	ctx, span := tracer.Start(ctx, "repository.HistoryContains",
		trace.WithAttributes(
			attribute.String("order.number", orderNumber),
			attribute.String("order.status_code", statusCode),
		),
	)
	defer span.End()

	found, err := r.GormOrderRepository.HistoryContains(ctx, orderNumber, statusCode)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}

	span.SetAttributes(attribute.Bool("order.history_found", found))
	return found, nil
}
