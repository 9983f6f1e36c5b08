package command

import (
	"context"
	"fmt"

	"github.com/storekit/multisafepay-gateway/internal/gateway/domain"
	"github.com/storekit/multisafepay-gateway/internal/msp"
	"github.com/storekit/multisafepay-gateway/pkg/logger"
)

// CancelOrderCommand marks an order cancelled after the shopper aborted the
// hosted payment page
type CancelOrderCommand struct {
	OrderNumber string
	MethodID    uint
}

// CancelOrderHandler handles the cancel order command
type CancelOrderHandler struct {
	orders   domain.OrderRepository
	payments domain.PaymentRepository
	methods  domain.MethodRepository
}

// NewCancelOrderHandler creates a new cancel order handler
func NewCancelOrderHandler(
	orders domain.OrderRepository,
	payments domain.PaymentRepository,
	methods domain.MethodRepository,
) *CancelOrderHandler {
	return &CancelOrderHandler{orders: orders, payments: payments, methods: methods}
}

// Handle executes the cancel order command
func (h *CancelOrderHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	method, err := h.methods.FindByID(ctx, cmd.MethodID)
	if err != nil {
		return err
	}

	order, err := h.orders.FindByNumber(ctx, cmd.OrderNumber)
	if err != nil {
		return err
	}

	applied, err := h.orders.ApplyStatus(ctx, order.OrderNumber, method.StatusCancelled)
	if err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}
	if !applied {
		return nil
	}

	if err := h.orders.AppendHistory(ctx, &domain.OrderHistory{
		OrderNumber:      order.OrderNumber,
		StatusCode:       method.StatusCancelled,
		CustomerNotified: false,
		Comments:         "Payment cancelled by customer",
	}); err != nil {
		return fmt.Errorf("failed to append order history: %w", err)
	}

	if err := h.payments.SetStatus(ctx, order.OrderNumber, "CANCELLED"); err != nil {
		logger.WithContext(ctx).Error().
			Err(err).
			Str("order_number", order.OrderNumber).
			Msg("Failed to update payment record snapshot")
	}

	logger.WithContext(ctx).Info().
		Str("order_number", order.OrderNumber).
		Str("order_status", method.StatusCancelled).
		Str("psp_status", msp.StatusCancelled).
		Msg("Order cancelled")

	return nil
}
