package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/storekit/multisafepay-gateway/internal/gateway/domain"
	"github.com/storekit/multisafepay-gateway/internal/msp"
	"github.com/storekit/multisafepay-gateway/kafka"
	"github.com/storekit/multisafepay-gateway/pkg/logger"
)

// EventPublisher emits status-transition events; delivery failures are
// logged and never fail the transition
type EventPublisher interface {
	PublishPaymentStatusChanged(ctx context.Context, event kafka.PaymentStatusChangedEvent) error
}

// ReconcileStatusCommand applies one PSP status report to an order. It is
// built from either an asynchronous notification or the shopper returning on
// the redirect URL, so the same report may arrive more than once.
type ReconcileStatusCommand struct {
	OrderNumber   string
	MethodID      uint
	PSPStatus     string
	TransactionID string
	// AmountRefunded is the minor-unit amount the PSP reports as refunded;
	// zero means a full refund when a refund is pushed back.
	AmountRefunded int64
	// SignatureValid is the outcome of webhook signature verification.
	// Reports that fail it are acknowledged without touching any state.
	SignatureValid bool
}

// ReconcileOutcome reports what the reconciler did with a status report
type ReconcileOutcome struct {
	Applied     bool   `json:"applied"`
	Ignored     bool   `json:"ignored"`
	OrderStatus string `json:"order_status,omitempty"`
}

// ReconcileStatusHandler handles the reconcile status command
type ReconcileStatusHandler struct {
	orders    domain.OrderRepository
	payments  domain.PaymentRepository
	methods   domain.MethodRepository
	clients   domain.PSPClientFactory
	publisher EventPublisher

	orderPrefix string
}

// NewReconcileStatusHandler creates a new reconcile status handler
func NewReconcileStatusHandler(
	orders domain.OrderRepository,
	payments domain.PaymentRepository,
	methods domain.MethodRepository,
	clients domain.PSPClientFactory,
	publisher EventPublisher,
	orderPrefix string,
) *ReconcileStatusHandler {
	return &ReconcileStatusHandler{
		orders:      orders,
		payments:    payments,
		methods:     methods,
		clients:     clients,
		publisher:   publisher,
		orderPrefix: orderPrefix,
	}
}

// Handle executes the reconcile status command
func (h *ReconcileStatusHandler) Handle(ctx context.Context, cmd ReconcileStatusCommand) (*ReconcileOutcome, error) {
	if !cmd.SignatureValid {
		logger.WithContext(ctx).Warn().
			Str("order_number", cmd.OrderNumber).
			Str("psp_status", cmd.PSPStatus).
			Msg("Notification signature invalid, report ignored")
		return &ReconcileOutcome{Ignored: true}, nil
	}

	method, err := h.methods.FindByID(ctx, cmd.MethodID)
	if err != nil {
		return nil, err
	}

	target := method.StatusFor(cmd.PSPStatus)
	if target == "" {
		logger.WithContext(ctx).Warn().
			Str("order_number", cmd.OrderNumber).
			Str("psp_status", cmd.PSPStatus).
			Msg("Unknown transaction status, report ignored")
		return &ReconcileOutcome{Ignored: true}, nil
	}

	order, err := h.orders.FindByNumber(ctx, cmd.OrderNumber)
	if err != nil {
		return nil, err
	}
	previousStatus := order.OrderStatus

	// Side notifications are deduplicated against the transition history,
	// checked before this report writes its own entry
	alreadyRecorded, err := h.orders.HistoryContains(ctx, order.OrderNumber, target)
	if err != nil {
		return nil, fmt.Errorf("failed to read order history: %w", err)
	}

	applied, err := h.orders.ApplyStatus(ctx, order.OrderNumber, target)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if !applied {
		logger.WithContext(ctx).Info().
			Str("order_number", order.OrderNumber).
			Str("order_status", target).
			Msg("Status already applied or order shipped, nothing to do")
		return &ReconcileOutcome{Ignored: true, OrderStatus: previousStatus}, nil
	}

	// Cancellations must not trigger customer mail from downstream consumers
	notified := target != method.StatusCancelled
	if err := h.orders.AppendHistory(ctx, &domain.OrderHistory{
		OrderNumber:      order.OrderNumber,
		StatusCode:       target,
		CustomerNotified: notified,
		Comments:         "Transaction reported " + cmd.PSPStatus,
	}); err != nil {
		return nil, fmt.Errorf("failed to append order history: %w", err)
	}

	if err := h.payments.SetTransaction(ctx, order.OrderNumber, cmd.TransactionID, strings.ToUpper(cmd.PSPStatus)); err != nil {
		logger.WithContext(ctx).Error().
			Err(err).
			Str("order_number", order.OrderNumber).
			Msg("Failed to update payment record snapshot")
	}

	h.pushSideNotifications(ctx, order, method, cmd, target, previousStatus, alreadyRecorded)

	if h.publisher != nil {
		event := kafka.PaymentStatusChangedEvent{
			OrderNumber:      order.OrderNumber,
			MethodID:         method.ID,
			Gateway:          method.GatewayCode(),
			PSPStatus:        cmd.PSPStatus,
			OrderStatus:      target,
			TransactionID:    cmd.TransactionID,
			CustomerNotified: notified,
		}
		if err := h.publisher.PublishPaymentStatusChanged(ctx, event); err != nil {
			logger.WithContext(ctx).Error().
				Err(err).
				Str("order_number", order.OrderNumber).
				Msg("Failed to publish status event")
		}
	}

	logger.WithContext(ctx).Info().
		Str("order_number", order.OrderNumber).
		Str("psp_status", cmd.PSPStatus).
		Str("order_status", target).
		Msg("Order status reconciled")

	return &ReconcileOutcome{Applied: true, OrderStatus: target}, nil
}

// pushSideNotifications performs the outbound PSP updates a transition may
// imply. All of them are best-effort: the transition is already committed.
func (h *ReconcileStatusHandler) pushSideNotifications(
	ctx context.Context,
	order *domain.Order,
	method *domain.PaymentMethodConfig,
	cmd ReconcileStatusCommand,
	target, previousStatus string,
	alreadyRecorded bool,
) {
	client := h.clients(method)
	pspOrderID := h.orderPrefix + order.OrderNumber

	if method.TriggersInvoice(target) && order.InvoiceNumber != "" && !alreadyRecorded {
		update := &msp.UpdateRequest{InvoiceID: order.InvoiceNumber}
		if err := client.UpdateTransaction(ctx, pspOrderID, update); err != nil {
			logger.WithContext(ctx).Error().
				Err(err).
				Str("order_number", order.OrderNumber).
				Str("invoice_number", order.InvoiceNumber).
				Msg("Failed to push invoice number")
		}
	}

	if target == method.StatusShipped {
		update := &msp.UpdateRequest{Status: msp.StatusShipped}
		if err := client.UpdateTransaction(ctx, pspOrderID, update); err != nil {
			logger.WithContext(ctx).Error().
				Err(err).
				Str("order_number", order.OrderNumber).
				Msg("Failed to push shipped update")
		}
	}

	if target == method.StatusRefunded && previousStatus == method.StatusCompleted {
		amount := cmd.AmountRefunded
		if amount <= 0 {
			amount = msp.NewMoney(order.Total, order.CurrencyCode).Amount
		}
		refund := &msp.RefundRequest{
			Amount:      amount,
			Currency:    order.CurrencyCode,
			Description: "Refund for Order #" + order.OrderNumber,
		}
		if err := client.Refund(ctx, pspOrderID, refund); err != nil {
			logger.WithContext(ctx).Error().
				Err(err).
				Str("order_number", order.OrderNumber).
				Msg("Failed to push refund")
		}
	}
}
