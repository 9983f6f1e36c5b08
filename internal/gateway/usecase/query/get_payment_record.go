package query

import (
	"context"

	"github.com/storekit/multisafepay-gateway/internal/gateway/domain"
)

// GetPaymentRecordQuery fetches one payment snapshot, by record id or by
// the order it belongs to. RecordID wins when both are set.
type GetPaymentRecordQuery struct {
	RecordID    uint
	OrderNumber string
}

// GetPaymentRecordHandler handles the get payment record query
type GetPaymentRecordHandler struct {
	payments domain.PaymentRepository
}

// NewGetPaymentRecordHandler creates a new get payment record handler
func NewGetPaymentRecordHandler(payments domain.PaymentRepository) *GetPaymentRecordHandler {
	return &GetPaymentRecordHandler{payments: payments}
}

// Handle executes the get payment record query
func (h *GetPaymentRecordHandler) Handle(ctx context.Context, q GetPaymentRecordQuery) (*domain.PaymentRecord, error) {
	if q.RecordID > 0 {
		return h.payments.FindByID(ctx, q.RecordID)
	}
	return h.payments.FindByOrderNumber(ctx, q.OrderNumber)
}
