package query

import (
	"context"

	"github.com/storekit/multisafepay-gateway/internal/gateway/domain"
)

// ListPaymentRecordsQuery pages through payment snapshots for back-office use
type ListPaymentRecordsQuery struct {
	Limit  int
	Offset int
}

// ListPaymentRecordsHandler handles the list payment records query
type ListPaymentRecordsHandler struct {
	payments domain.PaymentRepository
}

// NewListPaymentRecordsHandler creates a new list payment records handler
func NewListPaymentRecordsHandler(payments domain.PaymentRepository) *ListPaymentRecordsHandler {
	return &ListPaymentRecordsHandler{payments: payments}
}

// Handle executes the list payment records query
func (h *ListPaymentRecordsHandler) Handle(ctx context.Context, q ListPaymentRecordsQuery) ([]domain.PaymentRecord, error) {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return h.payments.FindAll(ctx, q.Limit, q.Offset)
}
