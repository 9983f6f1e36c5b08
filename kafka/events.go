package kafka

import "time"

// Topics
const (
	TopicPaymentStatusChanged = "payment.status.changed"
)

// Event types
const (
	EventTypePaymentStatusChanged = "payment.status.changed"
)

// PaymentStatusChangedEvent is published after the reconciler applies a
// status transition to an order. Consumers (fulfilment, accounting) act on
// it; delivery is best-effort and never blocks the transition.
type PaymentStatusChangedEvent struct {
	EventID          string    `json:"event_id"`
	EventType        string    `json:"event_type"`
	Timestamp        time.Time `json:"timestamp"`
	OrderNumber      string    `json:"order_number"`
	MethodID         uint      `json:"payment_method_id"`
	Gateway          string    `json:"gateway"`
	PSPStatus        string    `json:"psp_status"`
	OrderStatus      string    `json:"order_status"`
	TransactionID    string    `json:"transaction_id"`
	CustomerNotified bool      `json:"customer_notified"`
}
