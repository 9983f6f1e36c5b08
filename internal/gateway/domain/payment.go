package domain

import (
	"context"
	"errors"
	"time"
)

var ErrPaymentNotFound = errors.New("payment record not found")

// PaymentRecord is the plugin-owned snapshot of one order's payment, created
// at confirmation time and updated once the PSP transaction id is known.
// Never deleted by this service.
type PaymentRecord struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	OrderID            uint      `json:"order_id" gorm:"not null;index"`
	OrderNumber        string    `json:"order_number" gorm:"not null;uniqueIndex"`
	MethodID           uint      `json:"payment_method_id"`
	PaymentName        string    `json:"payment_name"`
	OrderTotal         float64   `json:"order_total" gorm:"not null"`
	Currency           string    `json:"currency" gorm:"default:'EUR'"`
	CostPerTransaction float64   `json:"cost_per_transaction"`
	CostPercent        float64   `json:"cost_percent"`
	TaxID              int       `json:"tax_id"`
	TransactionID      string    `json:"transaction_id"`
	Gateway            string    `json:"gateway"`
	IPAddress          string    `json:"ip_address"`
	Status             string    `json:"status" gorm:"default:'NEW'"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (PaymentRecord) TableName() string {
	return "payment_records"
}

// PaymentRepository defines the contract for payment record access
type PaymentRepository interface {
	// Create stores the snapshot for an order, replacing an earlier one from
	// a failed checkout attempt of the same order
	Create(ctx context.Context, record *PaymentRecord) error
	FindByID(ctx context.Context, id uint) (*PaymentRecord, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*PaymentRecord, error)
	FindAll(ctx context.Context, limit, offset int) ([]PaymentRecord, error)
	SetTransaction(ctx context.Context, orderNumber, transactionID, status string) error
	SetStatus(ctx context.Context, orderNumber, status string) error
}
