package domain

import (
	"context"
	"errors"
	"time"
)

var ErrOrderNotFound = errors.New("order not found")

// Host order-status codes. The mapping from PSP statuses to these codes is
// per-method configuration; only the shipped code is fixed because it is the
// terminal state the reconciler must never downgrade.
const (
	OrderStatusShipped = "S"
)

// AddressBlock is one billing or shipping address of an order
type AddressBlock struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2"`
	ZipCode   string `json:"zip"`
	City      string `json:"city"`
	State     string `json:"state"`
	Country   string `json:"country"` // ISO 3166-1 alpha-2
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// OrderItem is one purchased line of an order
type OrderItem struct {
	ID                        uint    `json:"id" gorm:"primaryKey"`
	OrderID                   uint    `json:"order_id" gorm:"index"`
	ProductID                 uint    `json:"product_id"`
	Name                      string  `json:"name"`
	Description               string  `json:"description"`
	Quantity                  int     `json:"quantity"`
	PriceWithoutTax           float64 `json:"price_without_tax"`
	DiscountedPriceWithoutTax float64 `json:"discounted_price_without_tax"`
	Tax                       float64 `json:"tax"`
	// TaxPercent is the host's precomputed per-line tax rate; zero means the
	// host did not provide one and it must be derived from Tax and price.
	TaxPercent float64 `json:"tax_percent"`
	WeightUnit string  `json:"weight_unit"`
	Weight     float64 `json:"weight"`
}

// TableName specifies the table name
func (OrderItem) TableName() string {
	return "order_items"
}

// Order is the host-side order record. This service reads it at checkout
// confirmation and conditionally mutates its status on PSP notifications.
type Order struct {
	ID             uint         `json:"id" gorm:"primaryKey"`
	OrderNumber    string       `json:"order_number" gorm:"not null;uniqueIndex"`
	UserID         uint         `json:"user_id" gorm:"index"`
	MethodID       uint         `json:"payment_method_id"`
	Total          float64      `json:"total" gorm:"not null"`
	CurrencyCode   string       `json:"currency_code" gorm:"default:'EUR'"`
	ShipmentPrice  float64      `json:"shipment_price"`
	ShipmentTax    float64      `json:"shipment_tax"`
	PaymentPrice   float64      `json:"payment_price"`
	PaymentTax     float64      `json:"payment_tax"`
	CouponCode     string       `json:"coupon_code"`
	CouponDiscount float64      `json:"coupon_discount"`
	// CouponPercent > 0 marks a percentage coupon; otherwise CouponDiscount
	// is a flat amount emitted as its own cart line.
	CouponPercent  float64      `json:"coupon_percent"`
	BillDiscount   float64      `json:"bill_discount"`
	InvoiceNumber  string       `json:"invoice_number"`
	OrderStatus    string       `json:"order_status" gorm:"default:'P'"`
	ShipSameAsBill bool         `json:"ship_same_as_bill"`
	Billing        AddressBlock `json:"billing" gorm:"embedded;embeddedPrefix:bill_"`
	Shipping       AddressBlock `json:"shipping" gorm:"embedded;embeddedPrefix:ship_"`
	Items          []OrderItem  `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// DeliveryAddress returns the shipping block, falling back to billing when
// the host marked them identical
func (o *Order) DeliveryAddress() AddressBlock {
	if o.ShipSameAsBill {
		return o.Billing
	}
	return o.Shipping
}

// OrderHistory is one applied status transition. It is the idempotency
// source of truth for the reconciler.
type OrderHistory struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	OrderNumber      string    `json:"order_number" gorm:"not null;index"`
	StatusCode       string    `json:"status_code" gorm:"not null"`
	CustomerNotified bool      `json:"customer_notified"`
	Comments         string    `json:"comments"`
	CreatedAt        time.Time `json:"created_at"`
}

// TableName specifies the table name
func (OrderHistory) TableName() string {
	return "order_histories"
}

// OrderRepository defines the contract for host order access
type OrderRepository interface {
	FindByNumber(ctx context.Context, orderNumber string) (*Order, error)
	// ApplyStatus performs a compare-and-swap update: the status is written
	// only when it differs from the current one and the order has not
	// reached the shipped state. Returns whether a row was updated.
	ApplyStatus(ctx context.Context, orderNumber, status string) (bool, error)
	AppendHistory(ctx context.Context, history *OrderHistory) error
	HistoryContains(ctx context.Context, orderNumber, statusCode string) (bool, error)
}
