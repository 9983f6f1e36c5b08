package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/storekit/multisafepay-gateway/internal/msp"
)

var ErrMethodNotFound = errors.New("payment method not found")

// Gateways whose terms require the full shopping cart in the order request
var GatewaysRequiringCart = map[string]bool{
	"AFTERPAY":   true,
	"EINVOICE":   true,
	"IN3":        true,
	"KLARNA":     true,
	"PAYAFTER":   true,
	"BNPL_INSTM": true,
}

// GatewayIdeal is the bank-redirect gateway that needs a pre-selected issuer
const GatewayIdeal = "IDEAL"

// PaymentMethodConfig is one per-installation payment method. Read-only from
// this service's perspective; owned by the host configuration storage.
type PaymentMethodConfig struct {
	ID                 uint    `json:"id" gorm:"primaryKey"`
	Name               string  `json:"name" gorm:"not null"`
	Gateway            string  `json:"gateway"`
	AccountID          string  `json:"account_id"`
	SiteID             string  `json:"site_id"`
	SiteCode           string  `json:"site_code"`
	APIKey             string  `json:"-"`
	Sandbox            bool    `json:"sandbox"`
	Active             bool    `json:"active" gorm:"default:true"`
	CostPerTransaction float64 `json:"cost_per_transaction"`
	CostPercent        float64 `json:"cost_percent"`
	TaxID              int     `json:"tax_id"`
	MinAmount          float64 `json:"min_amount"`
	MaxAmount          float64 `json:"max_amount"`
	// Countries is a semicolon-separated ISO country list; empty allows all
	Countries  string `json:"countries"`
	DaysActive int    `json:"days_active"`

	// PSP status -> host order-status code mapping
	StatusInitialized string `json:"status_initialized" gorm:"default:'P'"`
	StatusCompleted   string `json:"status_completed" gorm:"default:'C'"`
	StatusUncleared   string `json:"status_uncleared" gorm:"default:'P'"`
	StatusVoid        string `json:"status_void" gorm:"default:'X'"`
	StatusDeclined    string `json:"status_declined" gorm:"default:'D'"`
	StatusRefunded    string `json:"status_refunded" gorm:"default:'R'"`
	StatusExpired     string `json:"status_expired" gorm:"default:'X'"`
	StatusCancelled   string `json:"status_cancelled" gorm:"default:'X'"`
	StatusShipped     string `json:"status_shipped" gorm:"default:'S'"`

	// InvoiceStatuses is a semicolon-separated list of host status codes
	// that trigger an invoice push to the PSP
	InvoiceStatuses string    `json:"invoice_statuses" gorm:"default:'C'"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (PaymentMethodConfig) TableName() string {
	return "payment_method_configs"
}

// GatewayCode returns the configured gateway uppercased and trimmed; the
// merchant may have typed it in lowercase
func (m *PaymentMethodConfig) GatewayCode() string {
	return strings.ToUpper(strings.TrimSpace(m.Gateway))
}

// StatusFor maps a PSP transaction status to the configured host order
// status. Unknown statuses map to the empty string and must be ignored.
func (m *PaymentMethodConfig) StatusFor(pspStatus string) string {
	switch pspStatus {
	case msp.StatusInitialized:
		return m.StatusInitialized
	case msp.StatusCompleted:
		return m.StatusCompleted
	case msp.StatusUncleared:
		return m.StatusUncleared
	case msp.StatusVoid:
		return m.StatusVoid
	case msp.StatusDeclined:
		return m.StatusDeclined
	case msp.StatusRefunded:
		return m.StatusRefunded
	case msp.StatusExpired:
		return m.StatusExpired
	case msp.StatusCancelled:
		return m.StatusCancelled
	case msp.StatusShipped:
		return m.StatusShipped
	}
	return ""
}

// SalesPrice is the method's cost for a cart total:
// fee per transaction plus the configured percentage of the total.
func (m *PaymentMethodConfig) SalesPrice(total float64) float64 {
	return m.CostPerTransaction + total*m.CostPercent/100
}

// Applicable checks the amount and country conditions of the method. A zero
// max amount means no upper bound; an empty country list allows everywhere.
func (m *PaymentMethodConfig) Applicable(amount float64, country string) bool {
	if amount < m.MinAmount {
		return false
	}
	if m.MaxAmount > 0 && amount > m.MaxAmount {
		return false
	}

	countries := m.AllowedCountries()
	if len(countries) == 0 {
		return true
	}
	for _, c := range countries {
		if strings.EqualFold(c, country) {
			return true
		}
	}
	return false
}

// AllowedCountries splits the configured country list
func (m *PaymentMethodConfig) AllowedCountries() []string {
	if strings.TrimSpace(m.Countries) == "" {
		return nil
	}
	parts := strings.Split(m.Countries, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// TriggersInvoice reports whether the given host status code is in the
// configured invoice-trigger list
func (m *PaymentMethodConfig) TriggersInvoice(statusCode string) bool {
	for _, s := range strings.Split(m.InvoiceStatuses, ";") {
		if strings.TrimSpace(s) == statusCode {
			return true
		}
	}
	return false
}

// MethodRepository defines the contract for payment method configuration
type MethodRepository interface {
	FindByID(ctx context.Context, id uint) (*PaymentMethodConfig, error)
	FindActive(ctx context.Context) ([]PaymentMethodConfig, error)
}
