package domain

import (
	"context"

	"github.com/storekit/multisafepay-gateway/internal/msp"
)

// PSPClient is the outbound contract with the payment service provider.
// One client per payment-method configuration; the method's API key selects
// the merchant account.
type PSPClient interface {
	CreateTransaction(ctx context.Context, order *msp.OrderRequest) (*msp.Transaction, error)
	GetTransaction(ctx context.Context, orderID string) (*msp.Transaction, error)
	UpdateTransaction(ctx context.Context, orderID string, update *msp.UpdateRequest) error
	Refund(ctx context.Context, orderID string, refund *msp.RefundRequest) error
	ListIssuers(ctx context.Context, gateway string) ([]msp.Issuer, error)
	VerifyNotification(payload []byte, authHeader string) bool
}

// PSPClientFactory builds a client for a payment-method configuration
type PSPClientFactory func(method *PaymentMethodConfig) PSPClient

// IssuerSelections is the session-scoped store of pre-selected issuing banks
type IssuerSelections interface {
	Set(ctx context.Context, sessionID string, methodID uint, issuer string) error
	Get(ctx context.Context, sessionID string, methodID uint) (string, error)
}
