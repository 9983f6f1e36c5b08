package command

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/storekit/multisafepay-gateway/internal/cart"
	"github.com/storekit/multisafepay-gateway/internal/gateway/domain"
	"github.com/storekit/multisafepay-gateway/internal/msp"
	"github.com/storekit/multisafepay-gateway/pkg/logger"
)

// ErrPSPUnavailable hides transport details from callers; the order stays in
// its pre-payment state and the shopper may retry.
var ErrPSPUnavailable = errors.New("payment provider unavailable")

// ErrCartRequired is returned for gateways whose terms demand itemized carts
// when the order carries no lines
var ErrCartRequired = errors.New("payment method requires an itemized shopping cart")

const (
	pluginShop    = "StoreKit"
	pluginVersion = "1.0.0"
)

// ConfirmOrderCommand starts a payment for an order at checkout confirmation
type ConfirmOrderCommand struct {
	OrderNumber string
	MethodID    uint
	// Issuer is the shopper's pre-selected issuing bank. When empty the
	// session store is consulted for a selection made on an earlier page.
	Issuer      string
	SessionID   string
	Locale      string
	ClientIP    string
	ForwardedIP string
	UserAgent   string
	Referrer    string
}

// ConfirmOrderResult carries the hosted payment page the shopper must visit
type ConfirmOrderResult struct {
	OrderNumber   string `json:"order_number"`
	Gateway       string `json:"gateway"`
	TransactionID string `json:"transaction_id"`
	PaymentURL    string `json:"payment_url"`
}

// ConfirmOrderHandler handles the confirm order command
type ConfirmOrderHandler struct {
	orders   domain.OrderRepository
	payments domain.PaymentRepository
	methods  domain.MethodRepository
	issuers  domain.IssuerSelections
	clients  domain.PSPClientFactory

	shopBaseURL string
	orderPrefix string
}

// NewConfirmOrderHandler creates a new confirm order handler
func NewConfirmOrderHandler(
	orders domain.OrderRepository,
	payments domain.PaymentRepository,
	methods domain.MethodRepository,
	issuers domain.IssuerSelections,
	clients domain.PSPClientFactory,
	shopBaseURL string,
	orderPrefix string,
) *ConfirmOrderHandler {
	return &ConfirmOrderHandler{
		orders:      orders,
		payments:    payments,
		methods:     methods,
		issuers:     issuers,
		clients:     clients,
		shopBaseURL: shopBaseURL,
		orderPrefix: orderPrefix,
	}
}

// Handle executes the confirm order command
func (h *ConfirmOrderHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) (*ConfirmOrderResult, error) {
	method, err := h.methods.FindByID(ctx, cmd.MethodID)
	if err != nil {
		return nil, err
	}
	if !method.Active {
		return nil, domain.ErrMethodNotFound
	}

	order, err := h.orders.FindByNumber(ctx, cmd.OrderNumber)
	if err != nil {
		return nil, err
	}

	gateway := method.GatewayCode()
	if domain.GatewaysRequiringCart[gateway] && len(order.Items) == 0 {
		return nil, ErrCartRequired
	}

	total := msp.Round2(order.Total)
	currency := order.CurrencyCode

	record := &domain.PaymentRecord{
		OrderID:            order.ID,
		OrderNumber:        order.OrderNumber,
		MethodID:           method.ID,
		PaymentName:        method.Name,
		OrderTotal:         total,
		Currency:           currency,
		CostPerTransaction: method.CostPerTransaction,
		CostPercent:        method.CostPercent,
		TaxID:              method.TaxID,
		Gateway:            gateway,
		IPAddress:          cmd.ClientIP,
	}
	if err := h.payments.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create payment record: %w", err)
	}

	issuer := cmd.Issuer
	if issuer == "" && gateway == domain.GatewayIdeal && cmd.SessionID != "" {
		stored, err := h.issuers.Get(ctx, cmd.SessionID, method.ID)
		if err != nil {
			logger.WithContext(ctx).Warn().
				Err(err).
				Str("order_number", order.OrderNumber).
				Msg("Issuer selection lookup failed, continuing without issuer")
		} else {
			issuer = stored
		}
	}

	request := h.buildOrderRequest(order, method, cmd, issuer, total, currency)

	client := h.clients(method)
	tx, err := client.CreateTransaction(ctx, request)
	if err != nil {
		logger.WithContext(ctx).Error().
			Err(err).
			Str("order_number", order.OrderNumber).
			Str("gateway", gateway).
			Msg("Transaction creation failed")
		return nil, ErrPSPUnavailable
	}

	transactionID := strconv.FormatInt(tx.TransactionID, 10)
	if err := h.payments.SetTransaction(ctx, order.OrderNumber, transactionID, "NEW"); err != nil {
		return nil, fmt.Errorf("failed to store transaction id: %w", err)
	}

	if err := h.orders.AppendHistory(ctx, &domain.OrderHistory{
		OrderNumber:      order.OrderNumber,
		StatusCode:       order.OrderStatus,
		CustomerNotified: true,
		Comments:         "Payment started via " + method.Name,
	}); err != nil {
		return nil, fmt.Errorf("failed to append order history: %w", err)
	}

	logger.WithContext(ctx).Info().
		Str("order_number", order.OrderNumber).
		Str("gateway", gateway).
		Str("transaction_id", transactionID).
		Msg("Transaction created")

	return &ConfirmOrderResult{
		OrderNumber:   order.OrderNumber,
		Gateway:       gateway,
		TransactionID: transactionID,
		PaymentURL:    tx.PaymentURL,
	}, nil
}

func (h *ConfirmOrderHandler) buildOrderRequest(
	order *domain.Order,
	method *domain.PaymentMethodConfig,
	cmd ConfirmOrderCommand,
	issuer string,
	total float64,
	currency string,
) *msp.OrderRequest {
	gateway := method.GatewayCode()
	pspOrderID := h.orderPrefix + order.OrderNumber

	request := &msp.OrderRequest{
		Type:        msp.TypeRedirect,
		OrderID:     pspOrderID,
		Gateway:     gateway,
		Currency:    currency,
		Amount:      msp.NewMoney(total, currency).Amount,
		Description: "Order #" + order.OrderNumber,
		DaysActive:  method.DaysActive,
		PaymentOptions: msp.PaymentOptions{
			NotificationURL: h.callbackURL("/api/payments/notification", pspOrderID, method.ID, "initial"),
			RedirectURL:     h.callbackURL("/api/payments/notification", pspOrderID, method.ID, "redirect"),
			CancelURL:       h.callbackURL("/api/payments/cancel", pspOrderID, method.ID, ""),
			CloseWindow:     true,
		},
		Customer: customerDetails(order.Billing, order.Billing.Email, cmd, order.UserID),
		Plugin: msp.PluginDetails{
			Shop:          pluginShop,
			ShopVersion:   pluginVersion,
			PluginVersion: pluginVersion,
			ShopRootURL:   h.shopBaseURL,
		},
	}

	// A pre-selected issuer lets the PSP skip its bank-selection page
	if gateway == domain.GatewayIdeal && issuer != "" {
		request.Type = msp.TypeDirect
		request.GatewayInfo = &msp.GatewayInfo{IssuerID: issuer}
	}

	delivery := deliveryDetails(order, cmd)
	request.Delivery = &delivery

	items := cart.Build(order, currency)
	if len(items) > 0 {
		request.ShoppingCart = &msp.ShoppingCart{Items: items}
	}

	return request
}

func (h *ConfirmOrderHandler) callbackURL(path, pspOrderID string, methodID uint, callbackType string) string {
	q := url.Values{}
	q.Set("on", pspOrderID)
	q.Set("pm", strconv.FormatUint(uint64(methodID), 10))
	if callbackType != "" {
		q.Set("type", callbackType)
	}
	return h.shopBaseURL + path + "?" + q.Encode()
}
