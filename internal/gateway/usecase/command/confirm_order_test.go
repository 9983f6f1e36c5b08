package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storekit/multisafepay-gateway/internal/gateway/domain"
	"github.com/storekit/multisafepay-gateway/internal/msp"
)

func confirmMethod() *domain.PaymentMethodConfig {
	return &domain.PaymentMethodConfig{
		ID:         1,
		Name:       "Credit Card",
		Gateway:    "VISA",
		Active:     true,
		DaysActive: 30,
	}
}

func confirmOrder() *domain.Order {
	return &domain.Order{
		ID:           10,
		OrderNumber:  "1000123",
		UserID:       42,
		MethodID:     1,
		Total:        49.99,
		CurrencyCode: "EUR",
		OrderStatus:  "P",
		Billing: domain.AddressBlock{
			FirstName: "Jip",
			LastName:  "Jansen",
			Address1:  "Kraanspoor 39",
			ZipCode:   "1033SC",
			City:      "Amsterdam",
			Country:   "NL",
			Email:     "jip@example.com",
		},
		ShipSameAsBill: true,
		Items: []domain.OrderItem{
			{ProductID: 77, Name: "Wireless Mouse", Quantity: 2, PriceWithoutTax: 20.00, Tax: 4.20},
		},
	}
}

type confirmFixture struct {
	orders   *MockOrderRepository
	payments *MockPaymentRepository
	methods  *MockMethodRepository
	issuers  *MockIssuerSelections
	client   *MockPSPClient
	handler  *ConfirmOrderHandler
}

func newConfirmFixture() *confirmFixture {
	f := &confirmFixture{
		orders:   new(MockOrderRepository),
		payments: new(MockPaymentRepository),
		methods:  new(MockMethodRepository),
		issuers:  new(MockIssuerSelections),
		client:   new(MockPSPClient),
	}
	f.handler = NewConfirmOrderHandler(
		f.orders, f.payments, f.methods, f.issuers, staticClientFactory(f.client),
		"https://shop.example.com", "SHOP-",
	)
	return f
}

func TestConfirmOrderRedirect(t *testing.T) {
	f := newConfirmFixture()
	f.methods.On("FindByID", mock.Anything, uint(1)).Return(confirmMethod(), nil)
	f.orders.On("FindByNumber", mock.Anything, "1000123").Return(confirmOrder(), nil)
	f.payments.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.PaymentRecord) bool {
		return r.OrderNumber == "1000123" && r.Gateway == "VISA" && r.OrderTotal == 49.99
	})).Return(nil)

	var captured *msp.OrderRequest
	f.client.On("CreateTransaction", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(*msp.OrderRequest)
	}).Return(&msp.Transaction{
		TransactionID: 4051823,
		OrderID:       "SHOP-1000123",
		Status:        msp.StatusInitialized,
		PaymentURL:    "https://pay.example.com/4051823",
	}, nil)

	f.payments.On("SetTransaction", mock.Anything, "1000123", "4051823", "NEW").Return(nil)
	f.orders.On("AppendHistory", mock.Anything, mock.Anything).Return(nil)

	result, err := f.handler.Handle(context.Background(), ConfirmOrderCommand{
		OrderNumber: "1000123",
		MethodID:    1,
		Locale:      "nl_NL",
		ClientIP:    "203.0.113.7",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/4051823", result.PaymentURL)
	assert.Equal(t, "4051823", result.TransactionID)
	assert.Equal(t, "VISA", result.Gateway)

	require.NotNil(t, captured)
	assert.Equal(t, msp.TypeRedirect, captured.Type)
	assert.Equal(t, "SHOP-1000123", captured.OrderID)
	assert.Equal(t, "VISA", captured.Gateway)
	assert.Equal(t, int64(4999), captured.Amount)
	assert.Equal(t, "EUR", captured.Currency)
	assert.Equal(t, 30, captured.DaysActive)
	assert.Nil(t, captured.GatewayInfo)

	// Address split into street and house number
	assert.Equal(t, "Kraanspoor", captured.Customer.Address1)
	assert.Equal(t, "39", captured.Customer.HouseNumber)
	assert.Equal(t, "jip@example.com", captured.Customer.Email)
	assert.Equal(t, "42", captured.Customer.Reference)
	assert.Equal(t, "nl_NL", captured.Customer.Locale)
	assert.Equal(t, "203.0.113.7", captured.Customer.IPAddress)

	// Delivery falls back to billing when marked identical
	require.NotNil(t, captured.Delivery)
	assert.Equal(t, "Amsterdam", captured.Delivery.City)
	assert.Equal(t, "jip@example.com", captured.Delivery.Email)

	// Callback URLs carry the prefixed order id and method id
	assert.Contains(t, captured.PaymentOptions.NotificationURL, "on=SHOP-1000123")
	assert.Contains(t, captured.PaymentOptions.NotificationURL, "pm=1")
	assert.Contains(t, captured.PaymentOptions.NotificationURL, "type=initial")
	assert.Contains(t, captured.PaymentOptions.RedirectURL, "type=redirect")
	assert.Contains(t, captured.PaymentOptions.CancelURL, "/api/payments/cancel")

	require.NotNil(t, captured.ShoppingCart)
	assert.Len(t, captured.ShoppingCart.Items, 1)
}

func TestConfirmOrderIdealWithIssuer(t *testing.T) {
	f := newConfirmFixture()
	method := confirmMethod()
	method.Gateway = "IDEAL"
	f.methods.On("FindByID", mock.Anything, uint(1)).Return(method, nil)
	f.orders.On("FindByNumber", mock.Anything, "1000123").Return(confirmOrder(), nil)
	f.payments.On("Create", mock.Anything, mock.Anything).Return(nil)

	var captured *msp.OrderRequest
	f.client.On("CreateTransaction", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(*msp.OrderRequest)
	}).Return(&msp.Transaction{TransactionID: 1, PaymentURL: "https://pay.example.com/1"}, nil)
	f.payments.On("SetTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.orders.On("AppendHistory", mock.Anything, mock.Anything).Return(nil)

	_, err := f.handler.Handle(context.Background(), ConfirmOrderCommand{
		OrderNumber: "1000123",
		MethodID:    1,
		Issuer:      "0721",
	})

	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Equal(t, msp.TypeDirect, captured.Type)
	require.NotNil(t, captured.GatewayInfo)
	assert.Equal(t, "0721", captured.GatewayInfo.IssuerID)
	f.issuers.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmOrderIdealIssuerFromSession(t *testing.T) {
	f := newConfirmFixture()
	method := confirmMethod()
	method.Gateway = "IDEAL"
	f.methods.On("FindByID", mock.Anything, uint(1)).Return(method, nil)
	f.orders.On("FindByNumber", mock.Anything, "1000123").Return(confirmOrder(), nil)
	f.payments.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.issuers.On("Get", mock.Anything, "sess-1", uint(1)).Return("3151", nil)

	var captured *msp.OrderRequest
	f.client.On("CreateTransaction", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(*msp.OrderRequest)
	}).Return(&msp.Transaction{TransactionID: 1, PaymentURL: "https://pay.example.com/1"}, nil)
	f.payments.On("SetTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.orders.On("AppendHistory", mock.Anything, mock.Anything).Return(nil)

	_, err := f.handler.Handle(context.Background(), ConfirmOrderCommand{
		OrderNumber: "1000123",
		MethodID:    1,
		SessionID:   "sess-1",
	})

	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Equal(t, msp.TypeDirect, captured.Type)
	require.NotNil(t, captured.GatewayInfo)
	assert.Equal(t, "3151", captured.GatewayInfo.IssuerID)
}

func TestConfirmOrderIdealWithoutIssuerStaysRedirect(t *testing.T) {
	f := newConfirmFixture()
	method := confirmMethod()
	method.Gateway = "IDEAL"
	f.methods.On("FindByID", mock.Anything, uint(1)).Return(method, nil)
	f.orders.On("FindByNumber", mock.Anything, "1000123").Return(confirmOrder(), nil)
	f.payments.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.issuers.On("Get", mock.Anything, "sess-1", uint(1)).Return("", nil)

	var captured *msp.OrderRequest
	f.client.On("CreateTransaction", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(*msp.OrderRequest)
	}).Return(&msp.Transaction{TransactionID: 1, PaymentURL: "https://pay.example.com/1"}, nil)
	f.payments.On("SetTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.orders.On("AppendHistory", mock.Anything, mock.Anything).Return(nil)

	_, err := f.handler.Handle(context.Background(), ConfirmOrderCommand{
		OrderNumber: "1000123",
		MethodID:    1,
		SessionID:   "sess-1",
	})

	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Equal(t, msp.TypeRedirect, captured.Type)
	assert.Nil(t, captured.GatewayInfo)
}

func TestConfirmOrderCartRequiredGateway(t *testing.T) {
	f := newConfirmFixture()
	method := confirmMethod()
	method.Gateway = "KLARNA"
	order := confirmOrder()
	order.Items = nil
	f.methods.On("FindByID", mock.Anything, uint(1)).Return(method, nil)
	f.orders.On("FindByNumber", mock.Anything, "1000123").Return(order, nil)

	_, err := f.handler.Handle(context.Background(), ConfirmOrderCommand{
		OrderNumber: "1000123",
		MethodID:    1,
	})

	assert.ErrorIs(t, err, ErrCartRequired)
	f.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.client.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything)
}

func TestConfirmOrderPSPFailure(t *testing.T) {
	f := newConfirmFixture()
	f.methods.On("FindByID", mock.Anything, uint(1)).Return(confirmMethod(), nil)
	f.orders.On("FindByNumber", mock.Anything, "1000123").Return(confirmOrder(), nil)
	f.payments.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.client.On("CreateTransaction", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	_, err := f.handler.Handle(context.Background(), ConfirmOrderCommand{
		OrderNumber: "1000123",
		MethodID:    1,
	})

	assert.ErrorIs(t, err, ErrPSPUnavailable)
	// The order never advances toward a paid state on transport failure
	f.payments.AssertNotCalled(t, "SetTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.orders.AssertNotCalled(t, "ApplyStatus", mock.Anything, mock.Anything, mock.Anything)
	f.orders.AssertNotCalled(t, "AppendHistory", mock.Anything, mock.Anything)
}

func TestConfirmOrderRetryAfterPSPFailure(t *testing.T) {
	f := newConfirmFixture()
	f.methods.On("FindByID", mock.Anything, uint(1)).Return(confirmMethod(), nil)
	f.orders.On("FindByNumber", mock.Anything, "1000123").Return(confirmOrder(), nil)
	f.payments.On("Create", mock.Anything, mock.Anything).Return(nil)

	f.client.On("CreateTransaction", mock.Anything, mock.Anything).
		Return(nil, assert.AnError).Once()
	f.client.On("CreateTransaction", mock.Anything, mock.Anything).
		Return(&msp.Transaction{
			TransactionID: 4051823,
			OrderID:       "SHOP-1000123",
			Status:        msp.StatusInitialized,
			PaymentURL:    "https://pay.example.com/4051823",
		}, nil).Once()
	f.payments.On("SetTransaction", mock.Anything, "1000123", "4051823", "NEW").Return(nil)
	f.orders.On("AppendHistory", mock.Anything, mock.Anything).Return(nil)

	cmd := ConfirmOrderCommand{
		OrderNumber: "1000123",
		MethodID:    1,
	}

	_, err := f.handler.Handle(context.Background(), cmd)
	require.ErrorIs(t, err, ErrPSPUnavailable)

	// The snapshot write replaces the row left by the failed attempt, so the
	// shopper can confirm the same order again
	result, err := f.handler.Handle(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/4051823", result.PaymentURL)
	f.payments.AssertNumberOfCalls(t, "Create", 2)
}

func TestConfirmOrderInactiveMethod(t *testing.T) {
	f := newConfirmFixture()
	method := confirmMethod()
	method.Active = false
	f.methods.On("FindByID", mock.Anything, uint(1)).Return(method, nil)

	_, err := f.handler.Handle(context.Background(), ConfirmOrderCommand{
		OrderNumber: "1000123",
		MethodID:    1,
	})

	assert.ErrorIs(t, err, domain.ErrMethodNotFound)
	f.orders.AssertNotCalled(t, "FindByNumber", mock.Anything, mock.Anything)
}

func TestConfirmOrderUnknownOrder(t *testing.T) {
	f := newConfirmFixture()
	f.methods.On("FindByID", mock.Anything, uint(1)).Return(confirmMethod(), nil)
	f.orders.On("FindByNumber", mock.Anything, "9999999").Return(nil, domain.ErrOrderNotFound)

	_, err := f.handler.Handle(context.Background(), ConfirmOrderCommand{
		OrderNumber: "9999999",
		MethodID:    1,
	})

	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}
