package query

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/storekit/multisafepay-gateway/internal/gateway/domain"
	"github.com/storekit/multisafepay-gateway/internal/msp"
)

type MockMethodRepository struct {
	mock.Mock
}

func (m *MockMethodRepository) FindByID(ctx context.Context, id uint) (*domain.PaymentMethodConfig, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentMethodConfig), args.Error(1)
}

func (m *MockMethodRepository) FindActive(ctx context.Context) ([]domain.PaymentMethodConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentMethodConfig), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, record *domain.PaymentRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uint) (*domain.PaymentRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.PaymentRecord, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.PaymentRecord, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRepository) SetTransaction(ctx context.Context, orderNumber, transactionID, status string) error {
	args := m.Called(ctx, orderNumber, transactionID, status)
	return args.Error(0)
}

func (m *MockPaymentRepository) SetStatus(ctx context.Context, orderNumber, status string) error {
	args := m.Called(ctx, orderNumber, status)
	return args.Error(0)
}

type MockIssuerSelections struct {
	mock.Mock
}

func (m *MockIssuerSelections) Set(ctx context.Context, sessionID string, methodID uint, issuer string) error {
	args := m.Called(ctx, sessionID, methodID, issuer)
	return args.Error(0)
}

func (m *MockIssuerSelections) Get(ctx context.Context, sessionID string, methodID uint) (string, error) {
	args := m.Called(ctx, sessionID, methodID)
	return args.String(0), args.Error(1)
}

type MockPSPClient struct {
	mock.Mock
}

func (m *MockPSPClient) CreateTransaction(ctx context.Context, order *msp.OrderRequest) (*msp.Transaction, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*msp.Transaction), args.Error(1)
}

func (m *MockPSPClient) GetTransaction(ctx context.Context, orderID string) (*msp.Transaction, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*msp.Transaction), args.Error(1)
}

func (m *MockPSPClient) UpdateTransaction(ctx context.Context, orderID string, update *msp.UpdateRequest) error {
	args := m.Called(ctx, orderID, update)
	return args.Error(0)
}

func (m *MockPSPClient) Refund(ctx context.Context, orderID string, refund *msp.RefundRequest) error {
	args := m.Called(ctx, orderID, refund)
	return args.Error(0)
}

func (m *MockPSPClient) ListIssuers(ctx context.Context, gateway string) ([]msp.Issuer, error) {
	args := m.Called(ctx, gateway)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]msp.Issuer), args.Error(1)
}

func (m *MockPSPClient) VerifyNotification(payload []byte, authHeader string) bool {
	args := m.Called(payload, authHeader)
	return args.Bool(0)
}

func staticClientFactory(client domain.PSPClient) domain.PSPClientFactory {
	return func(method *domain.PaymentMethodConfig) domain.PSPClient {
		return client
	}
}
