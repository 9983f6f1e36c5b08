//go:build wireinject
// +build wireinject

package gateway

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/storekit/multisafepay-gateway/internal/config"
	"github.com/storekit/multisafepay-gateway/internal/gateway/domain"
	"github.com/storekit/multisafepay-gateway/internal/gateway/handler"
	"github.com/storekit/multisafepay-gateway/internal/gateway/repository"
	"github.com/storekit/multisafepay-gateway/internal/gateway/usecase/command"
	"github.com/storekit/multisafepay-gateway/internal/gateway/usecase/query"
	"github.com/storekit/multisafepay-gateway/internal/msp"
	"github.com/storekit/multisafepay-gateway/internal/session"
	"github.com/storekit/multisafepay-gateway/kafka"
)

// Repository providers
func ProvideOrderRepository(db *gorm.DB) domain.OrderRepository {
	return repository.NewGormOrderRepositoryWithTracing(db)
}

func ProvidePaymentRepository(db *gorm.DB) domain.PaymentRepository {
	return repository.NewGormPaymentRepository(db)
}

func ProvideMethodRepository(db *gorm.DB) domain.MethodRepository {
	return repository.NewGormMethodRepository(db)
}

// ProvideIssuerSelections provides the session-scoped issuer store
func ProvideIssuerSelections(redisClient *redis.Client, cfg *config.Config) domain.IssuerSelections {
	return session.NewIssuerStore(redisClient, cfg.IssuerTTL)
}

// ProvidePSPClientFactory provides per-method PSP clients
func ProvidePSPClientFactory(cfg *config.Config) domain.PSPClientFactory {
	return func(method *domain.PaymentMethodConfig) domain.PSPClient {
		return msp.NewClient(method.APIKey, method.Sandbox, cfg.PSPTimeout)
	}
}

// ProvideEventPublisher adapts the optional Kafka publisher; a nil publisher
// disables event emission
func ProvideEventPublisher(publisher *kafka.Publisher) command.EventPublisher {
	if publisher == nil {
		return nil
	}
	return publisher
}

// Command Handlers Providers
func ProvideConfirmOrderHandler(
	orders domain.OrderRepository,
	payments domain.PaymentRepository,
	methods domain.MethodRepository,
	issuers domain.IssuerSelections,
	clients domain.PSPClientFactory,
	cfg *config.Config,
) *command.ConfirmOrderHandler {
	return command.NewConfirmOrderHandler(orders, payments, methods, issuers, clients, cfg.ShopBaseURL, cfg.OrderPrefix)
}

func ProvideReconcileStatusHandler(
	orders domain.OrderRepository,
	payments domain.PaymentRepository,
	methods domain.MethodRepository,
	clients domain.PSPClientFactory,
	publisher command.EventPublisher,
	cfg *config.Config,
) *command.ReconcileStatusHandler {
	return command.NewReconcileStatusHandler(orders, payments, methods, clients, publisher, cfg.OrderPrefix)
}

func ProvideCancelOrderHandler(
	orders domain.OrderRepository,
	payments domain.PaymentRepository,
	methods domain.MethodRepository,
) *command.CancelOrderHandler {
	return command.NewCancelOrderHandler(orders, payments, methods)
}

func ProvideSelectIssuerHandler(
	methods domain.MethodRepository,
	issuers domain.IssuerSelections,
) *command.SelectIssuerHandler {
	return command.NewSelectIssuerHandler(methods, issuers)
}

// Query Handlers Providers
func ProvideListMethodsHandler(
	methods domain.MethodRepository,
	issuers domain.IssuerSelections,
	clients domain.PSPClientFactory,
) *query.ListMethodsHandler {
	return query.NewListMethodsHandler(methods, issuers, clients)
}

func ProvideGetPaymentRecordHandler(payments domain.PaymentRepository) *query.GetPaymentRecordHandler {
	return query.NewGetPaymentRecordHandler(payments)
}

func ProvideListPaymentRecordsHandler(payments domain.PaymentRepository) *query.ListPaymentRecordsHandler {
	return query.NewListPaymentRecordsHandler(payments)
}

// ProvideGatewayHandler provides the HTTP handler
func ProvideGatewayHandler(
	confirmHandler *command.ConfirmOrderHandler,
	reconcileHandler *command.ReconcileStatusHandler,
	cancelHandler *command.CancelOrderHandler,
	selectIssuerHandler *command.SelectIssuerHandler,
	listMethodsHandler *query.ListMethodsHandler,
	getPaymentHandler *query.GetPaymentRecordHandler,
	listPaymentsHandler *query.ListPaymentRecordsHandler,
	methods domain.MethodRepository,
	clients domain.PSPClientFactory,
	cfg *config.Config,
) *handler.GatewayHandler {
	return handler.NewGatewayHandler(
		confirmHandler,
		reconcileHandler,
		cancelHandler,
		selectIssuerHandler,
		listMethodsHandler,
		getPaymentHandler,
		listPaymentsHandler,
		methods,
		clients,
		cfg.OrderPrefix,
	)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideOrderRepository,
	ProvidePaymentRepository,
	ProvideMethodRepository,
)

var InfrastructureSet = wire.NewSet(
	ProvideIssuerSelections,
	ProvidePSPClientFactory,
	ProvideEventPublisher,
)

var CommandHandlerSet = wire.NewSet(
	ProvideConfirmOrderHandler,
	ProvideReconcileStatusHandler,
	ProvideCancelOrderHandler,
	ProvideSelectIssuerHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideListMethodsHandler,
	ProvideGetPaymentRecordHandler,
	ProvideListPaymentRecordsHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	InfrastructureSet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHandler initializes the gateway handler with all dependencies
func InitializeHandler(db *gorm.DB, redisClient *redis.Client, publisher *kafka.Publisher, cfg *config.Config) (*handler.GatewayHandler, error) {
	wire.Build(
		AllHandlersSet,
		ProvideGatewayHandler,
	)
	return nil, nil
}
