package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	// Swagger UI
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// ListMethods godoc
// @Summary List payment methods
// @Description List payment methods applicable to a cart amount and country, with issuer lists for bank-redirect gateways
// @Tags Checkout
// @Produce json
// @Param amount query number false "Cart total"
// @Param country query string false "ISO 3166-1 alpha-2 country"
// @Success 200 {object} object{success=bool,data=object{methods=array,total=int}}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/checkout/methods [get]
func (h *GatewayHandler) ListMethodsDoc() {}

// SelectIssuer godoc
// @Summary Select an issuing bank
// @Description Remember the issuing bank picked for a bank-redirect payment method
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path int true "Payment method ID"
// @Param request body object{session_id=string,issuer=string} true "Issuer selection"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/checkout/methods/{id}/issuer [post]
func (h *GatewayHandler) SelectIssuerDoc() {}

// ConfirmOrder godoc
// @Summary Confirm an order and start payment
// @Description Assemble the order request, create the transaction at the provider and return the hosted payment page URL
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body object{order_number=string,method_id=int,issuer=string,session_id=string,locale=string} true "Checkout confirmation"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 502 {object} object{success=bool,error=string}
// @Router /api/checkout/confirm [post]
func (h *GatewayHandler) ConfirmOrderDoc() {}

// Notification godoc
// @Summary Payment status webhook
// @Description Receive a signed status report from the provider and reconcile the order status
// @Tags Payments
// @Accept json
// @Produce plain
// @Param on query string true "Provider order ID"
// @Param pm query int true "Payment method ID"
// @Success 200 {string} string "OK"
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/payments/notification [post]
func (h *GatewayHandler) NotificationDoc() {}

// CancelPayment godoc
// @Summary Cancel a payment
// @Description Mark an order cancelled after the shopper aborted the hosted payment page
// @Tags Payments
// @Produce json
// @Param on query string true "Provider order ID"
// @Param pm query int true "Payment method ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/payments/cancel [get]
func (h *GatewayHandler) CancelPaymentDoc() {}

// ListPayments godoc
// @Summary List payment records
// @Description Page through payment snapshots (Admin only)
// @Tags Payments
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=object{payments=array,total=int}}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/payments [get]
func (h *GatewayHandler) ListPaymentsDoc() {}

// GetPayment godoc
// @Summary Get a payment record
// @Description Get one payment snapshot by record ID (Admin only)
// @Tags Payments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Payment record ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 403 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/payments/{id} [get]
func (h *GatewayHandler) GetPaymentDoc() {}

// GetOrderPayment godoc
// @Summary Get an order's payment record
// @Description Get the payment snapshot of one order (Admin only)
// @Tags Payments
// @Security BearerAuth
// @Produce json
// @Param order_number path string true "Order number"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 403 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/orders/{order_number}/payment [get]
func (h *GatewayHandler) GetOrderPaymentDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func (h *GatewayHandler) HealthCheckDoc() {}
