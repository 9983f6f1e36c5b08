package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/storekit/multisafepay-gateway/internal/gateway/domain"
	"github.com/storekit/multisafepay-gateway/internal/gateway/usecase/command"
	"github.com/storekit/multisafepay-gateway/internal/gateway/usecase/query"
	"github.com/storekit/multisafepay-gateway/internal/msp"
	"github.com/storekit/multisafepay-gateway/pkg/logger"
)

// GatewayHandler handles HTTP requests for the payment gateway using CQRS pattern
type GatewayHandler struct {
	// Command handlers
	confirmHandler      *command.ConfirmOrderHandler
	reconcileHandler    *command.ReconcileStatusHandler
	cancelHandler       *command.CancelOrderHandler
	selectIssuerHandler *command.SelectIssuerHandler

	// Query handlers
	listMethodsHandler  *query.ListMethodsHandler
	getPaymentHandler   *query.GetPaymentRecordHandler
	listPaymentsHandler *query.ListPaymentRecordsHandler

	methods     domain.MethodRepository
	clients     domain.PSPClientFactory
	orderPrefix string
}

// NewGatewayHandler creates a new gateway handler using dependency injection
func NewGatewayHandler(
	confirmHandler *command.ConfirmOrderHandler,
	reconcileHandler *command.ReconcileStatusHandler,
	cancelHandler *command.CancelOrderHandler,
	selectIssuerHandler *command.SelectIssuerHandler,
	listMethodsHandler *query.ListMethodsHandler,
	getPaymentHandler *query.GetPaymentRecordHandler,
	listPaymentsHandler *query.ListPaymentRecordsHandler,
	methods domain.MethodRepository,
	clients domain.PSPClientFactory,
	orderPrefix string,
) *GatewayHandler {
	return &GatewayHandler{
		confirmHandler:      confirmHandler,
		reconcileHandler:    reconcileHandler,
		cancelHandler:       cancelHandler,
		selectIssuerHandler: selectIssuerHandler,
		listMethodsHandler:  listMethodsHandler,
		getPaymentHandler:   getPaymentHandler,
		listPaymentsHandler: listPaymentsHandler,
		methods:             methods,
		clients:             clients,
		orderPrefix:         orderPrefix,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ListMethods handles GET /api/checkout/methods
func (h *GatewayHandler) ListMethods(w http.ResponseWriter, r *http.Request) {
	amount, _ := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	country := r.URL.Query().Get("country")

	q := query.ListMethodsQuery{
		Amount:    amount,
		Country:   country,
		SessionID: r.Header.Get("X-Session-ID"),
	}

	methods, err := h.listMethodsHandler.Handle(r.Context(), q)
	if err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to list payment methods")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list payment methods",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"methods": methods,
			"total":   len(methods),
		},
	})
}

// SelectIssuer handles POST /api/checkout/methods/{id}/issuer
func (h *GatewayHandler) SelectIssuer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	methodID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid payment method ID",
		})
		return
	}

	var req struct {
		SessionID string `json:"session_id"`
		Issuer    string `json:"issuer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}
	if req.SessionID == "" {
		req.SessionID = r.Header.Get("X-Session-ID")
	}

	cmd := command.SelectIssuerCommand{
		SessionID: req.SessionID,
		MethodID:  uint(methodID),
		Issuer:    req.Issuer,
	}

	if err := h.selectIssuerHandler.Handle(r.Context(), cmd); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrMethodNotFound) {
			status = http.StatusNotFound
		}
		respondJSON(w, status, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Issuer selected",
	})
}

// ConfirmOrder handles POST /api/checkout/confirm
func (h *GatewayHandler) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderNumber string `json:"order_number"`
		MethodID    uint   `json:"method_id"`
		Issuer      string `json:"issuer"`
		SessionID   string `json:"session_id"`
		Locale      string `json:"locale"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	if req.OrderNumber == "" {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "order_number is required",
		})
		return
	}
	if req.SessionID == "" {
		req.SessionID = r.Header.Get("X-Session-ID")
	}

	cmd := command.ConfirmOrderCommand{
		OrderNumber: req.OrderNumber,
		MethodID:    req.MethodID,
		Issuer:      req.Issuer,
		SessionID:   req.SessionID,
		Locale:      req.Locale,
		ClientIP:    clientIP(r),
		ForwardedIP: forwardedIP(r),
		UserAgent:   r.UserAgent(),
		Referrer:    r.Referer(),
	}

	result, err := h.confirmHandler.Handle(r.Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound), errors.Is(err, domain.ErrMethodNotFound):
			respondJSON(w, http.StatusNotFound, Response{
				Success: false,
				Error:   "Order or payment method not found",
			})
		case errors.Is(err, command.ErrCartRequired):
			respondJSON(w, http.StatusBadRequest, Response{
				Success: false,
				Error:   err.Error(),
			})
		case errors.Is(err, command.ErrPSPUnavailable):
			respondJSON(w, http.StatusBadGateway, Response{
				Success: false,
				Error:   "Payment provider unavailable, please try again",
			})
		default:
			logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to confirm order")
			respondJSON(w, http.StatusInternalServerError, Response{
				Success: false,
				Error:   "Failed to confirm order",
			})
		}
		return
	}

	transactionsCreated.WithLabelValues(result.Gateway).Inc()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Transaction created",
		Data:    result,
	})
}

// Notification handles POST /api/payments/notification (webhook)
func (h *GatewayHandler) Notification(w http.ResponseWriter, r *http.Request) {
	orderNumber, methodID, ok := h.callbackParams(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	method, err := h.methods.FindByID(r.Context(), methodID)
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Payment method not found",
		})
		return
	}

	signatureValid := h.clients(method).VerifyNotification(body, r.Header.Get("Auth"))

	var tx msp.Transaction
	if err := json.Unmarshal(body, &tx); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid notification payload",
		})
		return
	}

	cmd := command.ReconcileStatusCommand{
		OrderNumber:    orderNumber,
		MethodID:       methodID,
		PSPStatus:      tx.Status,
		TransactionID:  strconv.FormatInt(tx.TransactionID, 10),
		AmountRefunded: tx.AmountRefunded,
		SignatureValid: signatureValid,
	}

	outcome, err := h.reconcileHandler.Handle(r.Context(), cmd)
	if err != nil {
		notificationsProcessed.WithLabelValues("error").Inc()
		logger.WithContext(r.Context()).Error().
			Err(err).
			Str("order_number", orderNumber).
			Msg("Failed to reconcile status report")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to process notification",
		})
		return
	}

	switch {
	case !signatureValid:
		notificationsProcessed.WithLabelValues("invalid_signature").Inc()
	case outcome.Applied:
		notificationsProcessed.WithLabelValues("applied").Inc()
	default:
		notificationsProcessed.WithLabelValues("ignored").Inc()
	}

	// The provider retries anything that is not a plain OK body
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// PaymentReturn handles GET /api/payments/notification (shopper redirect).
// The redirect carries no signed payload, so the current status is fetched
// from the provider directly.
func (h *GatewayHandler) PaymentReturn(w http.ResponseWriter, r *http.Request) {
	orderNumber, methodID, ok := h.callbackParams(w, r)
	if !ok {
		return
	}

	method, err := h.methods.FindByID(r.Context(), methodID)
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Payment method not found",
		})
		return
	}

	tx, err := h.clients(method).GetTransaction(r.Context(), h.orderPrefix+orderNumber)
	if err != nil {
		logger.WithContext(r.Context()).Error().
			Err(err).
			Str("order_number", orderNumber).
			Msg("Failed to fetch transaction status")
		respondJSON(w, http.StatusBadGateway, Response{
			Success: false,
			Error:   "Payment provider unavailable",
		})
		return
	}

	cmd := command.ReconcileStatusCommand{
		OrderNumber:    orderNumber,
		MethodID:       methodID,
		PSPStatus:      tx.Status,
		TransactionID:  strconv.FormatInt(tx.TransactionID, 10),
		AmountRefunded: tx.AmountRefunded,
		SignatureValid: true,
	}

	outcome, err := h.reconcileHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.WithContext(r.Context()).Error().
			Err(err).
			Str("order_number", orderNumber).
			Msg("Failed to reconcile status report")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to process payment return",
		})
		return
	}

	if outcome.Applied {
		notificationsProcessed.WithLabelValues("applied").Inc()
	} else {
		notificationsProcessed.WithLabelValues("ignored").Inc()
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"order_number": orderNumber,
			"psp_status":   tx.Status,
			"outcome":      outcome,
		},
	})
}

// CancelPayment handles GET /api/payments/cancel
func (h *GatewayHandler) CancelPayment(w http.ResponseWriter, r *http.Request) {
	orderNumber, methodID, ok := h.callbackParams(w, r)
	if !ok {
		return
	}

	cmd := command.CancelOrderCommand{
		OrderNumber: orderNumber,
		MethodID:    methodID,
	}

	if err := h.cancelHandler.Handle(r.Context(), cmd); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) || errors.Is(err, domain.ErrMethodNotFound) {
			respondJSON(w, http.StatusNotFound, Response{
				Success: false,
				Error:   "Order or payment method not found",
			})
			return
		}
		logger.WithContext(r.Context()).Error().
			Err(err).
			Str("order_number", orderNumber).
			Msg("Failed to cancel order")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to cancel order",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Payment cancelled",
		Data: map[string]interface{}{
			"order_number": orderNumber,
		},
	})
}

// GetOrderPayment handles GET /api/orders/{order_number}/payment
func (h *GatewayHandler) GetOrderPayment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	q := query.GetPaymentRecordQuery{OrderNumber: vars["order_number"]}
	record, err := h.getPaymentHandler.Handle(r.Context(), q)
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Payment record not found",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    record,
	})
}

// GetPayment handles GET /api/payments/{id}
func (h *GatewayHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid payment record ID",
		})
		return
	}

	record, err := h.getPaymentHandler.Handle(r.Context(), query.GetPaymentRecordQuery{RecordID: uint(id)})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Payment record not found",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    record,
	})
}

// ListPayments handles GET /api/payments
func (h *GatewayHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	q := query.ListPaymentRecordsQuery{
		Limit:  limit,
		Offset: offset,
	}

	records, err := h.listPaymentsHandler.Handle(r.Context(), q)
	if err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to list payment records")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list payment records",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"payments": records,
			"total":    len(records),
		},
	})
}

// callbackParams extracts and validates the order number and method ID the
// callback URLs carry. The order number arrives with the configured prefix.
func (h *GatewayHandler) callbackParams(w http.ResponseWriter, r *http.Request) (string, uint, bool) {
	orderParam := r.URL.Query().Get("on")
	if orderParam == "" {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Order number is required",
		})
		return "", 0, false
	}

	methodID, err := strconv.ParseUint(r.URL.Query().Get("pm"), 10, 32)
	if err != nil || methodID == 0 {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid payment method ID",
		})
		return "", 0, false
	}

	return strings.TrimPrefix(orderParam, h.orderPrefix), uint(methodID), true
}

// RegisterRoutes registers all gateway routes
func (h *GatewayHandler) RegisterRoutes(router *mux.Router) {
	// Shopper-facing checkout routes
	router.HandleFunc("/api/checkout/methods", h.ListMethods).Methods("GET")
	router.HandleFunc("/api/checkout/methods/{id}/issuer", h.SelectIssuer).Methods("POST")
	router.HandleFunc("/api/checkout/confirm", h.ConfirmOrder).Methods("POST")

	// Provider callbacks, authenticated by webhook signature rather than
	// bearer tokens
	router.HandleFunc("/api/payments/notification", h.Notification).Methods("POST")
	router.HandleFunc("/api/payments/notification", h.PaymentReturn).Methods("GET")
	router.HandleFunc("/api/payments/cancel", h.CancelPayment).Methods("GET")

	// Admin routes (require admin role)
	router.HandleFunc("/api/payments", AdminMiddleware(h.ListPayments)).Methods("GET")
	router.HandleFunc("/api/payments/{id:[0-9]+}", AdminMiddleware(h.GetPayment)).Methods("GET")
	router.HandleFunc("/api/orders/{order_number}/payment", AdminMiddleware(h.GetOrderPayment)).Methods("GET")
}

// RegisterHealthCheck registers health check endpoint
func (h *GatewayHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Gateway service is healthy",
		})
	}).Methods("GET")
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// forwardedIP returns the first hop of X-Forwarded-For, if any
func forwardedIP(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded == "" {
		return ""
	}
	if pos := strings.IndexByte(forwarded, ','); pos != -1 {
		forwarded = forwarded[:pos]
	}
	return strings.TrimSpace(forwarded)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
