package query

import (
	"context"

	"github.com/storekit/multisafepay-gateway/internal/gateway/domain"
	"github.com/storekit/multisafepay-gateway/internal/msp"
	"github.com/storekit/multisafepay-gateway/pkg/logger"
)

// ListMethodsQuery asks for the payment methods a shopper may use for a cart
type ListMethodsQuery struct {
	Amount  float64
	Country string
	// SessionID, when set, resolves the previously selected issuer for
	// bank-redirect methods
	SessionID string
}

// MethodView is one selectable payment method with its computed surcharge
type MethodView struct {
	ID             uint         `json:"id"`
	Name           string       `json:"name"`
	Gateway        string       `json:"gateway"`
	SalesPrice     float64      `json:"sales_price"`
	TaxID          int          `json:"tax_id"`
	Issuers        []msp.Issuer `json:"issuers,omitempty"`
	SelectedIssuer string       `json:"selected_issuer,omitempty"`
}

// ListMethodsHandler handles the list methods query
type ListMethodsHandler struct {
	methods domain.MethodRepository
	issuers domain.IssuerSelections
	clients domain.PSPClientFactory
}

// NewListMethodsHandler creates a new list methods handler
func NewListMethodsHandler(
	methods domain.MethodRepository,
	issuers domain.IssuerSelections,
	clients domain.PSPClientFactory,
) *ListMethodsHandler {
	return &ListMethodsHandler{methods: methods, issuers: issuers, clients: clients}
}

// Handle executes the list methods query
func (h *ListMethodsHandler) Handle(ctx context.Context, q ListMethodsQuery) ([]MethodView, error) {
	active, err := h.methods.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]MethodView, 0, len(active))
	for i := range active {
		method := &active[i]
		if !method.Applicable(q.Amount, q.Country) {
			continue
		}

		view := MethodView{
			ID:         method.ID,
			Name:       method.Name,
			Gateway:    method.GatewayCode(),
			SalesPrice: msp.Round2(method.SalesPrice(q.Amount)),
			TaxID:      method.TaxID,
		}

		// Bank-redirect methods render an issuer dropdown; a failed issuer
		// fetch degrades to the PSP's own selection page
		if view.Gateway == domain.GatewayIdeal {
			issuers, err := h.clients(method).ListIssuers(ctx, view.Gateway)
			if err != nil {
				logger.WithContext(ctx).Warn().
					Err(err).
					Uint("method_id", method.ID).
					Msg("Issuer list unavailable")
			} else {
				view.Issuers = issuers
			}

			if q.SessionID != "" {
				selected, err := h.issuers.Get(ctx, q.SessionID, method.ID)
				if err == nil {
					view.SelectedIssuer = selected
				}
			}
		}

		views = append(views, view)
	}

	return views, nil
}
