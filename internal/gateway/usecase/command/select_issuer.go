package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/storekit/multisafepay-gateway/internal/gateway/domain"
)

// ErrIssuerNotSupported marks issuer selection on a method whose gateway has
// no issuing banks
var ErrIssuerNotSupported = errors.New("payment method does not support issuer selection")

// SelectIssuerCommand remembers the issuing bank a shopper picked on an
// earlier checkout page
type SelectIssuerCommand struct {
	SessionID string
	MethodID  uint
	Issuer    string
}

// SelectIssuerHandler handles the select issuer command
type SelectIssuerHandler struct {
	methods domain.MethodRepository
	issuers domain.IssuerSelections
}

// NewSelectIssuerHandler creates a new select issuer handler
func NewSelectIssuerHandler(methods domain.MethodRepository, issuers domain.IssuerSelections) *SelectIssuerHandler {
	return &SelectIssuerHandler{methods: methods, issuers: issuers}
}

// Handle executes the select issuer command
func (h *SelectIssuerHandler) Handle(ctx context.Context, cmd SelectIssuerCommand) error {
	if cmd.SessionID == "" {
		return fmt.Errorf("session_id is required")
	}
	if cmd.Issuer == "" {
		return fmt.Errorf("issuer is required")
	}

	method, err := h.methods.FindByID(ctx, cmd.MethodID)
	if err != nil {
		return err
	}
	if method.GatewayCode() != domain.GatewayIdeal {
		return ErrIssuerNotSupported
	}

	return h.issuers.Set(ctx, cmd.SessionID, cmd.MethodID, cmd.Issuer)
}
