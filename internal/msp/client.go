package msp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/storekit/multisafepay-gateway/pkg/logger"
)

const (
	liveBaseURL = "https://api.multisafepay.com/v1/json"
	testBaseURL = "https://testapi.multisafepay.com/v1/json"
)

var tracer = otel.Tracer("msp-client")

// APIError is a declined or malformed call reported by the PSP. The message
// is safe to log but must never be shown verbatim to the shopper.
type APIError struct {
	Code int    `json:"error_code"`
	Info string `json:"error_info"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("psp error %d: %s", e.Code, e.Info)
}

type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	ErrorCode int             `json:"error_code"`
	ErrorInfo string          `json:"error_info"`
}

// Client talks to the PSP's JSON API. One client per payment-method
// configuration; the API key selects the merchant account.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for the given API key. Sandbox mode switches to
// the PSP's test environment.
func NewClient(apiKey string, sandbox bool, timeout time.Duration) *Client {
	baseURL := liveBaseURL
	if sandbox {
		baseURL = testBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// VerifyNotification checks a notification body against its Auth header
// using this client's API key.
func (c *Client) VerifyNotification(payload []byte, authHeader string) bool {
	return VerifyNotification(payload, authHeader, c.apiKey)
}

// CreateTransaction starts a transaction and returns it, including the
// hosted payment page URL the shopper is redirected to.
func (c *Client) CreateTransaction(ctx context.Context, order *OrderRequest) (*Transaction, error) {
	var tx Transaction
	if err := c.do(ctx, http.MethodPost, "/orders", order, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetTransaction fetches the current state of an order by its order id
func (c *Client) GetTransaction(ctx context.Context, orderID string) (*Transaction, error) {
	var tx Transaction
	if err := c.do(ctx, http.MethodGet, "/orders/"+orderID, nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// UpdateTransaction pushes a status or invoice/shipping update for an order
func (c *Client) UpdateTransaction(ctx context.Context, orderID string, update *UpdateRequest) error {
	return c.do(ctx, http.MethodPatch, "/orders/"+orderID, update, nil)
}

// Refund requests a full or partial refund for an order
func (c *Client) Refund(ctx context.Context, orderID string, refund *RefundRequest) error {
	return c.do(ctx, http.MethodPost, "/orders/"+orderID+"/refunds", refund, nil)
}

// ListIssuers returns the issuing banks available for a bank-redirect gateway
func (c *Client) ListIssuers(ctx context.Context, gateway string) ([]Issuer, error) {
	var issuers []Issuer
	if err := c.do(ctx, http.MethodGet, "/issuers/"+gateway, nil, &issuers); err != nil {
		return nil, err
	}
	return issuers, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	ctx, span := tracer.Start(ctx, "psp"+path,
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("psp.path", path),
		),
	)
	defer span.End()

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api_key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		// The underlying error may embed the full URL; log only the path
		logger.Error(ctx).Str("path", path).Msg("PSP request failed")
		return fmt.Errorf("psp transport failure on %s", path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read psp response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("malformed psp response: %w", err)
	}

	if !env.Success {
		apiErr := &APIError{Code: env.ErrorCode, Info: env.ErrorInfo}
		span.RecordError(apiErr)
		span.SetStatus(codes.Error, "psp rejected request")
		return apiErr
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("malformed psp response data: %w", err)
		}
	}
	return nil
}
