package msp

// Transaction types accepted by the PSP
const (
	TypeRedirect = "redirect"
	TypeDirect   = "direct"
)

// Transaction statuses the PSP reports in notifications and status queries
const (
	StatusInitialized = "initialized"
	StatusCompleted   = "completed"
	StatusUncleared   = "uncleared"
	StatusVoid        = "void"
	StatusDeclined    = "declined"
	StatusRefunded    = "refunded"
	StatusExpired     = "expired"
	StatusCancelled   = "cancelled"
	StatusShipped     = "shipped"
)

// CustomerDetails is the customer or delivery block of an order request
type CustomerDetails struct {
	Locale      string `json:"locale,omitempty"`
	IPAddress   string `json:"ip_address,omitempty"`
	ForwardedIP string `json:"forwarded_ip,omitempty"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CompanyName string `json:"company_name,omitempty"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2,omitempty"`
	HouseNumber string `json:"house_number"`
	ZipCode     string `json:"zip_code"`
	City        string `json:"city"`
	State       string `json:"state,omitempty"`
	Country     string `json:"country"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email"`
	Referrer    string `json:"referrer,omitempty"`
	UserAgent   string `json:"user_agent,omitempty"`
	Reference   string `json:"reference,omitempty"`
}

// PaymentOptions carries the callback URL set for the hosted payment page
type PaymentOptions struct {
	NotificationURL string `json:"notification_url"`
	RedirectURL     string `json:"redirect_url"`
	CancelURL       string `json:"cancel_url"`
	CloseWindow     bool   `json:"close_window"`
}

// PluginDetails identifies the integrating application to the PSP
type PluginDetails struct {
	Shop          string `json:"shop"`
	ShopVersion   string `json:"shop_version"`
	PluginVersion string `json:"plugin_version"`
	Partner       string `json:"partner,omitempty"`
	ShopRootURL   string `json:"shop_root_url"`
}

// GatewayInfo carries gateway-specific data; only the pre-selected issuing
// bank of a bank-redirect method is used here
type GatewayInfo struct {
	IssuerID string `json:"issuer_id,omitempty"`
}

// Weight is an optional physical property of a cart item
type Weight struct {
	Unit  string  `json:"unit"`
	Value float64 `json:"value"`
}

// CartItem is one line of the shopping cart. UnitPrice is the two-decimal
// amount excluding tax; TaxRate is a percentage (21 means 21%).
type CartItem struct {
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	UnitPrice      float64 `json:"unit_price"`
	Currency       string  `json:"currency"`
	Quantity       int     `json:"quantity"`
	MerchantItemID string  `json:"merchant_item_id"`
	TaxRate        float64 `json:"tax_table_selector"`
	Weight         *Weight `json:"weight,omitempty"`
}

// NewCartItem builds a cart item with the unit price expressed through Money
// so every amount follows the same rounding rule
func NewCartItem(name string, unitPrice Money, quantity int, merchantItemID string, taxRate float64, description string) CartItem {
	return CartItem{
		Name:           name,
		Description:    description,
		UnitPrice:      unitPrice.Decimal(),
		Currency:       unitPrice.Currency,
		Quantity:       quantity,
		MerchantItemID: merchantItemID,
		TaxRate:        taxRate,
	}
}

// ShoppingCart wraps the cart lines of an order request
type ShoppingCart struct {
	Items []CartItem `json:"items"`
}

// OrderRequest is the transient, fully-assembled structure sent to the PSP
// once per checkout attempt. It is never persisted.
type OrderRequest struct {
	Type           string           `json:"type"`
	OrderID        string           `json:"order_id"`
	Gateway        string           `json:"gateway,omitempty"`
	Currency       string           `json:"currency"`
	Amount         int64            `json:"amount"`
	Description    string           `json:"description"`
	DaysActive     int              `json:"days_active,omitempty"`
	PaymentOptions PaymentOptions   `json:"payment_options"`
	Customer       CustomerDetails  `json:"customer"`
	Delivery       *CustomerDetails `json:"delivery,omitempty"`
	GatewayInfo    *GatewayInfo     `json:"gateway_info,omitempty"`
	ShoppingCart   *ShoppingCart    `json:"shopping_cart,omitempty"`
	Plugin         PluginDetails    `json:"plugin"`
}

// Transaction is the PSP's view of an order, returned by create and status
// calls and carried in notifications
type Transaction struct {
	TransactionID  int64  `json:"transaction_id"`
	OrderID        string `json:"order_id"`
	Status         string `json:"status"`
	Amount         int64  `json:"amount"`
	AmountRefunded int64  `json:"amount_refunded,omitempty"`
	Currency       string `json:"currency"`
	PaymentURL     string `json:"payment_url,omitempty"`
}

// UpdateRequest pushes an order-level update back to the PSP, either a new
// status or shipping/invoice metadata
type UpdateRequest struct {
	Status         string `json:"status,omitempty"`
	InvoiceID      string `json:"invoice_id,omitempty"`
	TrackTraceCode string `json:"tracktrace_code,omitempty"`
	Carrier        string `json:"carrier,omitempty"`
}

// RefundRequest asks the PSP to return funds for a completed transaction
type RefundRequest struct {
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description,omitempty"`
}

// Issuer is one issuing bank of a bank-redirect gateway
type Issuer struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
