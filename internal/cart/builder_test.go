package cart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storekit/multisafepay-gateway/internal/gateway/domain"
)

func testOrder() *domain.Order {
	return &domain.Order{
		OrderNumber:  "1000123",
		CurrencyCode: "EUR",
		Items: []domain.OrderItem{
			{
				ProductID:       77,
				Name:            "Wireless Mouse",
				Description:     "A mouse",
				Quantity:        2,
				PriceWithoutTax: 20.00,
				Tax:             4.20,
			},
		},
	}
}

func TestBuildProductsOnly(t *testing.T) {
	order := testOrder()

	items := Build(order, "EUR")

	require.Len(t, items, 1)
	item := items[0]
	assert.Equal(t, "Wireless Mouse", item.Name)
	assert.Equal(t, "77", item.MerchantItemID)
	assert.Equal(t, 2, item.Quantity)
	assert.InDelta(t, 20.00, item.UnitPrice, 1e-9)
	assert.Equal(t, "EUR", item.Currency)
	// 4.20 tax on 20.00 derives a 21% rate
	assert.InDelta(t, 21.0, item.TaxRate, 1e-9)
	assert.Nil(t, item.Weight)
}

func TestBuildHostTaxRateWins(t *testing.T) {
	order := testOrder()
	order.Items[0].TaxPercent = 9.0
	order.Items[0].Tax = 1.80

	items := Build(order, "EUR")

	require.Len(t, items, 1)
	assert.InDelta(t, 9.0, items[0].TaxRate, 1e-9)
}

func TestBuildZeroPricedLine(t *testing.T) {
	order := testOrder()
	order.Items[0].PriceWithoutTax = 0
	order.Items[0].Tax = 0.50

	items := Build(order, "EUR")

	require.Len(t, items, 1)
	assert.InDelta(t, 0.0, items[0].TaxRate, 1e-9)
	assert.InDelta(t, 0.0, items[0].UnitPrice, 1e-9)
}

func TestBuildZeroPricedLineWithHostRate(t *testing.T) {
	order := testOrder()
	order.Items[0].PriceWithoutTax = 0
	order.Items[0].Tax = 0.50
	order.Items[0].TaxPercent = 21

	items := Build(order, "EUR")

	// Deriving tax/price would divide by zero; the host rate carries the line
	require.Len(t, items, 1)
	assert.InDelta(t, 21.0, items[0].TaxRate, 1e-9)
}

func TestBuildDiscountedPrice(t *testing.T) {
	order := testOrder()
	order.Items[0].DiscountedPriceWithoutTax = 15.00

	items := Build(order, "EUR")

	require.Len(t, items, 1)
	assert.InDelta(t, 15.00, items[0].UnitPrice, 1e-9)
}

func TestBuildPercentCoupon(t *testing.T) {
	order := testOrder()
	order.CouponCode = "TENOFF"
	order.CouponDiscount = -4.00
	order.CouponPercent = 10

	items := Build(order, "EUR")

	// Percent coupons reduce each product line instead of adding one
	require.Len(t, items, 1)
	assert.InDelta(t, 18.00, items[0].UnitPrice, 1e-9)
	assert.Equal(t, "Wireless Mouse - (Coupon applied: 10%)", items[0].Name)
}

func TestBuildFlatCouponIsLastLine(t *testing.T) {
	order := testOrder()
	order.CouponCode = "FIVER"
	order.CouponDiscount = -5.00
	order.ShipmentPrice = 4.95
	order.ShipmentTax = 1.04

	items := Build(order, "EUR")

	require.Len(t, items, 3)
	last := items[len(items)-1]
	assert.Equal(t, "Coupon", last.MerchantItemID)
	assert.InDelta(t, -5.00, last.UnitPrice, 1e-9)
	assert.InDelta(t, 0.0, last.TaxRate, 1e-9)
	assert.Equal(t, 1, last.Quantity)
}

func TestBuildShippingAndPaymentFee(t *testing.T) {
	order := testOrder()
	order.ShipmentPrice = 4.95
	order.ShipmentTax = 1.04
	order.PaymentPrice = 0.50
	order.PaymentTax = 0.105

	items := Build(order, "EUR")

	require.Len(t, items, 3)

	shipping := items[1]
	assert.Equal(t, "msp-shipping", shipping.MerchantItemID)
	assert.Equal(t, "Shipping Fee", shipping.Name)
	assert.InDelta(t, 4.95, shipping.UnitPrice, 1e-9)
	assert.InDelta(t, 21.0, shipping.TaxRate, 1e-9)

	fee := items[2]
	assert.Equal(t, "PaymentFee", fee.MerchantItemID)
	assert.InDelta(t, 0.50, fee.UnitPrice, 1e-9)
	assert.InDelta(t, 21.0, fee.TaxRate, 1e-9)
}

func TestBuildSkipsZeroShippingAndFee(t *testing.T) {
	order := testOrder()
	order.ShipmentPrice = 0
	order.PaymentPrice = 0

	items := Build(order, "EUR")

	require.Len(t, items, 1)
}

func TestBuildBillDiscountLine(t *testing.T) {
	order := testOrder()
	order.BillDiscount = -2.50

	items := Build(order, "EUR")

	require.Len(t, items, 2)
	discount := items[1]
	assert.Equal(t, "Discount", discount.MerchantItemID)
	assert.InDelta(t, -2.50, discount.UnitPrice, 1e-9)
	assert.InDelta(t, 0.0, discount.TaxRate, 1e-9)
}

func TestBuildWeight(t *testing.T) {
	order := testOrder()
	order.Items[0].WeightUnit = "kg"
	order.Items[0].Weight = 2.5

	items := Build(order, "EUR")

	require.Len(t, items, 1)
	require.NotNil(t, items[0].Weight)
	assert.Equal(t, "KG", items[0].Weight.Unit)
	assert.InDelta(t, 2.5, items[0].Weight.Value, 1e-9)
}

func TestBuildTruncatesDescription(t *testing.T) {
	order := testOrder()
	order.Items[0].Description = strings.Repeat("word ", 60)

	items := Build(order, "EUR")

	require.Len(t, items, 1)
	assert.LessOrEqual(t, len(items[0].Description), descriptionLimit)
	assert.True(t, strings.HasSuffix(items[0].Description, " ..."))
}
