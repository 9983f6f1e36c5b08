// Package cart maps a host order into the PSP's shopping-cart lines.
//
// Line ordering is fixed: product lines first, then the bill discount,
// shipping and payment-fee lines, and a flat-amount coupon always last.
// The PSP does not care, but downstream output diffs do.
package cart

import (
	"math"
	"strconv"
	"strings"

	"github.com/storekit/multisafepay-gateway/internal/gateway/domain"
	"github.com/storekit/multisafepay-gateway/internal/msp"
)

const (
	shippingItemID   = "msp-shipping"
	paymentFeeItemID = "PaymentFee"
	couponItemID     = "Coupon"
	discountItemID   = "Discount"

	descriptionLimit = 200
)

// Build assembles the cart lines for an order in the given currency
func Build(order *domain.Order, currency string) []msp.CartItem {
	items := make([]msp.CartItem, 0, len(order.Items)+4)

	couponPercent := 0.0
	flatCoupon := false
	if order.CouponDiscount != 0 {
		if order.CouponPercent > 0 {
			couponPercent = order.CouponPercent
		} else {
			flatCoupon = true
		}
	}

	for _, line := range order.Items {
		items = append(items, buildProductLine(line, currency, couponPercent))
	}

	if order.BillDiscount != 0 {
		items = append(items, msp.NewCartItem(
			"Discount",
			msp.NewMoney(order.BillDiscount, currency),
			1,
			discountItemID,
			0,
			"",
		))
	}

	if order.ShipmentPrice > 0 {
		items = append(items, buildShippingLine(order, currency))
	}

	if order.PaymentPrice > 0 {
		items = append(items, buildPaymentFeeLine(order, currency))
	}

	// Flat-amount coupons close the cart
	if flatCoupon {
		items = append(items, msp.NewCartItem(
			"Coupon",
			msp.NewMoney(order.CouponDiscount, currency),
			1,
			couponItemID,
			0,
			"Coupon for Order #"+order.OrderNumber,
		))
	}

	return items
}

func buildProductLine(line domain.OrderItem, currency string, couponPercent float64) msp.CartItem {
	name := line.Name

	price := line.PriceWithoutTax
	if line.DiscountedPriceWithoutTax > 0 && line.DiscountedPriceWithoutTax < price {
		price = line.DiscountedPriceWithoutTax
	}

	if couponPercent > 0 {
		price -= price * couponPercent / 100
		name += " - (Coupon applied: " + strconv.FormatFloat(couponPercent, 'f', -1, 64) + "%)"
	}

	item := msp.NewCartItem(
		name,
		msp.NewMoney(price, currency),
		line.Quantity,
		strconv.FormatUint(uint64(line.ProductID), 10),
		TaxPercentage(line),
		stripDescription(line.Description, descriptionLimit),
	)

	// Malformed weight data degrades to no weight, never to a failed request
	if unit := strings.TrimSpace(line.WeightUnit); unit != "" && line.Weight > 0 {
		item.Weight = &msp.Weight{
			Unit:  strings.ToUpper(unit),
			Value: line.Weight,
		}
	}

	return item
}

// TaxPercentage resolves a line's tax rate. The host's precomputed rate
// wins; deriving tax/price would divide by zero on zero-priced promotional
// lines whose tax amount is still positive.
func TaxPercentage(line domain.OrderItem) float64 {
	if line.TaxPercent > 0 {
		return math.Round(line.TaxPercent)
	}
	if line.Tax > 0 && line.PriceWithoutTax > 0 {
		return msp.Round2(line.Tax/line.PriceWithoutTax) * 100
	}
	return 0
}

func buildShippingLine(order *domain.Order, currency string) msp.CartItem {
	taxPercent := 0.0
	if order.ShipmentTax > 0 && order.ShipmentPrice > 0 {
		taxPercent = msp.Round2(order.ShipmentTax/order.ShipmentPrice) * 100
	}

	return msp.NewCartItem(
		"Shipping Fee",
		msp.NewMoney(order.ShipmentPrice, currency),
		1,
		shippingItemID,
		taxPercent,
		"Shipping Fee for Order #"+order.OrderNumber,
	)
}

func buildPaymentFeeLine(order *domain.Order, currency string) msp.CartItem {
	taxPercent := 0.0
	if order.PaymentTax > 0 && order.PaymentPrice > 0 {
		taxPercent = msp.Round2(order.PaymentTax/order.PaymentPrice) * 100
	}

	return msp.NewCartItem(
		"Payment Fee",
		msp.NewMoney(order.PaymentPrice, currency),
		1,
		paymentFeeItemID,
		taxPercent,
		"Payment Fee for Order #"+order.OrderNumber,
	)
}

func stripDescription(description string, limit int) string {
	if len(description) <= limit {
		return description
	}
	cut := description[:limit-4]
	if pos := strings.LastIndexByte(cut, ' '); pos > 0 {
		cut = cut[:pos]
	}
	return cut + " ..."
}
