// Package pricing computes line-item and cart totals. All amounts are plain
// numbers in the shop's single operating currency with two-decimal
// precision. Malformed catalog values (negative, NaN, Inf) price as 0 so a
// bad admin edit can never corrupt a total.
package pricing

import (
	"math"

	"techfix-shop/internal/domain"
)

// Sanitize clamps a monetary amount to a non-negative, finite value rounded
// to two decimals.
func Sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return Round(v)
}

// Round rounds to the minor-unit precision of the currency (two decimals).
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}

// Subtotal sums the item prices. The result does not depend on item order.
func Subtotal(items []domain.CartItem) float64 {
	var sum float64
	for _, it := range items {
		sum += Sanitize(it.Price)
	}
	return Round(sum)
}

// DeliveryFee looks up the fee for a service type. Dropoff and unknown
// service types cost nothing.
func DeliveryFee(serviceType string, checkout domain.CheckoutConfig) float64 {
	if serviceType == domain.ServiceDropoff {
		return 0
	}
	return Sanitize(checkout.DeliveryFees[serviceType])
}

// PaymentSurcharge returns the online-payment fee for the online method and
// zero for everything else.
func PaymentSurcharge(method string, checkout domain.CheckoutConfig) float64 {
	if method == domain.PaymentOnline {
		return Sanitize(checkout.OnlinePaymentFee)
	}
	return 0
}

// Total is the grand total at checkout: subtotal + delivery + surcharge.
func Total(items []domain.CartItem, serviceType, method string, checkout domain.CheckoutConfig) float64 {
	return Round(Subtotal(items) + DeliveryFee(serviceType, checkout) + PaymentSurcharge(method, checkout))
}
