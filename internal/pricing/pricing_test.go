package pricing

import (
	"math"
	"math/rand"
	"testing"

	"techfix-shop/internal/domain"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{"plain", 89, 89},
		{"rounds to two decimals", 12.345, 12.35},
		{"negative clamps to zero", -5, 0},
		{"nan clamps to zero", math.NaN(), 0},
		{"positive inf clamps to zero", math.Inf(1), 0},
		{"negative inf clamps to zero", math.Inf(-1), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Sanitize(tc.in); got != tc.want {
				t.Fatalf("Sanitize(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestSubtotalCommutative(t *testing.T) {
	items := []domain.CartItem{
		{Price: 89},
		{Price: 129.5},
		{Price: 14.99},
		{Price: 862},
		{Price: 0.01},
	}
	want := Subtotal(items)
	for i := 0; i < 10; i++ {
		shuffled := make([]domain.CartItem, len(items))
		copy(shuffled, items)
		rand.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		if got := Subtotal(shuffled); got != want {
			t.Fatalf("subtotal depends on order: got %v, want %v", got, want)
		}
	}
}

func TestSubtotalSkipsMalformedPrices(t *testing.T) {
	items := []domain.CartItem{
		{Price: 100},
		{Price: math.NaN()},
		{Price: -40},
	}
	if got := Subtotal(items); got != 100 {
		t.Fatalf("Subtotal = %v, want 100", got)
	}
}

func TestDeliveryFee(t *testing.T) {
	checkout := domain.CheckoutConfig{
		DeliveryFees: map[string]float64{
			domain.ServicePickup:     15,
			domain.ServiceZasilkovna: 79,
			domain.ServiceDPD:        120,
		},
	}
	cases := []struct {
		name    string
		service string
		want    float64
	}{
		{"pickup", domain.ServicePickup, 15},
		{"zasilkovna", domain.ServiceZasilkovna, 79},
		{"dropoff always free", domain.ServiceDropoff, 0},
		{"unknown service type", "carrier-pigeon", 0},
		{"carrier missing from schedule", domain.ServiceGLS, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeliveryFee(tc.service, checkout); got != tc.want {
				t.Fatalf("DeliveryFee(%q) = %v, want %v", tc.service, got, tc.want)
			}
		})
	}
}

func TestPaymentSurcharge(t *testing.T) {
	checkout := domain.CheckoutConfig{OnlinePaymentFee: 9}
	if got := PaymentSurcharge(domain.PaymentOnline, checkout); got != 9 {
		t.Fatalf("online surcharge = %v, want 9", got)
	}
	if got := PaymentSurcharge(domain.PaymentCash, checkout); got != 0 {
		t.Fatalf("cash surcharge = %v, want 0", got)
	}
	if got := PaymentSurcharge(domain.PaymentCard, checkout); got != 0 {
		t.Fatalf("card surcharge = %v, want 0", got)
	}
}

func TestTotalRepairWithPickup(t *testing.T) {
	checkout := domain.CheckoutConfig{
		DeliveryFees: map[string]float64{domain.ServicePickup: 15},
	}
	items := []domain.CartItem{{Kind: domain.ItemKindRepair, Price: 89}}
	if got := Total(items, domain.ServicePickup, domain.PaymentCash, checkout); got != 104 {
		t.Fatalf("total = %v, want 104", got)
	}
}
