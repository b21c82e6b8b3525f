package domain

import "time"

// Service types a customer can pick at checkout. Dropoff means bringing the
// device to the shop in person and carries no fee.
const (
	ServiceDropoff    = "dropoff"
	ServicePickup     = "pickup"
	ServiceZasilkovna = "zasilkovna"
	ServicePosta      = "posta"
	ServiceDPD        = "dpd"
	ServicePPL        = "ppl"
	ServiceGLS        = "gls"
)

// Payment methods. Only online payment carries a surcharge.
const (
	PaymentCash   = "cash"
	PaymentCard   = "card"
	PaymentOnline = "online"
)

// Order statuses. Staff may set any value; every order starts as pending and
// any status may move to cancelled.
const (
	StatusPending    = "pending"
	StatusWaiting    = "waiting"
	StatusInProgress = "in-progress"
	StatusDelivering = "delivering"
	StatusCompleted  = "completed"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// OrderStatuses lists every valid status value.
var OrderStatuses = []string{
	StatusPending,
	StatusWaiting,
	StatusInProgress,
	StatusDelivering,
	StatusCompleted,
	StatusDelivered,
	StatusCancelled,
}

// ValidOrderStatus reports whether s is a known status value.
func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// PickupPoint is the locker-network pickup location resolved by the widget.
type PickupPoint struct {
	Name   string `json:"name"`
	Street string `json:"street"`
	City   string `json:"city"`
	Zip    string `json:"zip"`
}

// Order is a frozen snapshot of a submitted cart. Totals are computed at
// submission time and never recomputed; status is the only mutable field.
type Order struct {
	ID            string       `json:"id"`
	Number        string       `json:"number"`
	Email         string       `json:"email"`
	Phone         string       `json:"phone"`
	FirstName     string       `json:"firstName"`
	LastName      string       `json:"lastName"`
	Street        string       `json:"street,omitempty"`
	City          string       `json:"city,omitempty"`
	Zip           string       `json:"zip,omitempty"`
	ServiceType   string       `json:"serviceType"`
	PaymentMethod string       `json:"paymentMethod"`
	Items         []CartItem   `json:"items"`
	Subtotal      float64      `json:"subtotal"`
	DeliveryFee   float64      `json:"deliveryFee"`
	PaymentFee    float64      `json:"paymentFee"`
	Total         float64      `json:"total"`
	Status        string       `json:"status"`
	PickupPoint   *PickupPoint `json:"pickupPoint,omitempty"`
	Note          string       `json:"note,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}
