// Package order turns a session's cart into a frozen order and manages its
// lifecycle afterwards.
package order

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log"
	"math/big"
	"strings"
	"time"

	"techfix-shop/internal/domain"
	"techfix-shop/internal/pricing"
)

type orderRepo interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByNumber(ctx context.Context, number, email string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}

type cartSource interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, float64, error)
	Clear(ctx context.Context, sessionID string) error
}

type checkoutSource interface {
	Get(ctx context.Context) (*domain.CatalogDocument, error)
}

// Notifier sends order mail. Failures are logged, never surfaced: mail must
// not block checkout.
type Notifier interface {
	OrderCreated(ctx context.Context, o *domain.Order) error
	OrderStatusChanged(ctx context.Context, o *domain.Order, previous string) error
}

type Service struct {
	repo     orderRepo
	cart     cartSource
	checkout checkoutSource
	notifier Notifier
	logger   *log.Logger
}

func New(repo orderRepo, cart cartSource, checkout checkoutSource, notifier Notifier, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, cart: cart, checkout: checkout, notifier: notifier, logger: logger}
}

// Submission is the checkout form as the customer filled it in.
type Submission struct {
	Email         string              `json:"email"`
	Phone         string              `json:"phone"`
	FirstName     string              `json:"firstName"`
	LastName      string              `json:"lastName"`
	Street        string              `json:"street"`
	City          string              `json:"city"`
	Zip           string              `json:"zip"`
	ServiceType   string              `json:"serviceType"`
	PaymentMethod string              `json:"paymentMethod"`
	PickupPoint   *domain.PickupPoint `json:"pickupPoint"`
	Note          string              `json:"note"`
	TermsAccepted bool                `json:"termsAccepted"`
}

// courierServices are the service types that deliver to a street address.
var courierServices = map[string]bool{
	domain.ServicePickup: true,
	domain.ServicePosta:  true,
	domain.ServiceDPD:    true,
	domain.ServicePPL:    true,
	domain.ServiceGLS:    true,
}

func validServiceType(t string) bool {
	return t == domain.ServiceDropoff || t == domain.ServiceZasilkovna || courierServices[t]
}

func validPaymentMethod(m string) bool {
	return m == domain.PaymentCash || m == domain.PaymentCard || m == domain.PaymentOnline
}

func (sub Submission) validate() error {
	switch {
	case strings.TrimSpace(sub.Email) == "":
		return domain.Required("email")
	case !strings.Contains(sub.Email, "@"):
		return domain.Invalid("email", "not an email address")
	case strings.TrimSpace(sub.Phone) == "":
		return domain.Required("phone")
	case strings.TrimSpace(sub.FirstName) == "":
		return domain.Required("firstName")
	case strings.TrimSpace(sub.LastName) == "":
		return domain.Required("lastName")
	}
	if !validServiceType(sub.ServiceType) {
		return domain.Invalid("serviceType", "unknown service type")
	}
	if !validPaymentMethod(sub.PaymentMethod) {
		return domain.Invalid("paymentMethod", "unknown payment method")
	}
	if courierServices[sub.ServiceType] {
		switch {
		case strings.TrimSpace(sub.Street) == "":
			return domain.Required("street")
		case strings.TrimSpace(sub.City) == "":
			return domain.Required("city")
		case strings.TrimSpace(sub.Zip) == "":
			return domain.Required("zip")
		}
	}
	if sub.ServiceType == domain.ServiceZasilkovna && sub.PickupPoint == nil {
		return domain.Required("pickupPoint")
	}
	if !sub.TermsAccepted {
		return domain.Invalid("termsAccepted", "terms must be accepted")
	}
	return nil
}

// Submit freezes the session's cart into a new pending order. Totals are
// computed here, once, against the current fee schedule. The cart is
// cleared afterwards; a failed clear is logged and left for the session to
// retry, the order stands either way.
func (s *Service) Submit(ctx context.Context, sessionID string, sub Submission) (*domain.Order, error) {
	if err := sub.validate(); err != nil {
		return nil, err
	}
	cart, subtotal, err := s.cart.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, domain.Invalid("cart", "cart is empty")
	}
	doc, err := s.checkout.Get(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	o := domain.Order{
		Email:         strings.ToLower(strings.TrimSpace(sub.Email)),
		Phone:         strings.TrimSpace(sub.Phone),
		FirstName:     strings.TrimSpace(sub.FirstName),
		LastName:      strings.TrimSpace(sub.LastName),
		Street:        strings.TrimSpace(sub.Street),
		City:          strings.TrimSpace(sub.City),
		Zip:           strings.TrimSpace(sub.Zip),
		ServiceType:   sub.ServiceType,
		PaymentMethod: sub.PaymentMethod,
		Items:         cart.Items,
		Subtotal:      subtotal,
		DeliveryFee:   pricing.DeliveryFee(sub.ServiceType, doc.Checkout),
		PaymentFee:    pricing.PaymentSurcharge(sub.PaymentMethod, doc.Checkout),
		Status:        domain.StatusPending,
		PickupPoint:   sub.PickupPoint,
		Note:          strings.TrimSpace(sub.Note),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	o.Total = pricing.Round(o.Subtotal + o.DeliveryFee + o.PaymentFee)

	created, err := s.createWithNumber(ctx, o)
	if err != nil {
		return nil, err
	}

	if err := s.cart.Clear(ctx, sessionID); err != nil {
		s.logger.Printf("order %s: cart clear failed: %v", created.Number, err)
	}
	if s.notifier != nil {
		if err := s.notifier.OrderCreated(ctx, created); err != nil {
			s.logger.Printf("order %s: confirmation mail failed: %v", created.Number, err)
		}
	}
	return created, nil
}

// createWithNumber inserts the order under a fresh order number, drawing a
// new one on the rare collision.
func (s *Service) createWithNumber(ctx context.Context, o domain.Order) (*domain.Order, error) {
	for attempt := 0; attempt < 5; attempt++ {
		number, err := newOrderNumber(o.CreatedAt)
		if err != nil {
			return nil, err
		}
		o.Number = number
		created, err := s.repo.Create(ctx, o)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, domain.ErrAlreadyExists) {
			return nil, err
		}
	}
	return nil, errors.New("could not allocate an order number")
}

const numberAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// newOrderNumber builds a human-readable order number such as
// TF20260831-K4PM: the date for sorting, a random suffix for uniqueness.
func newOrderNumber(t time.Time) (string, error) {
	suffix := make([]byte, 4)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(numberAlphabet))))
		if err != nil {
			return "", fmt.Errorf("order number: %w", err)
		}
		suffix[i] = numberAlphabet[n.Int64()]
	}
	return fmt.Sprintf("TF%s-%s", t.Format("20060102"), suffix), nil
}

// Track fetches an order by its number and the email it was placed under.
func (s *Service) Track(ctx context.Context, number, email string) (*domain.Order, error) {
	if strings.TrimSpace(number) == "" {
		return nil, domain.Required("number")
	}
	if strings.TrimSpace(email) == "" {
		return nil, domain.Required("email")
	}
	return s.repo.GetByNumber(ctx, strings.TrimSpace(number), strings.ToLower(strings.TrimSpace(email)))
}

// Get fetches an order by id (staff).
func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all orders, newest first (staff).
func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

// ListByEmail returns the orders placed under an email, newest first.
func (s *Service) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	return s.repo.ListByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// SetStatus moves an order to a new status (staff). The customer is mailed
// once per actual transition; setting the current status again is a no-op.
func (s *Service) SetStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, domain.Invalid("status", "unknown status")
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == status {
		return current, nil
	}
	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		if err := s.notifier.OrderStatusChanged(ctx, updated, current.Status); err != nil {
			s.logger.Printf("order %s: status mail failed: %v", updated.Number, err)
		}
	}
	return updated, nil
}

// Cancel lets the customer cancel their own order while it is still pending.
func (s *Service) Cancel(ctx context.Context, number, email string) (*domain.Order, error) {
	o, err := s.Track(ctx, number, email)
	if err != nil {
		return nil, err
	}
	if o.Status != domain.StatusPending {
		return nil, domain.Invalid("status", "only pending orders can be cancelled")
	}
	return s.SetStatus(ctx, o.ID, domain.StatusCancelled)
}

// Delete removes an order entirely (staff).
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
