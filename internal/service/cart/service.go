package cart

import (
	"context"
	"strings"

	"techfix-shop/internal/catalog"
	"techfix-shop/internal/domain"
	"techfix-shop/internal/pricing"
)

// Service manages the per-session cart. The repository is the single
// authority for cart contents; concurrent tabs of one session are
// serialized by its row-level operations.
type Service struct {
	repo cartRepo
}

type cartRepo interface {
	ListBySession(ctx context.Context, sessionID string) ([]domain.CartItem, error)
	Add(ctx context.Context, sessionID string, item domain.CartItem) (*domain.CartItem, error)
	Remove(ctx context.Context, sessionID, itemID string) error
	Clear(ctx context.Context, sessionID string) error
}

func New(repo cartRepo) *Service {
	return &Service{repo: repo}
}

// Get returns the session's cart with its running subtotal.
func (s *Service) Get(ctx context.Context, sessionID string) (*domain.Cart, float64, error) {
	items, err := s.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, 0, err
	}
	return &domain.Cart{SessionID: sessionID, Items: items}, pricing.Subtotal(items), nil
}

// Add appends a finalized wizard item to the cart.
func (s *Service) Add(ctx context.Context, sessionID string, item domain.CartItem) (*domain.CartItem, error) {
	if strings.TrimSpace(item.Title) == "" {
		return nil, domain.Required("title")
	}
	if item.Kind == "" {
		return nil, domain.Required("kind")
	}
	item.Price = pricing.Sanitize(item.Price)
	return s.repo.Add(ctx, sessionID, item)
}

// AddOtherItem puts a ready-made printed item in the cart directly, outside
// any wizard.
func (s *Service) AddOtherItem(ctx context.Context, sessionID string, cat *catalog.Model, itemID string) (*domain.CartItem, error) {
	part, ok := cat.OtherItem(itemID)
	if !ok {
		return nil, domain.Invalid("item", "unknown item")
	}
	return s.repo.Add(ctx, sessionID, domain.CartItem{
		Kind:  domain.ItemKindOther,
		Title: part.Name,
		Price: pricing.Sanitize(part.Price),
		Meta:  map[string]string{"otherItem": part.ID},
	})
}

// Remove drops one item. Removing an id that is already gone succeeds.
func (s *Service) Remove(ctx context.Context, sessionID, itemID string) error {
	if strings.TrimSpace(itemID) == "" {
		return domain.Required("id")
	}
	return s.repo.Remove(ctx, sessionID, itemID)
}

// Clear empties the session's cart.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.repo.Clear(ctx, sessionID)
}
