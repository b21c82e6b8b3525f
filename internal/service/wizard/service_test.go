package wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"techfix-shop/internal/catalog"
	"techfix-shop/internal/domain"
)

type stubCatalogs struct {
	doc  domain.CatalogDocument
	fail error
}

func (s *stubCatalogs) Model(context.Context) (*catalog.Model, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	return catalog.Load(s.doc), nil
}

type stubCart struct {
	items map[string][]domain.CartItem
	fail  error
}

func (c *stubCart) Add(_ context.Context, sessionID string, item domain.CartItem) (*domain.CartItem, error) {
	if c.fail != nil {
		return nil, c.fail
	}
	if c.items == nil {
		c.items = map[string][]domain.CartItem{}
	}
	item.ID = "item-1"
	c.items[sessionID] = append(c.items[sessionID], item)
	return &item, nil
}

func testDoc() domain.CatalogDocument {
	return domain.CatalogDocument{
		Services: map[string]domain.DeviceService{
			"phone": {
				Name: "Phones",
				Brands: []domain.Brand{
					{ID: "apple", Name: "Apple", Active: true, Models: []domain.Model{
						{ID: "iphone-15", Name: "iPhone 15", Active: true},
					}},
				},
				Repairs: []domain.Repair{
					{ID: "screen", Name: "Screen replacement", Price: 89, Active: true},
				},
			},
		},
	}
}

func newService(cart *stubCart) *Service {
	return New(&stubCatalogs{doc: testDoc()}, cart, nil)
}

func runRepair(t *testing.T, svc *Service, sessionID string) {
	t.Helper()
	ctx := context.Background()
	for _, sel := range [][2]string{{"device", "phone"}, {"brand", "apple"}, {"model", "iphone-15"}} {
		if _, err := svc.RepairSelect(ctx, sessionID, sel[0], sel[1]); err != nil {
			t.Fatalf("select %s: %v", sel[0], err)
		}
	}
}

func TestRepairFlowAddsToCartAndResets(t *testing.T) {
	cart := &stubCart{}
	svc := newService(cart)
	ctx := context.Background()

	runRepair(t, svc, "s1")
	item, err := svc.RepairAddToCart(ctx, "s1", "screen")
	if err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	if item.Price != 89 || item.Kind != domain.ItemKindRepair {
		t.Fatalf("unexpected item %+v", item)
	}
	if len(cart.items["s1"]) != 1 {
		t.Fatalf("cart items = %d, want 1", len(cart.items["s1"]))
	}

	// A successful append starts the wizard over.
	st, err := svc.RepairState(ctx, "s1")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if st.Device != "" || st.Brand != "" || st.Model != "" {
		t.Fatalf("wizard not reset after add: %+v", st)
	}
}

func TestFailedCartAppendPreservesSelection(t *testing.T) {
	cart := &stubCart{fail: errors.New("db down")}
	svc := newService(cart)
	ctx := context.Background()

	runRepair(t, svc, "s1")
	if _, err := svc.RepairAddToCart(ctx, "s1", "screen"); err == nil {
		t.Fatal("expected append failure")
	}

	// The selection survives, so the customer can retry.
	st, _ := svc.RepairState(ctx, "s1")
	if st.Device != "phone" || st.Brand != "apple" || st.Model != "iphone-15" {
		t.Fatalf("selection lost on failed append: %+v", st)
	}

	cart.fail = nil
	if _, err := svc.RepairAddToCart(ctx, "s1", "screen"); err != nil {
		t.Fatalf("retry: %v", err)
	}
	st, _ = svc.RepairState(ctx, "s1")
	if st.Device != "" {
		t.Fatalf("wizard not reset after successful retry: %+v", st)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	svc := newService(&stubCart{})
	ctx := context.Background()

	runRepair(t, svc, "s1")
	st, err := svc.RepairState(ctx, "s2")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if st.Device != "" {
		t.Fatalf("session s2 sees s1 state: %+v", st)
	}
}

func TestUnknownStepRejected(t *testing.T) {
	svc := newService(&stubCart{})
	if _, err := svc.RepairSelect(context.Background(), "s1", "color", "red"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDropAndPrune(t *testing.T) {
	svc := newService(&stubCart{})
	ctx := context.Background()

	runRepair(t, svc, "s1")
	svc.DropSession("s1")
	st, _ := svc.RepairState(ctx, "s1")
	if st.Device != "" {
		t.Fatalf("dropped session kept state: %+v", st)
	}

	runRepair(t, svc, "s2")
	if n := svc.Prune(time.Hour); n != 0 {
		t.Fatalf("fresh session pruned: %d", n)
	}
	if n := svc.Prune(0); n == 0 {
		t.Fatal("expected idle sessions pruned")
	}
}

func TestCatalogEditRestartsWizards(t *testing.T) {
	cats := &stubCatalogs{doc: testDoc()}
	svc := New(cats, &stubCart{}, nil)
	ctx := context.Background()

	runRepair(t, svc, "s1")

	// An admin edit bumps the document version; the next request sees it.
	cats.doc.UpdatedAt = time.Now().UTC()
	st, err := svc.RepairState(ctx, "s1")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if st.Device != "" || st.Brand != "" || st.Model != "" {
		t.Fatalf("wizard survived a catalog edit: %+v", st)
	}
}

func TestCatalogOutageKeepsRunningWizard(t *testing.T) {
	cats := &stubCatalogs{doc: testDoc()}
	svc := New(cats, &stubCart{}, nil)
	ctx := context.Background()

	runRepair(t, svc, "s1")

	// The session keeps its snapshot while the catalog cannot be loaded.
	cats.fail = errors.New("db down")
	st, err := svc.RepairState(ctx, "s1")
	if err != nil {
		t.Fatalf("state during outage: %v", err)
	}
	if st.Device != "phone" || st.Brand != "apple" {
		t.Fatalf("selection lost during catalog outage: %+v", st)
	}

	// A brand-new session has nothing to fall back to.
	if _, err := svc.RepairState(ctx, "s2"); err == nil {
		t.Fatal("expected error for a fresh session during outage")
	}
}
