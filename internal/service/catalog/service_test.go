package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"techfix-shop/internal/domain"
)

type stubRepo struct {
	doc  *domain.CatalogDocument
	puts int
}

func (r *stubRepo) Get(context.Context) (*domain.CatalogDocument, error) {
	if r.doc == nil {
		return nil, domain.ErrNotFound
	}
	cp := *r.doc
	return &cp, nil
}

func (r *stubRepo) Put(_ context.Context, doc domain.CatalogDocument) (*domain.CatalogDocument, error) {
	r.puts++
	doc.UpdatedAt = time.Now().UTC()
	r.doc = &doc
	cp := doc
	return &cp, nil
}

func seededRepo() *stubRepo {
	return &stubRepo{doc: &domain.CatalogDocument{
		Services: map[string]domain.DeviceService{
			"phone": {
				Name: "Phones",
				Brands: []domain.Brand{
					{ID: "apple", Name: "Apple", Active: true, Models: []domain.Model{
						{ID: "iphone-15", Name: "iPhone 15", Active: true},
						{ID: "iphone-8", Name: "iPhone 8", Active: false},
					}},
				},
				Repairs: []domain.Repair{
					{ID: "screen", Name: "Screen replacement", Price: 89, Active: true},
					{ID: "jack", Name: "Headphone jack", Price: 25, Active: false},
				},
			},
		},
		Checkout: domain.CheckoutConfig{PacketaAPIKey: "secret"},
	}}
}

func TestGetOnEmptyRepoYieldsEmptyDocument(t *testing.T) {
	svc := New(&stubRepo{})
	doc, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if doc.Services == nil || doc.CustomBuilds == nil {
		t.Fatalf("expected initialized maps, got %+v", doc)
	}
}

type wrappedMissRepo struct{ stubRepo }

func (r *wrappedMissRepo) Get(context.Context) (*domain.CatalogDocument, error) {
	return nil, fmt.Errorf("catalog row: %w", domain.ErrNotFound)
}

func TestGetTreatsWrappedNotFoundAsEmpty(t *testing.T) {
	svc := New(&wrappedMissRepo{})
	doc, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if doc.Services == nil {
		t.Fatalf("expected an empty document, got %+v", doc)
	}
}

func TestPublicViewStripsSecretsAndInactive(t *testing.T) {
	svc := New(seededRepo())
	doc, err := svc.PublicView(context.Background())
	if err != nil {
		t.Fatalf("public view: %v", err)
	}
	if doc.Checkout.PacketaAPIKey != "" {
		t.Fatal("API key leaked")
	}
	phone := doc.Services["phone"]
	if len(phone.Repairs) != 1 || phone.Repairs[0].ID != "screen" {
		t.Fatalf("inactive repair leaked: %+v", phone.Repairs)
	}
	if len(phone.Brands[0].Models) != 1 {
		t.Fatalf("inactive model leaked: %+v", phone.Brands[0].Models)
	}
}

func TestUpsertBrandPreservesModels(t *testing.T) {
	repo := seededRepo()
	svc := New(repo)
	doc, err := svc.UpsertBrand(context.Background(), "phone", domain.Brand{ID: "apple", Name: "Apple Inc.", Active: true})
	if err != nil {
		t.Fatalf("upsert brand: %v", err)
	}
	brand := doc.Services["phone"].Brands[0]
	if brand.Name != "Apple Inc." {
		t.Fatalf("name = %q", brand.Name)
	}
	if len(brand.Models) != 2 {
		t.Fatalf("rename dropped the models: %+v", brand.Models)
	}
}

func TestDeleteMissingEntriesReportNotFound(t *testing.T) {
	svc := New(seededRepo())
	ctx := context.Background()
	if _, err := svc.DeleteBrand(ctx, "phone", "nokia"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("delete brand: %v", err)
	}
	if _, err := svc.DeleteRepair(ctx, "tablet", "screen"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown device: %v", err)
	}
	if _, err := svc.DeleteBuildPart(ctx, "ram", "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("delete build part: %v", err)
	}
}

func TestUpsertValidation(t *testing.T) {
	svc := New(seededRepo())
	ctx := context.Background()
	if _, err := svc.UpsertRepair(ctx, "phone", domain.Repair{Name: "No id"}); !domain.IsValidation(err) {
		t.Fatalf("missing id: %v", err)
	}
	if _, err := svc.UpsertBuildPart(ctx, " ", domain.Part{ID: "x", Name: "X"}); !domain.IsValidation(err) {
		t.Fatalf("blank category: %v", err)
	}
	if _, err := svc.UpsertPrintingPart(ctx, "widgets", domain.Part{ID: "x", Name: "X"}); !domain.IsValidation(err) {
		t.Fatalf("unknown list: %v", err)
	}
}

func TestMutationsWriteWholeDocument(t *testing.T) {
	repo := seededRepo()
	svc := New(repo)
	ctx := context.Background()
	if _, err := svc.SetAnnouncement(ctx, domain.Announcement{Active: true, Text: "Closed on Friday"}); err != nil {
		t.Fatalf("set announcement: %v", err)
	}
	if _, err := svc.UpsertBuildPart(ctx, "ram", domain.Part{ID: "ddr5-32", Name: "32 GB", Price: 109, Active: true}); err != nil {
		t.Fatalf("upsert part: %v", err)
	}
	if repo.puts != 2 {
		t.Fatalf("puts = %d, want 2", repo.puts)
	}
	// Earlier edits survive later ones.
	doc, _ := svc.Get(ctx)
	if doc.Announcement.Text != "Closed on Friday" {
		t.Fatalf("announcement lost: %+v", doc.Announcement)
	}
}
