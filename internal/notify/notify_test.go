package notify

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"

	"techfix-shop/internal/domain"
)

func TestDryRunWithoutAPIKey(t *testing.T) {
	var buf bytes.Buffer
	m := NewMailer("", "shop@techfix.cz", "TechFix", log.New(&buf, "", 0))

	o := &domain.Order{
		Number:    "TF20260831-K4PM",
		Email:     "jana@example.com",
		FirstName: "Jana",
		Status:    domain.StatusPending,
		Items:     []domain.CartItem{{Title: "Apple iPhone 15", Price: 89}},
		Subtotal:  89,
		Total:     89,
	}
	if err := m.OrderCreated(context.Background(), o); err != nil {
		t.Fatalf("order created: %v", err)
	}
	if err := m.OrderStatusChanged(context.Background(), o, domain.StatusPending); err != nil {
		t.Fatalf("status changed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "dry run") || !strings.Contains(out, "jana@example.com") {
		t.Fatalf("unexpected log output: %q", out)
	}
}

func TestSendCustomValidation(t *testing.T) {
	m := NewMailer("", "shop@techfix.cz", "TechFix", nil)
	if err := m.SendCustom(context.Background(), "", "subject", "body"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := m.SendCustom(context.Background(), "a@b.cz", " ", "body"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := m.SendCustom(context.Background(), "a@b.cz", "Hello", "body"); err != nil {
		t.Fatalf("dry-run send: %v", err)
	}
}
