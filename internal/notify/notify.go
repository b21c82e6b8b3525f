// Package notify sends transactional mail to customers about their orders.
package notify

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"techfix-shop/internal/domain"
)

// Mailer sends order mail through SendGrid. With an empty API key every
// send becomes a log line, which keeps local development mail-free.
type Mailer struct {
	apiKey   string
	from     string
	fromName string
	logger   *log.Logger
}

func NewMailer(apiKey, from, fromName string, logger *log.Logger) *Mailer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Mailer{apiKey: apiKey, from: from, fromName: fromName, logger: logger}
}

func (m *Mailer) send(_ context.Context, to, subject, body string) error {
	if m.apiKey == "" {
		m.logger.Printf("mail (dry run) to=%s subject=%q", to, subject)
		return nil
	}
	if to == "" {
		return fmt.Errorf("to address is empty")
	}
	message := sgmail.NewSingleEmail(
		sgmail.NewEmail(m.fromName, m.from),
		subject,
		sgmail.NewEmail("", to),
		body,
		fmt.Sprintf("<pre>%s</pre>", body),
	)
	response, err := sendgrid.NewSendClient(m.apiKey).Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", response.StatusCode, response.Body)
	}
	m.logger.Printf("mail sent status=%d to=%s subject=%q", response.StatusCode, to, subject)
	return nil
}

// OrderCreated mails the order confirmation with the frozen totals.
func (m *Mailer) OrderCreated(ctx context.Context, o *domain.Order) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\nthank you for your order %s.\n\n", o.FirstName, o.Number)
	for _, it := range o.Items {
		fmt.Fprintf(&b, "  %s  %.2f\n", it.Title, it.Price)
	}
	fmt.Fprintf(&b, "\nSubtotal: %.2f\n", o.Subtotal)
	if o.DeliveryFee > 0 {
		fmt.Fprintf(&b, "Delivery: %.2f\n", o.DeliveryFee)
	}
	if o.PaymentFee > 0 {
		fmt.Fprintf(&b, "Online payment fee: %.2f\n", o.PaymentFee)
	}
	fmt.Fprintf(&b, "Total: %.2f\n\nTrack your order with its number and this email address.\n", o.Total)
	return m.send(ctx, o.Email, fmt.Sprintf("Order %s received", o.Number), b.String())
}

// OrderStatusChanged mails the customer about a status transition.
func (m *Mailer) OrderStatusChanged(ctx context.Context, o *domain.Order, previous string) error {
	body := fmt.Sprintf("Hello %s,\n\nyour order %s moved from %s to %s.\n",
		o.FirstName, o.Number, previous, o.Status)
	return m.send(ctx, o.Email, fmt.Sprintf("Order %s update: %s", o.Number, o.Status), body)
}

// SendCustom mails a free-form message written by staff.
func (m *Mailer) SendCustom(ctx context.Context, to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return domain.Required("to")
	}
	if strings.TrimSpace(subject) == "" {
		return domain.Required("subject")
	}
	return m.send(ctx, to, subject, body)
}
