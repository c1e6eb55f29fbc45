// internal/adapters/out/mail/order_mailer.go
package mail

import (
	"context"
	"fmt"
	"strings"

	orderdom "hearthwood/internal/domain/order"
)

// OrderMailer sends order confirmation mail. Implements the checkout
// usecase's OrderMailer port.
type OrderMailer struct {
	client   EmailClient
	fromAddr string
}

func NewOrderMailer(client EmailClient, fromAddr string) *OrderMailer {
	return &OrderMailer{client: client, fromAddr: fromAddr}
}

// SendOrderConfirmation mails the order summary to the buyer.
// Orders without an email address are skipped silently (guest contact data
// is optional on the cart document).
func (m *OrderMailer) SendOrderConfirmation(ctx context.Context, o *orderdom.Order) error {
	if m == nil || m.client == nil {
		return fmt.Errorf("order_mailer: not initialized")
	}
	if o == nil {
		return fmt.Errorf("order_mailer: order is nil")
	}
	if strings.TrimSpace(o.Email) == "" {
		return nil
	}

	subject := fmt.Sprintf("Your Hearthwood order %s", shortID(o.ID))
	body := buildOrderBody(o)

	return m.client.Send(ctx, m.fromAddr, o.Email, subject, body)
}

func buildOrderBody(o *orderdom.Order) string {
	var b strings.Builder

	name := strings.TrimSpace(o.Name)
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(&b, "Hi %s,\n\n", name)
	fmt.Fprintf(&b, "Thanks for your order! Here is what you bought:\n\n")

	for _, it := range o.Items {
		fmt.Fprintf(&b, "  %dx %s — $%.2f\n", it.Quantity, it.Name, it.Price*float64(it.Quantity))
	}

	fmt.Fprintf(&b, "\nTotal: $%.2f\n", o.Total)
	fmt.Fprintf(&b, "Order id: %s\n", o.ID)
	fmt.Fprintf(&b, "Placed at: %s\n\n", o.CreatedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "We'll let you know when your firewood is on its way.\n")

	return b.String()
}

// shortID keeps the subject line readable for uuid order ids.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
