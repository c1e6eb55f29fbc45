package mail

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderdom "hearthwood/internal/domain/order"
)

type capturedMail struct {
	from, to, subject, body string
}

type fakeEmailClient struct {
	sent []capturedMail
}

func (f *fakeEmailClient) Send(ctx context.Context, from, to, subject, body string) error {
	f.sent = append(f.sent, capturedMail{from: from, to: to, subject: subject, body: body})
	return nil
}

func testOrder(t *testing.T) *orderdom.Order {
	t.Helper()
	o, err := orderdom.NewOrder(
		"3f2a9c10-0000-0000-0000-000000000000", "u1", "ed@example.com", "Ed",
		[]orderdom.ItemSnapshot{
			{ProductID: "oak", Name: "Oak bundle", Price: 12.5, Quantity: 2},
			{ProductID: "birch", Name: "Birch bundle", Price: 8, Quantity: 1},
		},
		time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return o
}

func TestSendOrderConfirmation_BuildsSummary(t *testing.T) {
	client := &fakeEmailClient{}
	m := NewOrderMailer(client, "orders@hearthwood.shop")

	require.NoError(t, m.SendOrderConfirmation(context.Background(), testOrder(t)))

	require.Len(t, client.sent, 1)
	sent := client.sent[0]
	assert.Equal(t, "orders@hearthwood.shop", sent.from)
	assert.Equal(t, "ed@example.com", sent.to)
	assert.Contains(t, sent.subject, "3f2a9c10")
	assert.Contains(t, sent.body, "Hi Ed")
	assert.Contains(t, sent.body, "2x Oak bundle")
	assert.Contains(t, sent.body, "$25.00")
	assert.Contains(t, sent.body, "Total: $33.00")
}

func TestSendOrderConfirmation_NoEmailIsSkipped(t *testing.T) {
	client := &fakeEmailClient{}
	m := NewOrderMailer(client, "orders@hearthwood.shop")

	o := testOrder(t)
	o.Email = ""

	require.NoError(t, m.SendOrderConfirmation(context.Background(), o))
	assert.Empty(t, client.sent)
}

func TestSendOrderConfirmation_NilOrder(t *testing.T) {
	m := NewOrderMailer(&fakeEmailClient{}, "orders@hearthwood.shop")
	assert.Error(t, m.SendOrderConfirmation(context.Background(), nil))
}
