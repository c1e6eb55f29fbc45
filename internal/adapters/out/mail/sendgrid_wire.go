// internal/adapters/out/mail/sendgrid_wire.go
package mail

import (
	"log"
	"os"
)

// 環境変数名（Cloud Run / ローカル共通）
const (
	envSendGridAPIKey = "SENDGRID_API_KEY"
	envSendGridFrom   = "SENDGRID_FROM" // 例: orders@hearthwood.shop
)

// NewOrderMailerWithSendGrid builds the SendGrid-backed OrderMailer from env.
//
// - SENDGRID_API_KEY : SendGrid API key
// - SENDGRID_FROM    : sender address
func NewOrderMailerWithSendGrid() *OrderMailer {
	apiKey := os.Getenv(envSendGridAPIKey)
	fromAddr := os.Getenv(envSendGridFrom)

	if apiKey == "" {
		log.Printf("[mail] WARN: SENDGRID_API_KEY is empty. OrderMailer will fail to send mail.")
	}
	if fromAddr == "" {
		log.Printf("[mail] WARN: SENDGRID_FROM is empty. OrderMailer will fail to send mail.")
	}

	client := NewSendGridClient(apiKey)
	mailer := NewOrderMailer(client, fromAddr)

	log.Printf("[mail] OrderMailerWithSendGrid initialized. from=%s", fromAddr)

	return mailer
}
