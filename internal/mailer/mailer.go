package mailer

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer delivers account emails. A nil Mailer is valid; callers treat mail
// delivery as best effort.
type Mailer interface {
	SendPasswordReset(ctx context.Context, recipientEmail string) error
}

type SendGridMailer struct {
	apiKey     string
	sender     string
	senderName string
}

func NewSendGridMailer(apiKey, sender, senderName string) *SendGridMailer {
	return &SendGridMailer{
		apiKey:     apiKey,
		sender:     sender,
		senderName: senderName,
	}
}

func (m *SendGridMailer) SendPasswordReset(ctx context.Context, recipientEmail string) error {
	from := mail.NewEmail(m.senderName, m.sender)
	to := mail.NewEmail("", recipientEmail)
	subject := "Reset your password"

	plain := "We received a request to reset your password. If this was you, follow the link in your account settings."
	html := "<p>We received a request to reset your password. If this was you, follow the link in your account settings.</p>"

	message := mail.NewSingleEmail(from, subject, to, plain, html)
	client := sendgrid.NewSendClient(m.apiKey)

	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: unexpected status %d", response.StatusCode)
	}

	log.Printf("INFO [mailer] password reset email sent to %s", recipientEmail)
	return nil
}
