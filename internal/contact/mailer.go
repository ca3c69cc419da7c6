package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"
)

// ErrNotConfigured is returned when no e-mail provider key is set.
var ErrNotConfigured = errors.New("Email configuration is missing")

// Email is one outbound message.
type Email struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers e-mail.
type Mailer interface {
	Send(ctx context.Context, msg Email) (string, error)
}

// ResendMailer sends through the Resend API.
type ResendMailer struct {
	client *resend.Client
}

var _ Mailer = (*ResendMailer)(nil)

// NewResendMailer builds a mailer for apiKey. An empty key yields a mailer
// that fails every send with ErrNotConfigured.
func NewResendMailer(apiKey string) *ResendMailer {
	if strings.TrimSpace(apiKey) == "" {
		return &ResendMailer{}
	}
	return &ResendMailer{client: resend.NewClient(apiKey)}
}

// Send returns the provider message id.
func (m *ResendMailer) Send(ctx context.Context, msg Email) (string, error) {
	if m == nil || m.client == nil {
		return "", ErrNotConfigured
	}
	sent, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		Text:    msg.Text,
		Html:    msg.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("resend send: %w", err)
	}
	return sent.Id, nil
}
