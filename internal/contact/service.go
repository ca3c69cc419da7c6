package contact

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"resume-roaster/internal/shared/metrics"
	"resume-roaster/internal/shared/telemetry"
)

const (
	DefaultFrom = "Resume Roaster <onboarding@resend.dev>"
	DefaultTo   = "contact@resume-roaster.app"
)

// ErrMissingFields is returned when any submission field is blank.
var ErrMissingFields = errors.New("All fields are required")

// Submission is a contact form post.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Validate reports ErrMissingFields when any field is blank.
func (s Submission) Validate() error {
	for _, v := range []string{s.Name, s.Email, s.Subject, s.Message} {
		if strings.TrimSpace(v) == "" {
			return ErrMissingFields
		}
	}
	return nil
}

// Service relays contact submissions to the site owner.
type Service struct {
	Mailer Mailer
	From   string
	To     string
}

// NewService constructs a Service, filling in default addresses.
func NewService(mailer Mailer, from, to string) *Service {
	if strings.TrimSpace(from) == "" {
		from = DefaultFrom
	}
	if strings.TrimSpace(to) == "" {
		to = DefaultTo
	}
	return &Service{Mailer: mailer, From: from, To: to}
}

// Submit validates and sends one submission.
func (s *Service) Submit(ctx context.Context, sub Submission) error {
	if err := sub.Validate(); err != nil {
		metrics.IncContact("rejected")
		return err
	}
	if s.Mailer == nil {
		metrics.IncContact("error")
		return ErrNotConfigured
	}

	id, err := s.Mailer.Send(ctx, BuildEmail(sub, s.From, s.To))
	if err != nil {
		metrics.IncContact("error")
		telemetry.Error("contact.send_failed", map[string]any{"err": err})
		return fmt.Errorf("send contact email: %w", err)
	}

	metrics.IncContact("sent")
	telemetry.Info("contact.sent", map[string]any{"message_id": id})
	return nil
}

// BuildEmail renders the plain-text and HTML bodies for sub.
func BuildEmail(sub Submission, from, to string) Email {
	text := fmt.Sprintf("Name: %s\nEmail: %s\nSubject: %s\n\nMessage:\n%s\n",
		sub.Name, sub.Email, sub.Subject, sub.Message)

	var b strings.Builder
	b.WriteString("<h2>New Contact Form Submission</h2>\n")
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>\n", html.EscapeString(sub.Name))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>\n", html.EscapeString(sub.Email))
	fmt.Fprintf(&b, "<p><strong>Subject:</strong> %s</p>\n", html.EscapeString(sub.Subject))
	b.WriteString("<h3>Message:</h3>\n")
	fmt.Fprintf(&b, "<p>%s</p>\n", strings.ReplaceAll(html.EscapeString(sub.Message), "\n", "<br>"))

	return Email{
		From:    from,
		To:      []string{to},
		ReplyTo: sub.Email,
		Subject: "Contact Form: " + sub.Subject,
		Text:    text,
		HTML:    b.String(),
	}
}
