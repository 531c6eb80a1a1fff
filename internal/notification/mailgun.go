package notification

import (
	"context"
	"fmt"

	"github.com/mailgun/mailgun-go/v4"

	"bistro-boss/internal/config"
	"bistro-boss/internal/models"
)

type mailClient interface {
	NewMessage(from, subject, text string, to ...string) *mailgun.Message
	Send(ctx context.Context, m *mailgun.Message) (string, string, error)
}

// MailgunSender emails the customer a payment confirmation
type MailgunSender struct {
	client  mailClient
	from    string
	subject string
}

func NewMailgunSender(cfg config.MailgunConfig) *MailgunSender {
	return &MailgunSender{
		client:  mailgun.NewMailgun(cfg.Domain, cfg.APIKey),
		from:    cfg.From,
		subject: cfg.Subject,
	}
}

func (s *MailgunSender) Channel() string { return models.ChannelEmail }

func (s *MailgunSender) Send(ctx context.Context, msg *models.PaymentConfirmation) error {
	html, err := RenderConfirmationHTML(msg)
	if err != nil {
		return err
	}

	m := s.client.NewMessage(s.from, s.subject, RenderConfirmationText(msg), msg.Email)
	m.SetHtml(html)

	if _, _, err := s.client.Send(ctx, m); err != nil {
		return fmt.Errorf("mailgun send to %s: %w", msg.Email, err)
	}
	return nil
}
