package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
)

var ErrMissingRecipient = errors.New("payload has no recipient email")

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
	FromAddr string
}

// SMTPSender delivers confirmations over plain SMTP.
type SMTPSender struct {
	cfg      SMTPConfig
	renderer *Renderer
}

func NewSMTPSender(cfg SMTPConfig, renderer *Renderer) *SMTPSender {
	return &SMTPSender{cfg: cfg, renderer: renderer}
}

func (s *SMTPSender) Send(ctx context.Context, payload EmailPayload) Result {
	if payload.Customer.Email == "" {
		return failure(ErrMissingRecipient)
	}

	rendered, err := s.renderer.Render(payload)
	if err != nil {
		return failure(err)
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(s.cfg.FromName, s.cfg.FromAddr); err != nil {
		return failure(fmt.Errorf("invalid from address: %w", err))
	}
	if err := msg.To(rendered.To); err != nil {
		return failure(fmt.Errorf("invalid recipient address: %w", err))
	}

	messageID := fmt.Sprintf("%s@%s", uuid.NewString(), s.cfg.Host)
	msg.SetMessageIDWithValue(messageID)
	msg.Subject(rendered.Subject)
	msg.SetBodyString(mail.TypeTextPlain, rendered.Text)
	msg.AddAlternativeString(mail.TypeTextHTML, rendered.HTML)

	client, err := mail.NewClient(s.cfg.Host,
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return failure(fmt.Errorf("smtp client setup failed: %w", err))
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return failure(fmt.Errorf("smtp send failed: %w", err))
	}

	return Result{Success: true, MessageID: messageID}
}
