package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"github.com/todoapp/server/internal/shared/config"
)

// Sender sends plain-text email.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPSender sends email via SMTP.
type SMTPSender struct {
	config *config.MailConfig
	logger *zap.Logger
}

// NewSMTPSender creates a new SMTP sender.
func NewSMTPSender(cfg *config.MailConfig, logger *zap.Logger) *SMTPSender {
	return &SMTPSender{
		config: cfg,
		logger: logger,
	}
}

// Send sends a plain-text email. Transport errors propagate to the
// caller; there is no retry here.
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		s.config.FromAddress, to, subject, body)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var auth smtp.Auth
	if s.config.User != "" && s.config.Password != "" {
		auth = smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)
	}

	if err := smtp.SendMail(addr, auth, s.config.FromAddress, []string{to}, []byte(msg)); err != nil {
		s.logger.Error("failed to send email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return fmt.Errorf("send email: %w", err)
	}

	s.logger.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
