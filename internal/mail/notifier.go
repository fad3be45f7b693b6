package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/course-service/internal/config"
)

// Notifier delivers a message to a recipient. Implementations report
// transport-level success or failure only; delivery beyond the relay is not
// guaranteed or tracked.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPNotifier sends mail through a configured SMTP relay.
type SMTPNotifier struct {
	cfg config.MailConfig
}

// NewSMTPNotifier builds a notifier for the configured relay.
func NewSMTPNotifier(cfg config.MailConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg}
}

// Send submits the message synchronously and returns the relay's error, if any.
func (n *SMTPNotifier) Send(_ context.Context, to, subject, body string) error {
	addr := net.JoinHostPort(n.cfg.Host, n.cfg.Port)

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", n.cfg.From),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"",
		body,
	}, "\r\n")

	return smtp.SendMail(addr, auth, n.cfg.From, []string{to}, []byte(msg))
}

// LogNotifier logs instead of sending. Used when no SMTP host is configured.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier builds the logging fallback.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Send records the message and always succeeds.
func (n *LogNotifier) Send(_ context.Context, to, subject, body string) error {
	n.logger.Info("email notification (log only)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}

// FromConfig selects the SMTP notifier when a host is configured, otherwise
// the logging fallback.
func FromConfig(cfg config.MailConfig, logger *zap.Logger) Notifier {
	if strings.TrimSpace(cfg.Host) == "" {
		logger.Warn("SMTP_HOST not provided; email notifications are log-only")
		return NewLogNotifier(logger)
	}
	return NewSMTPNotifier(cfg)
}
