// Package notify delivers alert notifications to users over SMTP.
package notify

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/ItsMattG/property-tracker-sub009/internal/domain"

	"github.com/jordan-wright/email"
	"go.uber.org/zap"
)

// SMTPConfig holds mail server settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// EmailNotifier implements port.Notifier over plain SMTP.
type EmailNotifier struct {
	cfg    SMTPConfig
	logger *zap.Logger
}

// NewEmailNotifier creates an SMTP-backed notifier.
func NewEmailNotifier(cfg SMTPConfig, logger *zap.Logger) *EmailNotifier {
	return &EmailNotifier{cfg: cfg, logger: logger}
}

// SendAlert emails the alert message to the user. Called from the nightly
// scan, so a failure is logged and returned but never retried here.
func (n *EmailNotifier) SendAlert(ctx context.Context, to string, alert *domain.Alert) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e := email.NewEmail()
	e.From = n.cfg.From
	e.To = []string{to}

	switch alert.Type {
	case domain.AlertMissedRent:
		e.Subject = "Missed rent payment detected"
	case domain.AlertMilestone:
		e.Subject = "Portfolio milestone reached"
	default:
		e.Subject = "Portfolio alert"
	}

	body := fmt.Sprintf("Hi,\n\n%s\n\nView details in your portfolio dashboard.\n", alert.Message)
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	auth := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	if err := e.Send(addr, auth); err != nil {
		n.logger.Error("notify: failed to send alert email",
			zap.String("to", to),
			zap.String("alert_type", alert.Type),
			zap.Error(err),
		)
		return fmt.Errorf("send alert email: %w", err)
	}

	n.logger.Info("notify: alert email sent",
		zap.String("to", to),
		zap.String("alert_type", alert.Type),
	)
	return nil
}
