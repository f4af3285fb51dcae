// Package notify delivers transactional email: welcome, purchase confirmation and the admin digest.
package notify

import (
	"byway/config"
	"byway/utils/logger"
	"context"
	"fmt"
)

// Notifier sends one HTML message to one recipient.
type Notifier interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// New picks the transport named by EMAIL_PROVIDER.
func New(cfg *config.Config, log *logger.Logger) (Notifier, error) {
	switch cfg.EmailProvider {
	case "sendgrid":
		if cfg.SendGridAPIKey == "" {
			return nil, fmt.Errorf("EMAIL_PROVIDER=sendgrid requires SENDGRID_API_KEY")
		}
		return NewSendGrid(cfg.SendGridAPIKey, cfg.EmailSenderName, cfg.EmailSender, log), nil
	case "smtp":
		return NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailSender, cfg.EmailSenderName, cfg.Password, log), nil
	case "webhook":
		if cfg.NotifyWebhookURL == "" {
			return nil, fmt.Errorf("EMAIL_PROVIDER=webhook requires NOTIFY_WEBHOOK_URL")
		}
		return NewWebhook(cfg.NotifyWebhookURL, log), nil
	case "", "log":
		return NewLog(log), nil
	default:
		return nil, fmt.Errorf("unsupported EMAIL_PROVIDER %q", cfg.EmailProvider)
	}
}

// LogNotifier only writes the message to the log. Used in development.
type LogNotifier struct {
	log *logger.Logger
}

func NewLog(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log.With("notifier", "log")}
}

func (n *LogNotifier) Send(_ context.Context, to, subject, _ string) error {
	n.log.Info("Email (log only)", "to", to, "subject", subject)
	return nil
}
