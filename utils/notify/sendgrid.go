package notify

import (
	"byway/utils/logger"
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendgridClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type SendGridNotifier struct {
	client sendgridClient
	from   *mail.Email
	log    *logger.Logger
}

func NewSendGrid(apiKey, fromName, fromEmail string, log *logger.Logger) *SendGridNotifier {
	return &SendGridNotifier{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(fromName, fromEmail),
		log:    log.With("notifier", "sendgrid"),
	}
}

func (n *SendGridNotifier) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := mail.NewSingleEmail(n.from, subject, mail.NewEmail("", to), "", htmlBody)
	resp, err := n.client.SendWithContext(ctx, msg)
	if err != nil {
		n.log.Error("SendGrid request failed", "to", to, "error", err)
		return err
	}
	if resp.StatusCode >= 300 {
		n.log.Error("SendGrid rejected message", "to", to, "status", resp.StatusCode, "body", resp.Body)
		return fmt.Errorf("sendgrid: status %d", resp.StatusCode)
	}
	return nil
}
