package notify

import (
	"byway/utils/logger"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// WebhookNotifier posts each message as JSON to an external mail relay.
type WebhookNotifier struct {
	client *resty.Client
	url    string
	log    *logger.Logger
}

type webhookPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

func NewWebhook(url string, log *logger.Logger) *WebhookNotifier {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Content-Type", "application/json")
	return &WebhookNotifier{client: client, url: url, log: log.With("notifier", "webhook")}
}

func (n *WebhookNotifier) Send(ctx context.Context, to, subject, htmlBody string) error {
	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(webhookPayload{To: to, Subject: subject, HTML: htmlBody}).
		Post(n.url)
	if err != nil {
		n.log.Error("Webhook request failed", "to", to, "error", err)
		return err
	}
	if resp.IsError() {
		n.log.Error("Webhook rejected message", "to", to, "status", resp.StatusCode())
		return fmt.Errorf("notify webhook: status %d", resp.StatusCode())
	}
	return nil
}
