package notify

import (
	"byway/config"
	"byway/models"
	"byway/utils/logger"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"testing"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookPostsJSON(t *testing.T) {
	var got webhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	n := NewWebhook(srv.URL, logger.Nop())
	require.NoError(t, n.Send(context.Background(), "a@b.co", "hi", "<p>x</p>"))
	assert.Equal(t, webhookPayload{To: "a@b.co", Subject: "hi", HTML: "<p>x</p>"}, got)
}

func TestWebhookReportsRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	err := NewWebhook(srv.URL, logger.Nop()).Send(context.Background(), "a@b.co", "hi", "x")
	assert.Error(t, err)
}

func TestSMTPBuildsMessage(t *testing.T) {
	n := NewSMTP("smtp.example.com", "587", "from@byway.local", "Byway", "pw", logger.Nop())
	var (
		addr string
		to   []string
		msg  string
	)
	n.send = func(a string, _ smtp.Auth, _ string, rcpt []string, body []byte) error {
		addr, to, msg = a, rcpt, string(body)
		return nil
	}

	require.NoError(t, n.Send(context.Background(), "u@example.com", "Subject line", "<b>hello</b>"))
	assert.Equal(t, "smtp.example.com:587", addr)
	assert.Equal(t, []string{"u@example.com"}, to)
	assert.Contains(t, msg, "Subject: Subject line")
	assert.Contains(t, msg, "From: Byway <from@byway.local>")
	assert.Contains(t, msg, "<b>hello</b>")
}

func TestSMTPPropagatesFailure(t *testing.T) {
	n := NewSMTP("h", "1", "f", "n", "p", logger.Nop())
	n.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("refused") }
	assert.EqualError(t, n.Send(context.Background(), "u@example.com", "s", "b"), "refused")
}

type fakeSendGrid struct {
	status int
	sent   *mail.SGMailV3
}

func (f *fakeSendGrid) SendWithContext(_ context.Context, m *mail.SGMailV3) (*rest.Response, error) {
	f.sent = m
	return &rest.Response{StatusCode: f.status}, nil
}

func TestSendGridStatusHandling(t *testing.T) {
	fake := &fakeSendGrid{status: http.StatusAccepted}
	n := NewSendGrid("key", "Byway", "from@byway.local", logger.Nop())
	n.client = fake

	require.NoError(t, n.Send(context.Background(), "u@example.com", "s", "<p>b</p>"))
	require.NotNil(t, fake.sent)
	assert.Equal(t, "s", fake.sent.Subject)

	fake.status = http.StatusUnauthorized
	assert.Error(t, n.Send(context.Background(), "u@example.com", "s", "b"))
}

func TestNewSelectsProvider(t *testing.T) {
	n, err := New(&config.Config{EmailProvider: "log"}, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &LogNotifier{}, n)

	_, err = New(&config.Config{EmailProvider: "sendgrid"}, logger.Nop())
	assert.Error(t, err)

	n, err = New(&config.Config{EmailProvider: "webhook", NotifyWebhookURL: "http://relay"}, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &WebhookNotifier{}, n)

	_, err = New(&config.Config{EmailProvider: "pigeon"}, logger.Nop())
	assert.Error(t, err)
}

func TestPurchaseEmailListsItems(t *testing.T) {
	subject, body := PurchaseEmail("Sam <script>", &models.Receipt{
		Number:     "r-1",
		Items:      []models.ReceiptItem{{CourseID: 1, Course: "Go APIs", Price: 100}, {CourseID: 2, Course: "React", Price: 50}},
		Subtotal:   150,
		Tax:        22.5,
		TotalPrice: 172.5,
		IssuedAt:   time.Now(),
	})
	assert.Equal(t, PurchaseSubject, subject)
	assert.Contains(t, body, "Go APIs")
	assert.Contains(t, body, "$50.00")
	assert.Contains(t, body, "Total: $172.50")
	assert.Contains(t, body, "Sam &lt;script&gt;")
	assert.NotContains(t, body, "%!")
}

func TestDigestEmail(t *testing.T) {
	day := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	subject, body := DigestEmail(models.SalesWindow{From: day, To: day.AddDate(0, 0, 1), Enrollments: 3, Revenue: 40.5})
	assert.Contains(t, subject, "2026-03-04")
	assert.Contains(t, body, "New enrollments: 3")
	assert.Contains(t, body, "$40.50")
}
