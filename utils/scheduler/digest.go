// Package scheduler runs the periodic background jobs.
package scheduler

import (
	"byway/models"
	"byway/utils/logger"
	"byway/utils/notify"
	"context"
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

type DigestSource interface {
	Window(ctx context.Context, from, to time.Time) (models.SalesWindow, error)
	AdminEmails(ctx context.Context) ([]string, error)
}

// Digest mails the previous day's sales summary to every admin.
type Digest struct {
	src      DigestSource
	notifier notify.Notifier
	log      *logger.Logger
	clock    func() time.Time
}

func NewDigest(src DigestSource, notifier notify.Notifier, log *logger.Logger) *Digest {
	return &Digest{src: src, notifier: notifier, log: log.With("job", "sales-digest"), clock: time.Now}
}

// Run covers the whole of yesterday (UTC) and returns the number of emails delivered.
func (d *Digest) Run(ctx context.Context) int {
	today := now.With(d.clock().UTC()).BeginningOfDay()
	w, err := d.src.Window(ctx, today.AddDate(0, 0, -1), today)
	if err != nil {
		d.log.Error("Error computing sales window", "error", err)
		return 0
	}
	admins, err := d.src.AdminEmails(ctx)
	if err != nil {
		d.log.Error("Error fetching admin emails", "error", err)
		return 0
	}

	subject, body := notify.DigestEmail(w)
	sent := 0
	for _, to := range admins {
		if err := d.notifier.Send(ctx, to, subject, body); err != nil {
			d.log.Warn("Digest not delivered", "to", to, "error", err)
			continue
		}
		sent++
	}
	d.log.Info("Sales digest sent", "enrollments", w.Enrollments, "revenue", w.Revenue, "recipients", sent)
	return sent
}

// Start schedules d on spec and starts the cron loop. The caller stops it on shutdown.
func Start(spec string, d *Digest, log *logger.Logger) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		d.Run(ctx)
	}); err != nil {
		return nil, err
	}
	c.Start()
	log.Info("Sales digest scheduler started", "cron", spec)
	return c, nil
}
