package scheduler

import (
	"byway/models"
	"byway/utils/logger"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	from, to time.Time
	window   models.SalesWindow
	admins   []string
	err      error
}

func (s *stubSource) Window(_ context.Context, from, to time.Time) (models.SalesWindow, error) {
	s.from, s.to = from, to
	w := s.window
	w.From, w.To = from, to
	return w, s.err
}

func (s *stubSource) AdminEmails(context.Context) ([]string, error) {
	return s.admins, nil
}

type recorder struct {
	to   []string
	fail map[string]bool
}

func (r *recorder) Send(_ context.Context, to, _, _ string) error {
	if r.fail[to] {
		return errors.New("mailbox unavailable")
	}
	r.to = append(r.to, to)
	return nil
}

func TestDigestCoversYesterday(t *testing.T) {
	src := &stubSource{
		window: models.SalesWindow{Enrollments: 3, Revenue: 120},
		admins: []string{"a@byway.test", "b@byway.test"},
	}
	rec := &recorder{fail: map[string]bool{"b@byway.test": true}}
	d := NewDigest(src, rec, logger.Nop())
	d.clock = func() time.Time { return time.Date(2024, 3, 1, 7, 30, 0, 0, time.UTC) }

	sent := d.Run(context.Background())

	assert.Equal(t, 1, sent)
	assert.Equal(t, []string{"a@byway.test"}, rec.to)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), src.from)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), src.to)
}

func TestDigestWindowFailureSendsNothing(t *testing.T) {
	src := &stubSource{err: errors.New("db down"), admins: []string{"a@byway.test"}}
	rec := &recorder{}
	d := NewDigest(src, rec, logger.Nop())

	assert.Zero(t, d.Run(context.Background()))
	assert.Empty(t, rec.to)
}

func TestStartRejectsBadSpec(t *testing.T) {
	d := NewDigest(&stubSource{}, &recorder{}, logger.Nop())
	_, err := Start("not a cron", d, logger.Nop())
	assert.Error(t, err)

	c, err := Start("0 7 * * *", d, logger.Nop())
	require.NoError(t, err)
	c.Stop()
}
