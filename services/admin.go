package services

import (
	"byway/models"
	"byway/utils/apperr"
	"byway/utils/logger"
	"context"
	"time"

	"github.com/jinzhu/now"
)

type StatsSource interface {
	Counts(ctx context.Context) (models.AdminStats, error)
	TotalRevenue(ctx context.Context) (float64, error)
	Window(ctx context.Context, from, to time.Time) (models.SalesWindow, error)
}

type AdminService struct {
	stats StatsSource
	log   *logger.Logger
	clock func() time.Time
}

func NewAdminService(stats StatsSource, log *logger.Logger) *AdminService {
	return &AdminService{stats: stats, log: log.With("service", "AdminService"), clock: time.Now}
}

// Stats reports the dashboard counters. TotalWallet values every enrollment at the current course price.
func (s *AdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	stats, err := s.stats.Counts(ctx)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	total, err := s.stats.TotalRevenue(ctx)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	stats.TotalWallet = RoundMoney(total)

	from := now.With(s.clock().UTC()).BeginningOfMonth()
	month, err := s.stats.Window(ctx, from, from.AddDate(0, 1, 0))
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	stats.MonthRevenue = RoundMoney(month.Revenue)
	stats.MonthEnrollments = month.Enrollments
	return &stats, nil
}
