package repository

import (
	"byway/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type StatsRepo struct {
	db *gorm.DB
}

func NewStatsRepo(db *gorm.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// Counts fills the counters of AdminStats. Revenue figures are left to the caller.
func (r *StatsRepo) Counts(ctx context.Context) (models.AdminStats, error) {
	var s models.AdminStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.User{}).Where("is_admin = ?", false).Count(&s.UsersCount).Error; err != nil {
		return s, err
	}
	if err := db.Model(&models.Instructor{}).Count(&s.InstructorsCount).Error; err != nil {
		return s, err
	}
	if err := db.Model(&models.Course{}).Count(&s.CoursesCount).Error; err != nil {
		return s, err
	}
	if err := db.Model(&models.Course{}).Distinct("category").Count(&s.CategoriesCount).Error; err != nil {
		return s, err
	}
	return s, nil
}

// TotalRevenue sums the current price of every enrolled course.
func (r *StatsRepo) TotalRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.revenue(r.db.WithContext(ctx)).Scan(&total).Error
	return total, err
}

// Window counts enrollments created in [from, to) and their revenue.
func (r *StatsRepo) Window(ctx context.Context, from, to time.Time) (models.SalesWindow, error) {
	w := models.SalesWindow{From: from, To: to}
	db := r.db.WithContext(ctx)

	err := db.Model(&models.Enrollment{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&w.Enrollments).Error
	if err != nil {
		return w, err
	}
	err = r.revenue(db).
		Where("enrollments.created_at >= ? AND enrollments.created_at < ?", from, to).
		Scan(&w.Revenue).Error
	return w, err
}

func (r *StatsRepo) revenue(db *gorm.DB) *gorm.DB {
	return db.Table("enrollments").
		Select("COALESCE(SUM(courses.price), 0)").
		Joins("JOIN courses ON courses.id = enrollments.course_id")
}

func (r *StatsRepo) AdminEmails(ctx context.Context) ([]string, error) {
	var emails []string
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("is_admin = ?", true).
		Order("id ASC").
		Pluck("email", &emails).Error
	return emails, err
}
