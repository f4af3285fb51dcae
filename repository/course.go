package repository

import (
	"byway/models"
	"byway/utils/apperr"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const totalLecturesSQL = "(SELECT COALESCE(SUM(contents.num_of_lectures), 0) FROM contents WHERE contents.course_id = courses.id)"

var courseOrder = map[models.SortBy]string{
	models.SortNewest:       "courses.created_at DESC, courses.id DESC",
	models.SortOldest:       "courses.created_at ASC, courses.id ASC",
	models.SortHighestPrice: "courses.price DESC, courses.id ASC",
	models.SortLowestPrice:  "courses.price ASC, courses.id ASC",
	models.SortHighestRated: "courses.rate DESC, courses.id ASC",
	models.SortLowestRated:  "courses.rate ASC, courses.id ASC",
}

type CourseRepo struct {
	db *gorm.DB
}

func NewCourseRepo(db *gorm.DB) *CourseRepo {
	return &CourseRepo{db: db}
}

func withCourseDetails(q *gorm.DB) *gorm.DB {
	return q.Preload("Instructor").Preload("Contents", func(db *gorm.DB) *gorm.DB {
		return db.Order("contents.id ASC")
	})
}

func (r *CourseRepo) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	if err := withCourseDetails(r.db.WithContext(ctx)).First(&course, id).Error; err != nil {
		return nil, notFound(err, "Course", id)
	}
	return &course, nil
}

// GetByIDs returns the courses that exist among ids, in ascending id order.
func (r *CourseRepo) GetByIDs(ctx context.Context, ids []uint) ([]models.Course, error) {
	var courses []models.Course
	if len(ids) == 0 {
		return courses, nil
	}
	err := withCourseDetails(r.db.WithContext(ctx)).
		Where("courses.id IN ?", ids).
		Order("courses.id ASC").
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepo) Page(ctx context.Context, page, size int) ([]models.Course, int64, error) {
	var (
		courses []models.Course
		total   int64
	)
	if err := r.db.WithContext(ctx).Model(&models.Course{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := withCourseDetails(r.db.WithContext(ctx)).
		Order("courses.id ASC").
		Offset(offset(page, size)).Limit(size).
		Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepo) All(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	err := withCourseDetails(r.db.WithContext(ctx)).Order("courses.id ASC").Find(&courses).Error
	return courses, err
}

// Create inserts the course together with its contents. The instructor row is never touched.
func (r *CourseRepo) Create(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Omit("Instructor").Create(course).Error
}

// Update replaces every column and the full content list in one transaction.
func (r *CourseRepo) Update(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", course.ID).Delete(&models.Content{}).Error; err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(course).Error; err != nil {
			return err
		}
		if len(course.Contents) == 0 {
			return nil
		}
		for i := range course.Contents {
			course.Contents[i].ID = 0
			course.Contents[i].CourseID = course.ID
		}
		return tx.Create(&course.Contents).Error
	})
}

func (r *CourseRepo) Delete(ctx context.Context, course *models.Course) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", course.ID).Delete(&models.Content{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Course{}, course.ID).Error
	})
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperr.Conflict("Cannot delete course with enrolled users.", course.ID)
	}
	return err
}

func (r *CourseRepo) EnrolledCount(ctx context.Context, id uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Enrollment{}).Where("course_id = ?", id).Count(&n).Error
	return n, err
}

// Filter applies the category, rating, price and lecture-bucket criteria, sorts, counts the
// whole match set and then cuts out the requested page.
func (r *CourseRepo) Filter(ctx context.Context, f models.CourseFilter) ([]models.Course, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Course{})

	if len(f.Categories) > 0 {
		q = q.Where("courses.category IN ?", f.Categories)
	}
	if f.Rate > 0 {
		q = q.Where("courses.rate = ?", f.Rate)
	}
	q = q.Where("courses.price >= ? AND courses.price <= ?", f.MinimumPrice, f.MaximumPrice)
	if f.LectureBucket != nil {
		q = q.Where(totalLecturesSQL+" BETWEEN ? AND ?", f.LectureBucket.Min, f.LectureBucket.Max)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := courseOrder[f.SortBy]
	if !ok {
		order = courseOrder[models.SortHighestRated]
	}
	var courses []models.Course
	err := withCourseDetails(q).
		Order(order).
		Offset(offset(f.PageNumber, f.PageSize)).Limit(f.PageSize).
		Find(&courses).Error
	return courses, total, err
}

// Search matches name, description, instructor name and category label, capped at top.
func (r *CourseRepo) Search(ctx context.Context, query string, top int) ([]models.Course, error) {
	pattern := containsPattern(query)
	var courses []models.Course
	err := withCourseDetails(r.db.WithContext(ctx)).
		Select("courses.*").
		Joins("LEFT JOIN instructors ON instructors.id = courses.instructor_id").
		Where(likeClause("courses.name", "courses.description", "instructors.name", "courses.category"), repeatArg(pattern, 4)...).
		Order("courses.rate DESC, courses.id ASC").
		Limit(top).
		Find(&courses).Error
	return courses, err
}

// SearchPage matches name, description and category label.
func (r *CourseRepo) SearchPage(ctx context.Context, query string, page, size int) ([]models.Course, int64, error) {
	pattern := containsPattern(query)
	q := r.db.WithContext(ctx).Model(&models.Course{}).
		Where(likeClause("courses.name", "courses.description", "courses.category"), repeatArg(pattern, 3)...).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var courses []models.Course
	err := withCourseDetails(q).
		Order("courses.id ASC").
		Offset(offset(page, size)).Limit(size).
		Find(&courses).Error
	return courses, total, err
}

// Categories lists the distinct categories that have at least one course.
func (r *CourseRepo) Categories(ctx context.Context) ([]models.Category, error) {
	cats := []models.Category{}
	err := r.db.WithContext(ctx).Model(&models.Course{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &cats).Error
	return cats, err
}

func (r *CourseRepo) TopCategories(ctx context.Context, top int) ([]models.CategoryStat, error) {
	stats := []models.CategoryStat{}
	err := r.db.WithContext(ctx).Model(&models.Course{}).
		Select("category, AVG(rate) AS average_rating, COUNT(*) AS course_count").
		Group("category").
		Order("average_rating DESC, category ASC").
		Limit(top).
		Scan(&stats).Error
	return stats, err
}

// TopRated returns the best rated courses, optionally restricted to one category.
func (r *CourseRepo) TopRated(ctx context.Context, category models.Category, top int) ([]models.Course, error) {
	q := withCourseDetails(r.db.WithContext(ctx))
	if category != "" {
		q = q.Where("courses.category = ?", category)
	}
	courses := []models.Course{}
	err := q.Order("courses.rate DESC, courses.id ASC").Limit(top).Find(&courses).Error
	return courses, err
}
