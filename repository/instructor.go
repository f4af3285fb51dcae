package repository

import (
	"byway/models"
	"byway/utils/apperr"
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InstructorRepo struct {
	db *gorm.DB
}

func NewInstructorRepo(db *gorm.DB) *InstructorRepo {
	return &InstructorRepo{db: db}
}

func withCourses(q *gorm.DB) *gorm.DB {
	return q.Preload("Courses", func(db *gorm.DB) *gorm.DB { return db.Order("courses.id ASC") })
}

func (r *InstructorRepo) GetByID(ctx context.Context, id uint) (*models.Instructor, error) {
	var inst models.Instructor
	err := withCourses(r.db.WithContext(ctx)).First(&inst, id).Error
	if err != nil {
		return nil, notFound(err, "Instructor", id)
	}
	return &inst, nil
}

func (r *InstructorRepo) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Instructor{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *InstructorRepo) Page(ctx context.Context, page, size int) ([]models.Instructor, int64, error) {
	var (
		items []models.Instructor
		total int64
	)
	if err := r.db.WithContext(ctx).Model(&models.Instructor{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := withCourses(r.db.WithContext(ctx)).Order("id ASC").Offset(offset(page, size)).Limit(size).Find(&items).Error
	return items, total, err
}

func (r *InstructorRepo) All(ctx context.Context) ([]models.Instructor, error) {
	var items []models.Instructor
	err := withCourses(r.db.WithContext(ctx)).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *InstructorRepo) Create(ctx context.Context, inst *models.Instructor) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(inst).Error
}

func (r *InstructorRepo) Update(ctx context.Context, inst *models.Instructor) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(inst).Error
}

func (r *InstructorRepo) Delete(ctx context.Context, inst *models.Instructor) error {
	err := r.db.WithContext(ctx).Delete(&models.Instructor{}, inst.ID).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperr.Conflict("Cannot delete instructor with assigned courses.", inst.ID)
	}
	return err
}

func (r *InstructorRepo) CourseCount(ctx context.Context, id uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Course{}).Where("instructor_id = ?", id).Count(&n).Error
	return n, err
}

// GetByName is a case-insensitive exact match on the trimmed name.
func (r *InstructorRepo) GetByName(ctx context.Context, name string) (*models.Instructor, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	var inst models.Instructor
	err := withCourses(r.db.WithContext(ctx)).
		Where("LOWER(name) = ?", name).
		Order("id ASC").
		First(&inst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound(fmt.Sprintf("Instructor %q not found.", name))
	}
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

// SearchPage matches name, description and title label.
func (r *InstructorRepo) SearchPage(ctx context.Context, query string, page, size int) ([]models.Instructor, int64, error) {
	pattern := containsPattern(query)
	q := r.db.WithContext(ctx).Model(&models.Instructor{}).
		Where(likeClause("name", "description", "title"), repeatArg(pattern, 3)...).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []models.Instructor
	err := withCourses(q).Order("id ASC").Offset(offset(page, size)).Limit(size).Find(&items).Error
	return items, total, err
}

type studentCount struct {
	InstructorID uint
	Students     int64
}

// Top returns the best rated instructors with the number of enrollments across their courses.
func (r *InstructorRepo) Top(ctx context.Context, top int) ([]models.InstructorStat, error) {
	var insts []models.Instructor
	if err := withCourses(r.db.WithContext(ctx)).Order("rate DESC, id ASC").Limit(top).Find(&insts).Error; err != nil {
		return nil, err
	}
	if len(insts) == 0 {
		return []models.InstructorStat{}, nil
	}

	ids := make([]uint, len(insts))
	for i, inst := range insts {
		ids[i] = inst.ID
	}
	var counts []studentCount
	err := r.db.WithContext(ctx).Table("enrollments").
		Select("courses.instructor_id AS instructor_id, COUNT(*) AS students").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("courses.instructor_id IN ?", ids).
		Group("courses.instructor_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]int64, len(counts))
	for _, c := range counts {
		byID[c.InstructorID] = c.Students
	}

	out := make([]models.InstructorStat, len(insts))
	for i, inst := range insts {
		out[i] = models.InstructorStat{Instructor: inst, NumberOfStudents: byID[inst.ID]}
	}
	return out, nil
}
