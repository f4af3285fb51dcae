package repository

import (
	"byway/database/dbtest"
	"byway/models"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	t           *testing.T
	db          *gorm.DB
	ctx         context.Context
	courses     *CourseRepo
	instructors *InstructorRepo
	users       *UserRepo
	stats       *StatsRepo
}

func newFixture(t *testing.T) *fixture {
	db := dbtest.Open(t)
	return &fixture{
		t:           t,
		db:          db,
		ctx:         context.Background(),
		courses:     NewCourseRepo(db),
		instructors: NewInstructorRepo(db),
		users:       NewUserRepo(db),
		stats:       NewStatsRepo(db),
	}
}

func (f *fixture) instructor(name string, title models.Category, rate float64) *models.Instructor {
	inst := &models.Instructor{Name: name, Title: title, Rate: rate, Description: "teaches " + string(title)}
	require.NoError(f.t, f.instructors.Create(f.ctx, inst))
	return inst
}

// course creates a course whose contents add up to lectures.
func (f *fixture) course(name string, inst *models.Instructor, cat models.Category, rate, price float64, lectures ...int) *models.Course {
	c := &models.Course{
		Name:         name,
		Description:  "about " + name,
		Category:     cat,
		Level:        models.AllLevels,
		Rate:         rate,
		Price:        price,
		InstructorID: inst.ID,
	}
	for i, n := range lectures {
		c.Contents = append(c.Contents, models.Content{Name: fmt.Sprintf("part %d", i+1), NumOfLectures: n, Duration: 1.5})
	}
	require.NoError(f.t, f.courses.Create(f.ctx, c))
	return c
}

func (f *fixture) user(username string, admin bool) *models.User {
	u := &models.User{
		Name:           username,
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: "x",
		IsAdmin:        admin,
	}
	require.NoError(f.t, f.users.Create(f.ctx, u))
	return u
}

func (f *fixture) setCreatedAt(c *models.Course, at time.Time) {
	require.NoError(f.t, f.db.Exec("UPDATE courses SET created_at = ? WHERE id = ?", at, c.ID).Error)
}

func ids(courses []models.Course) []uint {
	out := make([]uint, len(courses))
	for i, c := range courses {
		out[i] = c.ID
	}
	return out
}
