// Package dto holds the request and response shapes of the HTTP API and their mappings to models.
package dto

import (
	"byway/models"
	"strings"
	"time"
)

type ContentDTO struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name" validate:"required,max=100"`
	NumOfLectures int     `json:"numOfLectures" validate:"gte=0"`
	Duration      float64 `json:"duration" validate:"gte=0"`
}

type CourseDTO struct {
	ID             uint            `json:"id"`
	Name           string          `json:"name" validate:"required,max=100"`
	PictureURL     string          `json:"pictureUrl" validate:"max=200"`
	Description    string          `json:"description" validate:"max=1000"`
	Certification  string          `json:"certification" validate:"max=1000"`
	Category       models.Category `json:"category" validate:"category"`
	Level          models.Level    `json:"level" validate:"omitempty,level"`
	Rate           float64         `json:"rate" validate:"gte=0,lte=5"`
	Price          float64         `json:"price" validate:"gte=0"`
	InstructorID   uint            `json:"instructorId" validate:"required"`
	InstructorName string          `json:"instructorName"`
	Contents       []ContentDTO    `json:"contents" validate:"dive"`
	TotalLectures  int             `json:"totalLectures"`
	TotalHours     float64         `json:"totalHours"`
	CreatedAt      time.Time       `json:"createdAt"`
}

func FromCourse(c *models.Course) CourseDTO {
	contents := make([]ContentDTO, len(c.Contents))
	for i, ct := range c.Contents {
		contents[i] = ContentDTO{ID: ct.ID, Name: ct.Name, NumOfLectures: ct.NumOfLectures, Duration: ct.Duration}
	}
	return CourseDTO{
		ID:             c.ID,
		Name:           c.Name,
		PictureURL:     c.PictureURL,
		Description:    c.Description,
		Certification:  c.Certification,
		Category:       c.Category,
		Level:          c.Level,
		Rate:           c.Rate,
		Price:          c.Price,
		InstructorID:   c.InstructorID,
		InstructorName: c.InstructorName(),
		Contents:       contents,
		TotalLectures:  c.TotalLectures(),
		TotalHours:     c.TotalHours(),
		CreatedAt:      c.CreatedAt,
	}
}

func FromCourses(cs []models.Course) []CourseDTO {
	out := make([]CourseDTO, len(cs))
	for i := range cs {
		out[i] = FromCourse(&cs[i])
	}
	return out
}

func (d *CourseDTO) contents() []models.Content {
	out := make([]models.Content, len(d.Contents))
	for i, ct := range d.Contents {
		out[i] = models.Content{Name: strings.TrimSpace(ct.Name), NumOfLectures: ct.NumOfLectures, Duration: ct.Duration}
	}
	return out
}

func (d *CourseDTO) level() models.Level {
	if d.Level == "" {
		return models.AllLevels
	}
	return d.Level
}

// ToCourse builds a new course. Id, creation time and instructor name are ignored.
func (d *CourseDTO) ToCourse() models.Course {
	return models.Course{
		Name:          strings.TrimSpace(d.Name),
		PictureURL:    strings.TrimSpace(d.PictureURL),
		Description:   d.Description,
		Certification: d.Certification,
		Category:      d.Category,
		Level:         d.level(),
		Rate:          d.Rate,
		Price:         d.Price,
		InstructorID:  d.InstructorID,
		Contents:      d.contents(),
	}
}

// ApplyTo replaces every editable field of c, contents included.
func (d *CourseDTO) ApplyTo(c *models.Course) {
	c.Name = strings.TrimSpace(d.Name)
	c.PictureURL = strings.TrimSpace(d.PictureURL)
	c.Description = d.Description
	c.Certification = d.Certification
	c.Category = d.Category
	c.Level = d.level()
	c.Rate = d.Rate
	c.Price = d.Price
	if c.InstructorID != d.InstructorID {
		c.Instructor = nil
	}
	c.InstructorID = d.InstructorID
	c.Contents = d.contents()
}

// FilterDTO is the body of POST /api/courses/filter.
type FilterDTO struct {
	SortBy        string   `json:"sortBy"`
	Categories    []string `json:"categories"`
	Rate          float64  `json:"rate"`
	MinimumPrice  float64  `json:"minimumPrice"`
	MaximumPrice  *float64 `json:"maximumPrice"`
	LectureBucket string   `json:"numberOfLectures"`
	PageNumber    int      `json:"pageNumber"`
	PageSize      int      `json:"pageSize"`
}

type CartDTO struct {
	CourseIDs []uint `json:"courseIds"`
}
