package dto

import (
	"byway/models"
	"strings"
)

type InstructorDTO struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name" validate:"required,max=100"`
	PictureURL  string          `json:"pictureUrl" validate:"max=200"`
	Title       models.Category `json:"title" validate:"category"`
	Rate        float64         `json:"rate" validate:"gte=0,lte=5"`
	Description string          `json:"description" validate:"max=1000"`
	CourseIDs   []uint          `json:"courseIds"`
}

func FromInstructor(i *models.Instructor) InstructorDTO {
	ids := make([]uint, len(i.Courses))
	for n, c := range i.Courses {
		ids[n] = c.ID
	}
	return InstructorDTO{
		ID:          i.ID,
		Name:        i.Name,
		PictureURL:  i.PictureURL,
		Title:       i.Title,
		Rate:        i.Rate,
		Description: i.Description,
		CourseIDs:   ids,
	}
}

func (d *InstructorDTO) ToInstructor() models.Instructor {
	var i models.Instructor
	d.ApplyTo(&i)
	return i
}

func (d *InstructorDTO) ApplyTo(i *models.Instructor) {
	i.Name = strings.TrimSpace(d.Name)
	i.PictureURL = strings.TrimSpace(d.PictureURL)
	i.Title = d.Title
	i.Rate = d.Rate
	i.Description = d.Description
}

type TopInstructorDTO struct {
	InstructorDTO
	NumberOfStudents int64 `json:"numberOfStudents"`
}

func FromInstructorStat(s *models.InstructorStat) TopInstructorDTO {
	return TopInstructorDTO{InstructorDTO: FromInstructor(&s.Instructor), NumberOfStudents: s.NumberOfStudents}
}
