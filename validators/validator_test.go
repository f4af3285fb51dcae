package validators

import (
	"byway/dto"
	"byway/models"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestStructAcceptsValidCourse(t *testing.T) {
	d := dto.CourseDTO{
		Name:         "Go in Practice",
		Category:     models.BackendDevelopment,
		Rate:         4.5,
		Price:        20,
		InstructorID: 1,
		Contents:     []dto.ContentDTO{{Name: "Intro", NumOfLectures: 3, Duration: 1.5}},
	}
	assert.Nil(t, Struct(&d))
}

func TestStructReportsFieldsByJSONName(t *testing.T) {
	d := dto.CourseDTO{
		Category: "Cooking",
		Rate:     7,
		Price:    -1,
		Contents: []dto.ContentDTO{{Name: "", NumOfLectures: -2}},
	}
	errs := Struct(&d)

	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "instructorId")
	assert.Contains(t, errs, "rate")
	assert.Contains(t, errs, "price")
	assert.Equal(t, `Unknown category "Cooking".`, errs["category"])
	assert.Contains(t, errs, "contents[0].name")
	assert.Contains(t, errs, "contents[0].numOfLectures")
}

func TestStructUserRules(t *testing.T) {
	errs := Struct(&dto.UserWriteDTO{Name: "A", Username: "a@b", Email: "nope", Password: "123"})

	assert.Contains(t, errs, "username")
	assert.Equal(t, "Invalid email format", errs["email"])
	assert.Contains(t, errs, "password")
}

func TestMustRegisterPanicsOnBadTag(t *testing.T) {
	v := newValidator()
	ok := func(validator.FieldLevel) bool { return true }

	assert.Panics(t, func() { mustRegister(v, "", ok) })
	assert.NotPanics(t, func() { mustRegister(v, "slug", ok) })
}
