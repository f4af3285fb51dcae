package models

// Content is a unit of a course. It has no identity outside its course.
type Content struct {
	ID            uint    `json:"id" gorm:"primaryKey"`
	CourseID      uint    `json:"courseId" gorm:"not null;index"`
	Name          string  `json:"name" gorm:"size:100;not null"`
	NumOfLectures int     `json:"numOfLectures" gorm:"not null;default:0"`
	Duration      float64 `json:"duration" gorm:"not null;default:0"` // hours
}
