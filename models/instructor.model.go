package models

import "time"

type Instructor struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;not null;index"`
	PictureURL  string    `json:"pictureUrl" gorm:"size:200"`
	Title       Category  `json:"title" gorm:"size:50;not null"`
	Rate        float64   `json:"rate" gorm:"not null;default:0"`
	Description string    `json:"description" gorm:"size:1000"`
	Courses     []Course  `json:"courses,omitempty" gorm:"foreignKey:InstructorID"`
	CreatedAt   time.Time `json:"createdAt" gorm:"<-:create"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
