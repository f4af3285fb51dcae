package models

import "time"

type Course struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	Name          string      `json:"name" gorm:"size:100;not null;index"`
	PictureURL    string      `json:"pictureUrl" gorm:"size:200"`
	Description   string      `json:"description" gorm:"size:1000"`
	Certification string      `json:"certification" gorm:"size:1000"`
	Category      Category    `json:"category" gorm:"size:50;not null;index"`
	Level         Level       `json:"level" gorm:"size:20;not null;default:'AllLevels'"`
	Rate          float64     `json:"rate" gorm:"not null;default:0;index"`
	Price         float64     `json:"price" gorm:"not null;default:0;index"`
	InstructorID  uint        `json:"instructorId" gorm:"not null;index"`
	Instructor    *Instructor `json:"instructor,omitempty" gorm:"foreignKey:InstructorID;constraint:OnDelete:RESTRICT"`
	Contents      []Content   `json:"contents" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time   `json:"createdAt" gorm:"<-:create;index"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// TotalLectures is the sum of lectures over all content units.
func (c *Course) TotalLectures() int {
	total := 0
	for _, content := range c.Contents {
		total += content.NumOfLectures
	}
	return total
}

// TotalHours is the sum of content durations, in hours.
func (c *Course) TotalHours() float64 {
	total := 0.0
	for _, content := range c.Contents {
		total += content.Duration
	}
	return total
}

func (c *Course) InstructorName() string {
	if c.Instructor == nil {
		return ""
	}
	return c.Instructor.Name
}
