package models

import "time"

// Enrollment records that a user owns a course. A pair is unique; rows are only ever inserted.
type Enrollment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_enrollments_user_course"`
	CourseID  uint      `json:"courseId" gorm:"not null;uniqueIndex:idx_enrollments_user_course;index"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	Course    *Course   `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:RESTRICT"`
	CreatedAt time.Time `json:"createdAt" gorm:"<-:create;index"`
}
