package models

import "time"

type User struct {
	ID             uint         `json:"id" gorm:"primaryKey"`
	Name           string       `json:"name" gorm:"size:100;not null"`
	Username       string       `json:"username" gorm:"size:100;not null;uniqueIndex"`
	Email          string       `json:"email" gorm:"size:100;not null;uniqueIndex"`
	HashedPassword string       `json:"-" gorm:"size:200;not null"`
	PictureURL     string       `json:"pictureUrl" gorm:"size:200"`
	IsAdmin        bool         `json:"isAdmin" gorm:"not null;default:false"`
	Enrollments    []Enrollment `json:"-" gorm:"foreignKey:UserID"`
	CreatedAt      time.Time    `json:"createdAt" gorm:"<-:create"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

func (u *User) Role() string {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}
