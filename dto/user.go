package dto

import (
	"byway/models"
	"time"
)

// UserDTO is the public view of a user. It never carries password material.
type UserDTO struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	PictureURL string    `json:"pictureUrl"`
	IsAdmin    bool      `json:"isAdmin"`
	CreatedAt  time.Time `json:"createdAt"`
}

func FromUser(u *models.User) UserDTO {
	return UserDTO{
		ID:         u.ID,
		Name:       u.Name,
		Username:   u.Username,
		Email:      u.Email,
		PictureURL: u.PictureURL,
		IsAdmin:    u.IsAdmin,
		CreatedAt:  u.CreatedAt,
	}
}

// UserWriteDTO is what an admin posts to create or edit a user. Password is never echoed back.
type UserWriteDTO struct {
	ID         uint   `json:"id"`
	Name       string `json:"name" validate:"required,max=100"`
	Username   string `json:"username" validate:"required,max=100,excludes=@"`
	Email      string `json:"email" validate:"required,email,max=100"`
	Password   string `json:"password,omitempty" validate:"omitempty,min=6"`
	PictureURL string `json:"pictureUrl" validate:"max=200"`
	IsAdmin    bool   `json:"isAdmin"`
}

type RegisterDTO struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginDTO accepts either an email or a username in Username.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenDTO struct {
	AccessToken string    `json:"accessToken"`
	Expiration  time.Time `json:"expiration"`
}

type PurchaseDTO struct {
	CourseIDs []uint `json:"courseIds"`
}
