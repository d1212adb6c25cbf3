package dto

import "time"

type LoginRequestDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponseDTO struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// UserDTO is the public projection of a user. PasswordHash never leaves the
// model layer.
type UserDTO struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Surname         string    `json:"surname"`
	Username        string    `json:"username"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty"`
	Role            string    `json:"role"`
	CreatedAt       time.Time `json:"created_at"`
}

type ProfileUpdateDTO struct {
	Name        string `json:"name" binding:"required"`
	Surname     string `json:"surname" binding:"required"`
	Username    string `json:"username" binding:"required"`
	NewPassword string `json:"new_password,omitempty" binding:"omitempty,min=6"`
}
