package user

import (
	"time"

	"gymdesk/internal/role"
)

type User struct {
	ID                 int        `db:"id" json:"id"`
	Name               string     `db:"name" json:"name"`
	Email              string     `db:"email" json:"email"`
	PasswordHash       string     `db:"password_hash" json:"-"`
	Role               role.Role  `db:"role" json:"role"`
	GymID              *int       `db:"gym_id" json:"gym_id,omitempty"`
	MembershipDuration *string    `db:"membership_duration" json:"membership_duration,omitempty"`
	MembershipStart    *time.Time `db:"membership_start" json:"membership_start,omitempty"`
	MembershipEnd      *time.Time `db:"membership_end" json:"membership_end,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=member trainer gym"`

	// Gym-profile fields, required when Role is "gym".
	GymName string `json:"gym_name,omitempty"`
	Address string `json:"address,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required"`
}
