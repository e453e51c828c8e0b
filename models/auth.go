package models

import (
	"time"
)

type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  `json:"user"`
}

type RedisPayload struct {
	User         `json:"user"`
	RefreshToken string `json:"refresh-token"`
}

type User struct {
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Id          string    `json:"id"`
	UserName    string    `json:"user_name"`
	Email       string    `json:"email"`
	ZipCode     string    `json:"zip_code"`
	PhoneNumber string    `json:"phone_number"`
	Password    string    `json:"password,omitempty"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type PasswordReset struct {
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}
