package domain

import (
	"net/mail"
	"strings"
	"time"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        *string   `json:"phone,omitempty"`
	Avatar       *string   `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Profile is the subset of user fields exposed to other members of an event.
// It must never carry the password hash.
type Profile struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Avatar *string `json:"avatar,omitempty"`
}

func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar}
}

type RegisterRequest struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	ConfirmPassword string  `json:"confirmPassword"`
	Phone           *string `json:"phone,omitempty"`
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *RegisterRequest) Validate() error {
	var v ValidationError
	if len(r.Name) < 2 || len(r.Name) > 100 {
		v.Add("name", "name must be between 2 and 100 characters")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		v.Add("email", "invalid email")
	}
	if len(r.Password) < 6 {
		v.Add("password", "password must be at least 6 characters")
	}
	if r.Password != r.ConfirmPassword {
		v.Add("confirmPassword", "passwords do not match")
	}
	return v.OrNil()
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *LoginRequest) Validate() error {
	var v ValidationError
	if _, err := mail.ParseAddress(r.Email); err != nil {
		v.Add("email", "invalid email")
	}
	if r.Password == "" {
		v.Add("password", "password is required")
	}
	return v.OrNil()
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r *ForgotPasswordRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *ForgotPasswordRequest) Validate() error {
	var v ValidationError
	if _, err := mail.ParseAddress(r.Email); err != nil {
		v.Add("email", "invalid email")
	}
	return v.OrNil()
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func (r *ResetPasswordRequest) Validate() error {
	var v ValidationError
	if r.Token == "" {
		v.Add("token", "token is required")
	}
	if len(r.NewPassword) < 6 {
		v.Add("newPassword", "password must be at least 6 characters")
	}
	return v.OrNil()
}
