package models

import "time"

// User is the backend's user record, cached client-side after login.
type User struct {
	ID         int       `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	CPF        string    `json:"cpf,omitempty"`
	Address    string    `json:"address,omitempty"`
	City       string    `json:"city,omitempty"`
	State      string    `json:"state,omitempty"`
	PostalCode string    `json:"postal_code,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

// LoginRequest is the POST /auth/login/ payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the POST /auth/register/ payload. The billing profile
// fields are required by the backend for payment-provider enrollment.
type RegisterRequest struct {
	FullName   string `json:"full_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	CPF        string `json:"cpf" validate:"required"`
	Password   string `json:"password" validate:"required,min=8"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
}

// AuthResponse is returned by both login and register.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
