package models

import (
	"errors"
	"time"
)

var (
	ErrEmailAlreadyUsed  = errors.New("email already used")
	ErrInvalidFormat     = errors.New("invalid email format")
	ErrBadCredentials    = errors.New("invalid email or password")
	ErrSlugAlreadyExists = errors.New("company slug already used")
)

type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CompanyID    string    `json:"companyId" db:"company_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
