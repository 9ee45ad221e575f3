// Package models defines the user account types exchanged between the
// store, service, and HTTP layers.
package models

import (
	"strings"

	"admingeo/internal/domain"
	dErrors "admingeo/pkg/domain-errors"
)

// User is a registered account. Password carries the bcrypt hash inside
// the store and service layers and is never serialized.
type User struct {
	domain.Metadata
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"-"`
}

// UserDto is the create-user payload. Password here is the plaintext
// submitted by the client; the service hashes it before storage.
type UserDto struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

func (d UserDto) Validate() error {
	if strings.TrimSpace(d.FirstName) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "firstName is required")
	}
	if strings.TrimSpace(d.LastName) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "lastName is required")
	}
	if strings.TrimSpace(d.Email) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "email is required")
	}
	if !strings.Contains(d.Email, "@") {
		return dErrors.New(dErrors.CodeBadRequest, "email is invalid")
	}
	if d.Password == "" {
		return dErrors.New(dErrors.CodeBadRequest, "password is required")
	}
	return nil
}

// UserUpdate carries partial updates. Nil fields are left unchanged.
// A non-nil Password is re-hashed by the service.
type UserUpdate struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phoneNumber"`
	Password    *string `json:"password"`
	IsActive    *bool   `json:"isActive"`
}

// LoginDto is the credential payload for /auth/login.
type LoginDto struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d LoginDto) Validate() error {
	if strings.TrimSpace(d.Email) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "email is required")
	}
	if d.Password == "" {
		return dErrors.New(dErrors.CodeBadRequest, "password is required")
	}
	return nil
}

// LoginResult is the successful login response body.
type LoginResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
