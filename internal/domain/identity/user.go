// Package identity holds the users who sign in and act on orders.
package identity

import (
	"context"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/shared"
)

// Role is a coarse user role
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// IsValid checks if the role is a known value
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// User is an account that can sign in
type User struct {
	shared.BaseEntity
	Username     string
	PasswordHash string
	FullName     string
	Role         Role
	Email        string
}

// NewUser creates a user from an already hashed password
func NewUser(username, passwordHash, fullName string, role Role, email string) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, shared.NewValidationError("username", "is required")
	}
	if len(username) > 100 {
		return nil, shared.NewValidationError("username", "cannot exceed 100 characters")
	}
	if passwordHash == "" {
		return nil, shared.NewValidationError("password", "is required")
	}
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, shared.NewValidationError("full_name", "is required")
	}
	if !role.IsValid() {
		return nil, shared.NewValidationError("role", "must be admin or staff")
	}
	email = strings.TrimSpace(email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, shared.NewValidationError("email", "is not a valid address")
		}
	}
	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Username:     username,
		PasswordHash: passwordHash,
		FullName:     fullName,
		Role:         role,
		Email:        email,
	}, nil
}

// UserRepository persists users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, user *User) error
}

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}
