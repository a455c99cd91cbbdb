package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/moldshop/erp/internal/domain/identity"
	"github.com/moldshop/erp/internal/infrastructure/auth"
)

// LoginRequest represents a sign-in attempt
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required,max=100"`
	Password string `json:"password" form:"password" binding:"required,max=128"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse carries the access token and the signed-in user
type LoginResponse struct {
	Token *auth.Token  `json:"token"`
	User  UserResponse `json:"user"`
}

// ToUserResponse converts a domain User to UserResponse
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Role:      string(u.Role),
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
