package identity

import (
	"testing"

	"github.com/moldshop/erp/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser(" Admin ", "$2a$hash", "System Administrator", RoleAdmin, "admin@company.com")
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Username)
	assert.Equal(t, RoleAdmin, u.Role)
}

func TestNewUser_Validation(t *testing.T) {
	tests := []struct {
		name                        string
		username, hash, full, email string
		role                        Role
		field                       string
	}{
		{"username", "", "h", "n", "", RoleStaff, "username"},
		{"password", "u", "", "n", "", RoleStaff, "password"},
		{"full name", "u", "h", " ", "", RoleStaff, "full_name"},
		{"role", "u", "h", "n", "", "root", "role"},
		{"email", "u", "h", "n", "nope", RoleStaff, "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.username, tt.hash, tt.full, tt.role, tt.email)
			var de *shared.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.field, de.Field)
		})
	}
}
