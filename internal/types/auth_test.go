package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request CreateUserRequest
		wantErr bool
	}{
		{
			name:    "valid request",
			request: CreateUserRequest{Name: "Jane Doe", Email: "jane@example.com", Password: "password123"},
		},
		{
			name:    "missing name",
			request: CreateUserRequest{Email: "jane@example.com", Password: "password123"},
			wantErr: true,
		},
		{
			name:    "invalid email format",
			request: CreateUserRequest{Name: "Jane", Email: "not-an-email", Password: "password123"},
			wantErr: true,
		},
		{
			name:    "short password",
			request: CreateUserRequest{Name: "Jane", Email: "jane@example.com", Password: "short"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestChangePasswordRequest_Validate(t *testing.T) {
	t.Run("valid change", func(t *testing.T) {
		req := ChangePasswordRequest{CurrentPassword: "oldpassword", NewPassword: "newpassword"}
		assert.NoError(t, req.Validate())
	})

	t.Run("new password equal to current", func(t *testing.T) {
		req := ChangePasswordRequest{CurrentPassword: "samepassword", NewPassword: "samepassword"}
		assert.Error(t, req.Validate())
	})

	t.Run("new password too short", func(t *testing.T) {
		req := ChangePasswordRequest{CurrentPassword: "oldpassword", NewPassword: "short"}
		assert.Error(t, req.Validate())
	})
}

func TestUpdateProfileRequest_Validate(t *testing.T) {
	empty := ""
	name := "Jane Doe"

	assert.NoError(t, (&UpdateProfileRequest{}).Validate(), "no fields is a valid no-op update")
	assert.NoError(t, (&UpdateProfileRequest{Name: &name}).Validate())
	assert.Error(t, (&UpdateProfileRequest{Name: &empty}).Validate(), "name cannot be blanked")
}

func TestLoginResponse_JSONShape(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	resp := LoginResponse{
		User: &User{
			ID:          uuid.New(),
			Profile:     Profile{Name: "Jane Doe", Email: "jane@example.com"},
			PasswordSet: true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		Token: "token-value",
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"token":"token-value"`)
	assert.Contains(t, string(data), `"password_set":true`)
	assert.Contains(t, string(data), `"email":"jane@example.com"`)
	assert.NotContains(t, string(data), "password_hash")
}
