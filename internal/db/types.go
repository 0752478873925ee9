package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/cv-builder/internal/types"
)

// User is an account row.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	JobTitle     string    `json:"job_title,omitempty"`
	Location     string    `json:"location,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize to JSON
	PasswordSet  bool      `json:"password_set" db:"password_set"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile returns the API view of the account.
func (u *User) Profile() types.Profile {
	return types.Profile{
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		JobTitle: u.JobTitle,
		Location: u.Location,
		Bio:      u.Bio,
	}
}

// applyProfile copies the non-nil fields of req onto u.
func (u *User) applyProfile(req *types.UpdateProfileRequest) {
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.JobTitle != nil {
		u.JobTitle = *req.JobTitle
	}
	if req.Location != nil {
		u.Location = *req.Location
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
}
