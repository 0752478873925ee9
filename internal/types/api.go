package types

import "encoding/json"

// APIResponse is the envelope shared by every REST endpoint the wizard consumes.
type APIResponse struct {
	Success                 bool            `json:"success"`
	Data                    json.RawMessage `json:"data,omitempty"`
	Message                 string          `json:"message,omitempty"`
	Warnings                []string        `json:"warnings,omitempty"`
	CertificationsPreserved *bool           `json:"certifications_preserved,omitempty"`
}

// EnhanceRequest is the body of the enhancement call.
type EnhanceRequest struct {
	CV   *CVData     `json:"cv"`
	Mode BuilderMode `json:"mode,omitempty"`
}

// Profile is the account profile exposed by the settings endpoints.
type Profile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	JobTitle string `json:"job_title,omitempty"`
	Location string `json:"location,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

// UpdateProfileRequest is a partial profile update; nil fields are left unchanged.
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	JobTitle *string `json:"job_title,omitempty" validate:"omitempty,max=200"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=200"`
	Bio      *string `json:"bio,omitempty" validate:"omitempty,max=2000"`
}
