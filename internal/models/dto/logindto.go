package dto

import "strings"

// LoginRequestDTO only requires both credentials; format is not checked so
// a malformed credential is reported as a failed login.
type LoginRequestDTO struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (d *LoginRequestDTO) Normalize() {
	d.Email = strings.TrimSpace(d.Email)
}

type LoginResponseDTO struct {
	Message string `json:"message"`
	UserID  string `json:"userId,omitempty"`
}
