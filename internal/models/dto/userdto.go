package dto

import "strings"

type UserRegisterRequestDTO struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8,max=50"`
	FullName   string `json:"fullName" validate:"required,min=1,max=50"`
	GivenName  string `json:"givenName" validate:"required,max=50"`
	FamilyName string `json:"familyName" validate:"required,max=50"`
	Role       string `json:"role" validate:"required,max=50"`
}

// Normalize trims surrounding whitespace. Passwords are kept as typed.
func (d *UserRegisterRequestDTO) Normalize() {
	d.Email = strings.TrimSpace(d.Email)
	d.FullName = strings.TrimSpace(d.FullName)
	d.GivenName = strings.TrimSpace(d.GivenName)
	d.FamilyName = strings.TrimSpace(d.FamilyName)
	d.Role = strings.TrimSpace(d.Role)
}

type UserRegisterResponseDTO struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// UserUpdateRequestDTO carries the only fields a user update may touch.
// Empty fields are dropped when the update set is built.
type UserUpdateRequestDTO struct {
	Password   string `json:"password" mapstructure:"password,omitempty" validate:"omitempty,min=8,max=50"`
	FullName   string `json:"fullName" mapstructure:"fullName,omitempty" validate:"omitempty,min=1,max=50"`
	GivenName  string `json:"givenName" mapstructure:"givenName,omitempty" validate:"omitempty,max=50"`
	FamilyName string `json:"familyName" mapstructure:"familyName,omitempty" validate:"omitempty,max=50"`
	Role       string `json:"role" mapstructure:"role,omitempty" validate:"omitempty,max=50"`
}

// Normalize trims surrounding whitespace. Passwords are kept as typed.
func (d *UserUpdateRequestDTO) Normalize() {
	d.FullName = strings.TrimSpace(d.FullName)
	d.GivenName = strings.TrimSpace(d.GivenName)
	d.FamilyName = strings.TrimSpace(d.FamilyName)
	d.Role = strings.TrimSpace(d.Role)
}

// UserMessageResponseDTO is returned by update, delete and login.
type UserMessageResponseDTO struct {
	Message string `json:"message"`
	UserID  string `json:"userId,omitempty"`
}
