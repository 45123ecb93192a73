package models

import "time"

// User represents an internal user model for the application/database.
// Keys match the stored field names; decoding from PostgreSQL relies on
// mapstructure's case-insensitive matching of folded column names.
type User struct {
	ID           string     `json:"_id" mapstructure:"id"`
	Email        string     `json:"email" mapstructure:"email"`
	Password     string     `json:"-" mapstructure:"password"`
	FullName     string     `json:"fullName" mapstructure:"fullName"`
	GivenName    string     `json:"givenName" mapstructure:"givenName"`
	FamilyName   string     `json:"familyName" mapstructure:"familyName"`
	Role         string     `json:"role" mapstructure:"role"`
	CreationDate time.Time  `json:"creationDate" mapstructure:"creationDate"`
	LastUpdated  *time.Time `json:"lastUpdated,omitempty" mapstructure:"lastUpdated"`
}

// NewUser creates a new User stamped with the current time.
// Note: No validation is performed here and the password is stored as given.
func NewUser(email, password, fullName, givenName, familyName, role string) *User {
	return &User{
		Email:        email,
		Password:     password,
		FullName:     fullName,
		GivenName:    givenName,
		FamilyName:   familyName,
		Role:         role,
		CreationDate: time.Now().UTC(),
	}
}
