package models

// Role is a named set of permissions granted to users holding it.
type Role struct {
	ID          string   `json:"_id,omitempty" mapstructure:"id" yaml:"-"`
	Name        string   `json:"name" mapstructure:"name" yaml:"name" validate:"required"`
	Permissions []string `json:"permissions" mapstructure:"permissions" yaml:"permissions"`
}
