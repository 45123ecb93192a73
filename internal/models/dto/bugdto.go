package dto

import "strings"

type BugCreateRequestDTO struct {
	Title            string `json:"title" validate:"required"`
	Description      string `json:"description" validate:"required"`
	StepsToReproduce string `json:"stepsToReproduce" validate:"required"`
}

// Normalize trims surrounding whitespace from every field.
func (d *BugCreateRequestDTO) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.StepsToReproduce = strings.TrimSpace(d.StepsToReproduce)
}

type BugUpdateRequestDTO struct {
	Title            string `json:"title" mapstructure:"title,omitempty"`
	Description      string `json:"description" mapstructure:"description,omitempty"`
	StepsToReproduce string `json:"stepsToReproduce" mapstructure:"stepsToReproduce,omitempty"`
}

// Normalize trims surrounding whitespace so blank fields are left unchanged.
func (d *BugUpdateRequestDTO) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.StepsToReproduce = strings.TrimSpace(d.StepsToReproduce)
}

type BugClassifyRequestDTO struct {
	Classification string `json:"classification" validate:"required,oneof=unclassified approved unapproved duplicate"`
}

type BugResponseDTO struct {
	Message string `json:"message"`
	BugID   string `json:"bugId"`
}
