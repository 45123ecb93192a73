package models

import "time"

const (
	ClassificationUnclassified = "unclassified"
	ClassificationApproved     = "approved"
	ClassificationUnapproved   = "unapproved"
	ClassificationDuplicate    = "duplicate"
)

// Bug is a reported defect.
type Bug struct {
	ID               string     `json:"_id" mapstructure:"id"`
	Title            string     `json:"title" mapstructure:"title"`
	Description      string     `json:"description" mapstructure:"description"`
	StepsToReproduce string     `json:"stepsToReproduce" mapstructure:"stepsToReproduce"`
	Classification   string     `json:"classification,omitempty" mapstructure:"classification"`
	ClassifiedOn     *time.Time `json:"classifiedOn,omitempty" mapstructure:"classifiedOn"`
	CreatedBy        string     `json:"createdBy,omitempty" mapstructure:"createdBy"`
	CreationDate     time.Time  `json:"creationDate" mapstructure:"creationDate"`
	LastUpdated      *time.Time `json:"lastUpdated,omitempty" mapstructure:"lastUpdated"`
}

// NewBug creates an unclassified bug stamped with the current time.
func NewBug(title, description, stepsToReproduce, createdBy string) *Bug {
	return &Bug{
		Title:            title,
		Description:      description,
		StepsToReproduce: stepsToReproduce,
		Classification:   ClassificationUnclassified,
		CreatedBy:        createdBy,
		CreationDate:     time.Now().UTC(),
	}
}
