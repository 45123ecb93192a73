package bugservice

import "errors"

const (
	ErrListingBugs         = "error listing bugs"
	ErrRetrievingBug       = "error retrieving bug"
	ErrFailedToReportBug   = "failed to report bug"
	ErrFailedToUpdateBug   = "failed to update bug"
	ErrFailedToClassifyBug = "failed to classify bug"
)

var (
	ErrInvalidID             = errors.New("invalid bug id")
	ErrBugNotFound           = errors.New("bug not found")
	ErrInvalidClassification = errors.New("invalid classification")
)
