package bugservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/haguru/bugtracker/internal/interfaces"
	"github.com/haguru/bugtracker/internal/models"
	"github.com/haguru/bugtracker/internal/models/dto"
	"github.com/haguru/bugtracker/internal/repository"
	"github.com/haguru/bugtracker/pkg/helper"
)

var classifications = map[string]bool{
	models.ClassificationUnclassified: true,
	models.ClassificationApproved:     true,
	models.ClassificationUnapproved:   true,
	models.ClassificationDuplicate:    true,
}

type BugService struct {
	BugRepo interfaces.BugRepository
	Logger  interfaces.Logger
}

func NewBugService(repo interfaces.BugRepository, logger interfaces.Logger) *BugService {
	return &BugService{
		BugRepo: repo,
		Logger:  logger,
	}
}

func (s *BugService) ListBugs(ctx context.Context) ([]models.Bug, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName)
	defer s.Logger.Debug("Exiting function", "func", funcName)

	bugs, err := s.BugRepo.ListBugs(ctx)
	if err != nil {
		s.Logger.Error(ErrListingBugs, "func", funcName, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrListingBugs, err)
	}
	return bugs, nil
}

// GetBug returns ErrInvalidID for malformed ids and ErrBugNotFound for unknown ones.
func (s *BugService) GetBug(ctx context.Context, id string) (*models.Bug, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "bugId", id)
	defer s.Logger.Debug("Exiting function", "func", funcName, "bugId", id)

	if !s.BugRepo.ValidID(id) {
		return nil, ErrInvalidID
	}

	bug, err := s.BugRepo.GetBugByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrDocumentNotFound) {
			return nil, fmt.Errorf("%s: %w", id, ErrBugNotFound)
		}
		s.Logger.Error(ErrRetrievingBug, "func", funcName, "bugId", id, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingBug, err)
	}
	return bug, nil
}

// ReportBug stores a new unclassified bug created by reporterID, which may be empty.
func (s *BugService) ReportBug(ctx context.Context, req dto.BugCreateRequestDTO, reporterID string) (string, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "reporter", reporterID)
	defer s.Logger.Debug("Exiting function", "func", funcName, "reporter", reporterID)

	req.Normalize()
	bug := models.NewBug(req.Title, req.Description, req.StepsToReproduce, reporterID)

	bugID, err := s.BugRepo.AddBug(ctx, *bug)
	if err != nil {
		s.Logger.Error(ErrFailedToReportBug, "func", funcName, "error", err)
		return "", fmt.Errorf("%s: %w", ErrFailedToReportBug, err)
	}
	s.Logger.Info("Bug reported", "func", funcName, "bugId", bugID, "reporter", reporterID)
	return bugID, nil
}

// UpdateBug writes the non-empty whitelisted fields of req and stamps lastUpdated.
func (s *BugService) UpdateBug(ctx context.Context, id string, req dto.BugUpdateRequestDTO) error {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "bugId", id)
	defer s.Logger.Debug("Exiting function", "func", funcName, "bugId", id)

	if !s.BugRepo.ValidID(id) {
		return ErrInvalidID
	}

	req.Normalize()
	fields, err := repository.UpdateFields(req)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrFailedToUpdateBug, err)
	}
	fields["lastUpdated"] = time.Now().UTC()

	return s.update(ctx, funcName, id, fields, ErrFailedToUpdateBug)
}

// ClassifyBug sets the classification and stamps classifiedOn and lastUpdated.
func (s *BugService) ClassifyBug(ctx context.Context, id string, classification string) error {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "bugId", id, "classification", classification)
	defer s.Logger.Debug("Exiting function", "func", funcName, "bugId", id)

	if !s.BugRepo.ValidID(id) {
		return ErrInvalidID
	}
	if !classifications[classification] {
		return fmt.Errorf("%q: %w", classification, ErrInvalidClassification)
	}

	now := time.Now().UTC()
	fields := map[string]interface{}{
		"classification": classification,
		"classifiedOn":   now,
		"lastUpdated":    now,
	}
	return s.update(ctx, funcName, id, fields, ErrFailedToClassifyBug)
}

func (s *BugService) update(ctx context.Context, funcName, id string, fields map[string]interface{}, failure string) error {
	matched, err := s.BugRepo.UpdateBug(ctx, id, fields)
	if err != nil {
		s.Logger.Error(failure, "func", funcName, "bugId", id, "error", err)
		return fmt.Errorf("%s: %w", failure, err)
	}
	if !matched {
		return fmt.Errorf("%s: %w", id, ErrBugNotFound)
	}
	s.Logger.Info("Bug updated", "func", funcName, "bugId", id)
	return nil
}
