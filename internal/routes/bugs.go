package routes

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/haguru/bugtracker/internal/bugservice"
	"github.com/haguru/bugtracker/internal/metrics"
	"github.com/haguru/bugtracker/internal/middleware"
	"github.com/haguru/bugtracker/internal/models"
	"github.com/haguru/bugtracker/internal/models/dto"
)

func (r *Route) ListBugs(w http.ResponseWriter, req *http.Request) {
	bugs, err := r.BugService.ListBugs(req.Context())
	if err != nil {
		r.Logger.Error("Failed to list bugs", "error", err)
		r.errorResponse(w, http.StatusInternalServerError, ErrInternalServerError, "")
		return
	}
	if bugs == nil {
		bugs = []models.Bug{}
	}
	r.writeJSON(w, http.StatusOK, bugs)
}

func (r *Route) GetBug(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)[BugIDVar]

	bug, err := r.BugService.GetBug(req.Context(), id)
	if err != nil {
		r.bugError(w, id, err)
		return
	}
	r.writeJSON(w, http.StatusOK, bug)
}

// ReportBug stores a new bug created by the logged in user, if any.
func (r *Route) ReportBug(w http.ResponseWriter, req *http.Request) {
	createRequest := &dto.BugCreateRequestDTO{}
	if !r.decodeJSON(w, req, createRequest, ErrMissingBugData) {
		return
	}
	createRequest.Normalize()
	if !r.validate(w, createRequest, ErrMissingBugData) {
		return
	}

	var reporterID string
	if claims, ok := middleware.ClaimsFromContext(req.Context()); ok {
		reporterID = claims.UserID
	}

	bugID, err := r.BugService.ReportBug(req.Context(), *createRequest, reporterID)
	if err != nil {
		r.Logger.Error("Failed to report bug", "error", err)
		r.errorResponse(w, http.StatusInternalServerError, ErrInternalServerError, "")
		return
	}

	r.incCounter(metrics.BugsReported)
	r.writeJSON(w, http.StatusOK, &dto.BugResponseDTO{
		Message: MsgBugReported,
		BugID:   bugID,
	})
}

func (r *Route) UpdateBug(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)[BugIDVar]

	updateRequest := &dto.BugUpdateRequestDTO{}
	if !r.decodeJSON(w, req, updateRequest, ErrInvalidData) {
		return
	}

	if err := r.BugService.UpdateBug(req.Context(), id, *updateRequest); err != nil {
		r.bugError(w, id, err)
		return
	}
	r.writeJSON(w, http.StatusOK, &dto.BugResponseDTO{
		Message: fmt.Sprintf(MsgBugUpdatedFormat, id),
		BugID:   id,
	})
}

func (r *Route) ClassifyBug(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)[BugIDVar]

	classifyRequest := &dto.BugClassifyRequestDTO{}
	if !r.decodeJSON(w, req, classifyRequest, ErrInvalidData) {
		return
	}
	if !r.validate(w, classifyRequest, ErrInvalidData) {
		return
	}

	if err := r.BugService.ClassifyBug(req.Context(), id, classifyRequest.Classification); err != nil {
		r.bugError(w, id, err)
		return
	}

	r.incCounter(metrics.BugsClassified, classifyRequest.Classification)
	r.writeJSON(w, http.StatusOK, &dto.BugResponseDTO{
		Message: fmt.Sprintf(MsgBugClassifiedFormat, id),
		BugID:   id,
	})
}

// bugError maps bug service errors onto responses.
func (r *Route) bugError(w http.ResponseWriter, id string, err error) {
	switch {
	case errors.Is(err, bugservice.ErrInvalidID):
		r.errorResponse(w, http.StatusBadRequest, fmt.Sprintf(ErrInvalidBugIDFormat, id), "")
	case errors.Is(err, bugservice.ErrInvalidClassification):
		r.errorResponse(w, http.StatusBadRequest, ErrInvalidData, err.Error())
	case errors.Is(err, bugservice.ErrBugNotFound):
		r.errorResponse(w, http.StatusNotFound, fmt.Sprintf(ErrBugNotFoundFormat, id), "")
	default:
		r.Logger.Error("Bug request failed", "bugId", id, "error", err)
		r.errorResponse(w, http.StatusInternalServerError, ErrInternalServerError, "")
	}
}
