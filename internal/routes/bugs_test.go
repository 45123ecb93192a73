package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/haguru/bugtracker/internal/auth"
	"github.com/haguru/bugtracker/internal/bugservice"
	"github.com/haguru/bugtracker/internal/middleware"
	"github.com/haguru/bugtracker/internal/models"
	"github.com/haguru/bugtracker/internal/models/dto"
)

const testBugID = "64b7f3c2a1e4d5f6a7b8c9d1"

func bugRequest(method, target, body string) *http.Request {
	return mux.SetURLVars(jsonRequest(method, target, body), map[string]string{BugIDVar: testBugID})
}

func TestRoute_ListBugs(t *testing.T) {
	r := newTestRoute(t, nil, Options{})
	r.bugs.On("ListBugs", mock.Anything).Return([]models.Bug{{ID: testBugID, Title: "crash"}}, nil).Once()

	rr := httptest.NewRecorder()
	r.ListBugs(rr, httptest.NewRequest(http.MethodGet, BugListRouteAPI, nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	var bugs []models.Bug
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&bugs))
	require.Len(t, bugs, 1)
	assert.Equal(t, "crash", bugs[0].Title)

	r.bugs.On("ListBugs", mock.Anything).Return(nil, errors.New("db down")).Once()
	rr = httptest.NewRecorder()
	r.ListBugs(rr, httptest.NewRequest(http.MethodGet, BugListRouteAPI, nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, ErrInternalServerError, decodeError(t, rr).Error)
}

func TestRoute_GetBug(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{name: "found", wantStatus: http.StatusOK},
		{name: "invalid id", err: bugservice.ErrInvalidID, wantStatus: http.StatusBadRequest, wantError: "Invalid Bug ID: " + testBugID},
		{name: "not found", err: fmt.Errorf("%s: %w", testBugID, bugservice.ErrBugNotFound), wantStatus: http.StatusNotFound, wantError: "Bug " + testBugID + " not found."},
		{name: "db failure", err: errors.New("timeout"), wantStatus: http.StatusInternalServerError, wantError: ErrInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRoute(t, nil, Options{})
			var bug *models.Bug
			if tt.err == nil {
				bug = &models.Bug{ID: testBugID, Title: "crash"}
			}
			r.bugs.On("GetBug", mock.Anything, testBugID).Return(bug, tt.err).Once()

			rr := httptest.NewRecorder()
			r.GetBug(rr, bugRequest(http.MethodGet, "/api/bug/"+testBugID, ""))

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeError(t, rr).Error)
			}
		})
	}
}

func TestRoute_ReportBug(t *testing.T) {
	valid := `{"title":" crash ","description":"app crashes","stepsToReproduce":"open it"}`
	want := dto.BugCreateRequestDTO{Title: "crash", Description: "app crashes", StepsToReproduce: "open it"}

	t.Run("reported by the session user", func(t *testing.T) {
		r := newTestRoute(t, nil, Options{})
		r.bugs.On("ReportBug", mock.Anything, want, testUserID).Return(testBugID, nil).Once()

		req := jsonRequest(http.MethodPost, BugNewRouteAPI, valid)
		req = req.WithContext(middleware.ContextWithClaims(req.Context(), &auth.CustomClaims{Identity: auth.Identity{UserID: testUserID}}))
		rr := httptest.NewRecorder()
		r.ReportBug(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var body dto.BugResponseDTO
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, MsgBugReported, body.Message)
		assert.Equal(t, testBugID, body.BugID)
		assert.Equal(t, float64(1), counterValue(t, r.Metrics, "test_bugs_reported_total"))
	})

	t.Run("anonymous reporter", func(t *testing.T) {
		r := newTestRoute(t, nil, Options{})
		r.bugs.On("ReportBug", mock.Anything, want, "").Return(testBugID, nil).Once()

		rr := httptest.NewRecorder()
		r.ReportBug(rr, jsonRequest(http.MethodPost, BugNewRouteAPI, valid))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{name: "missing steps", body: `{"title":"crash","description":"app crashes"}`, wantStatus: http.StatusBadRequest, wantError: ErrMissingBugData},
		{name: "blank title", body: `{"title":"  ","description":"d","stepsToReproduce":"s"}`, wantStatus: http.StatusBadRequest, wantError: ErrMissingBugData},
		{name: "malformed json", body: `{`, wantStatus: http.StatusBadRequest, wantError: ErrMissingBugData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRoute(t, nil, Options{})
			rr := httptest.NewRecorder()
			r.ReportBug(rr, jsonRequest(http.MethodPost, BugNewRouteAPI, tt.body))
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantError, decodeError(t, rr).Error)
		})
	}

	t.Run("db failure", func(t *testing.T) {
		r := newTestRoute(t, nil, Options{})
		r.bugs.On("ReportBug", mock.Anything, want, "").Return("", errors.New("db down")).Once()
		rr := httptest.NewRecorder()
		r.ReportBug(rr, jsonRequest(http.MethodPost, BugNewRouteAPI, valid))
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, ErrInternalServerError, decodeError(t, rr).Error)
	})
}

func TestRoute_UpdateBug(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		callsSvc   bool
		wantStatus int
		wantError  string
	}{
		{name: "updated", body: `{"title":"new title"}`, callsSvc: true, wantStatus: http.StatusOK},
		{name: "malformed json", body: `{"title":`, wantStatus: http.StatusBadRequest, wantError: ErrInvalidData},
		{name: "invalid id", body: `{"title":"new title"}`, serviceErr: bugservice.ErrInvalidID, callsSvc: true, wantStatus: http.StatusBadRequest, wantError: "Invalid Bug ID: " + testBugID},
		{name: "not found", body: `{"title":"new title"}`, serviceErr: bugservice.ErrBugNotFound, callsSvc: true, wantStatus: http.StatusNotFound, wantError: "Bug " + testBugID + " not found."},
		{name: "db failure", body: `{"title":"new title"}`, serviceErr: errors.New("db down"), callsSvc: true, wantStatus: http.StatusInternalServerError, wantError: ErrInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRoute(t, nil, Options{})
			if tt.callsSvc {
				r.bugs.On("UpdateBug", mock.Anything, testBugID, dto.BugUpdateRequestDTO{Title: "new title"}).Return(tt.serviceErr).Once()
			}

			rr := httptest.NewRecorder()
			r.UpdateBug(rr, bugRequest(http.MethodPut, "/api/bug/"+testBugID, tt.body))

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeError(t, rr).Error)
				return
			}
			var body dto.BugResponseDTO
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, "Bug "+testBugID+" updated!", body.Message)
			assert.Equal(t, testBugID, body.BugID)
		})
	}
}

func TestRoute_ClassifyBug(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		callsSvc   bool
		wantStatus int
		wantError  string
	}{
		{name: "classified", body: `{"classification":"duplicate"}`, callsSvc: true, wantStatus: http.StatusOK},
		{name: "unknown classification", body: `{"classification":"wontfix"}`, wantStatus: http.StatusBadRequest, wantError: ErrInvalidData},
		{name: "missing classification", body: `{}`, wantStatus: http.StatusBadRequest, wantError: ErrInvalidData},
		{name: "not found", body: `{"classification":"duplicate"}`, serviceErr: bugservice.ErrBugNotFound, callsSvc: true, wantStatus: http.StatusNotFound, wantError: "Bug " + testBugID + " not found."},
		{name: "invalid id", body: `{"classification":"duplicate"}`, serviceErr: bugservice.ErrInvalidID, callsSvc: true, wantStatus: http.StatusBadRequest, wantError: "Invalid Bug ID: " + testBugID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRoute(t, nil, Options{})
			if tt.callsSvc {
				r.bugs.On("ClassifyBug", mock.Anything, testBugID, models.ClassificationDuplicate).Return(tt.serviceErr).Once()
			}

			rr := httptest.NewRecorder()
			r.ClassifyBug(rr, bugRequest(http.MethodPut, "/api/bug/"+testBugID+"/classify", tt.body))

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeError(t, rr).Error)
				return
			}
			var body dto.BugResponseDTO
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, "Bug "+testBugID+" classified!", body.Message)
			assert.Equal(t, float64(1), counterValue(t, r.Metrics, "test_bugs_classified_total"))
		})
	}
}
