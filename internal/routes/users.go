package routes

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/haguru/bugtracker/internal/auth"
	"github.com/haguru/bugtracker/internal/metrics"
	"github.com/haguru/bugtracker/internal/middleware"
	"github.com/haguru/bugtracker/internal/models"
	"github.com/haguru/bugtracker/internal/models/dto"
	"github.com/haguru/bugtracker/internal/userservice"
)

// ListUsers returns every user.
func (r *Route) ListUsers(w http.ResponseWriter, req *http.Request) {
	users, err := r.UserService.ListUsers(req.Context())
	if err != nil {
		r.Logger.Error("Failed to list users", "error", err)
		r.errorResponse(w, http.StatusInternalServerError, ErrServerError, "")
		return
	}
	if users == nil {
		users = []models.User{}
	}
	r.writeJSON(w, http.StatusOK, users)
}

// GetUser returns the user named by the userId path variable.
func (r *Route) GetUser(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)[UserIDVar]

	user, err := r.UserService.GetUser(req.Context(), id)
	if err != nil {
		r.userError(w, id, err)
		return
	}
	r.writeJSON(w, http.StatusOK, user)
}

// RegisterUser handles user registration requests.
func (r *Route) RegisterUser(w http.ResponseWriter, req *http.Request) {
	registerRequest := &dto.UserRegisterRequestDTO{}
	if !r.decodeJSON(w, req, registerRequest, ErrAllFieldsRequired) {
		return
	}
	registerRequest.Normalize()
	if !r.validate(w, registerRequest, ErrAllFieldsRequired) {
		return
	}

	userID, err := r.UserService.RegisterUser(req.Context(), *registerRequest)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrEmailAlreadyRegistered):
			r.errorResponse(w, http.StatusBadRequest, ErrEmailAlreadyRegistered, "")
			return
		case errors.Is(err, userservice.ErrPasswordTooLong):
			r.errorResponse(w, http.StatusBadRequest, ErrAllFieldsRequired, "")
			return
		}
		r.Logger.Error("Failed to register user", "email", registerRequest.Email, "error", err)
		r.errorResponse(w, http.StatusInternalServerError, ErrServerError, "")
		return
	}

	r.incCounter(metrics.UsersRegistered)
	r.writeJSON(w, http.StatusOK, &dto.UserRegisterResponseDTO{
		Message: MsgUserRegistered,
		UserID:  userID,
	})
}

// LoginUser checks the credentials and sets the session cookie.
func (r *Route) LoginUser(w http.ResponseWriter, req *http.Request) {
	loginRequest := &dto.LoginRequestDTO{}
	if !r.decodeJSON(w, req, loginRequest, ErrMissingCredentials) {
		r.incCounter(metrics.LoginFailed)
		return
	}
	loginRequest.Normalize()
	if !r.validate(w, loginRequest, ErrMissingCredentials) {
		r.incCounter(metrics.LoginFailed)
		return
	}

	user, err := r.UserService.AuthenticateUser(req.Context(), loginRequest.Email, loginRequest.Password)
	if err != nil {
		r.incCounter(metrics.LoginFailed)
		if errors.Is(err, userservice.ErrInvalidCredentials) {
			r.errorResponse(w, http.StatusBadRequest, ErrInvalidCredentials, "")
			return
		}
		r.Logger.Error("Failed to authenticate user", "email", loginRequest.Email, "error", err)
		r.errorResponse(w, http.StatusInternalServerError, ErrServerError, "")
		return
	}

	sessionToken, err := r.TokenIssuer.IssueAuthToken(req.Context(), user)
	if err != nil {
		r.incCounter(metrics.LoginFailed)
		r.Logger.Error("Failed to generate session token", "userId", user.ID, "error", err)
		r.errorResponse(w, http.StatusInternalServerError, ErrServerError, "")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     r.Options.CookieName,
		Value:    sessionToken,
		Path:     "/",
		MaxAge:   int(r.Options.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   r.Options.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	r.incCounter(metrics.LoginSuccess)
	r.writeJSON(w, http.StatusOK, &dto.LoginResponseDTO{
		Message: MsgWelcomeBack,
		UserID:  user.ID,
	})
}

// LogoutUser expires the session cookie.
func (r *Route) LogoutUser(w http.ResponseWriter, req *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     r.Options.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.Options.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	r.writeJSON(w, http.StatusOK, &dto.UserMessageResponseDTO{Message: MsgLoggedOut})
}

// UpdateUser writes the whitelisted fields of the body to the user.
func (r *Route) UpdateUser(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)[UserIDVar]

	updateRequest := &dto.UserUpdateRequestDTO{}
	if !r.decodeJSON(w, req, updateRequest, ErrInvalidRequestBody) {
		return
	}
	updateRequest.Normalize()
	if !r.validate(w, updateRequest, ErrInvalidData) {
		return
	}
	// only editors of any user may change a role, their own included
	if claims, ok := middleware.ClaimsFromContext(req.Context()); ok && !claims.Can(auth.PermissionEditAnyUser) {
		updateRequest.Role = ""
	}

	if err := r.UserService.UpdateUser(req.Context(), id, *updateRequest); err != nil {
		r.userError(w, id, err)
		return
	}
	r.writeJSON(w, http.StatusOK, &dto.UserMessageResponseDTO{
		Message: fmt.Sprintf(MsgUserUpdatedFormat, id),
		UserID:  id,
	})
}

// DeleteUser removes the user named by the userId path variable.
func (r *Route) DeleteUser(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)[UserIDVar]

	if err := r.UserService.DeleteUser(req.Context(), id); err != nil {
		r.userError(w, id, err)
		return
	}
	r.writeJSON(w, http.StatusOK, &dto.UserMessageResponseDTO{
		Message: fmt.Sprintf(MsgUserDeletedFormat, id),
		UserID:  id,
	})
}

// userError maps user service errors onto responses.
func (r *Route) userError(w http.ResponseWriter, id string, err error) {
	switch {
	case errors.Is(err, userservice.ErrInvalidID):
		r.errorResponse(w, http.StatusBadRequest, ErrInvalidUserID, "")
	case errors.Is(err, userservice.ErrUserNotFound):
		r.errorResponse(w, http.StatusNotFound, fmt.Sprintf(ErrUserNotFoundFormat, id), "")
	case errors.Is(err, userservice.ErrPasswordTooLong):
		r.errorResponse(w, http.StatusBadRequest, ErrInvalidData, "")
	default:
		r.Logger.Error("User request failed", "userId", id, "error", err)
		r.errorResponse(w, http.StatusInternalServerError, ErrServerError, "")
	}
}
