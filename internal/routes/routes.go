package routes

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"time"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/haguru/bugtracker/internal/auth"
	"github.com/haguru/bugtracker/internal/interfaces"
	"github.com/haguru/bugtracker/internal/middleware"
	"github.com/haguru/bugtracker/internal/models/dto"
)

// Options tunes the session cookie and route protection.
type Options struct {
	CookieName   string
	CookieSecure bool
	TokenTTL     time.Duration
	// Enforce puts the login and permission guards in front of the routes.
	Enforce bool
	// RateLimiter throttles login and register. Nil disables throttling.
	RateLimiter *rate.Limiter
}

type Route struct {
	Metrics     interfaces.Metrics
	UserService interfaces.UserService
	BugService  interfaces.BugService
	TokenIssuer interfaces.TokenIssuer
	Health      interfaces.HealthChecker
	Logger      interfaces.Logger
	Options     Options
	validator   *structValidator.Validate
}

// NewRoute creates a new Route instance.
func NewRoute(metrics interfaces.Metrics, userService interfaces.UserService, bugService interfaces.BugService,
	tokenIssuer interfaces.TokenIssuer, health interfaces.HealthChecker, validator *structValidator.Validate,
	logger interfaces.Logger, opts Options,
) *Route {
	if opts.CookieName == "" {
		opts.CookieName = "authToken"
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = auth.DefaultTokenTTL
	}

	return &Route{
		Metrics:     metrics,
		UserService: userService,
		BugService:  bugService,
		TokenIssuer: tokenIssuer,
		Health:      health,
		Logger:      logger,
		Options:     opts,
		validator:   validator,
	}
}

type endpoint struct {
	method  string
	path    string
	handler http.HandlerFunc
	guards  []func(http.Handler) http.Handler
}

// RegisterRoutes adds every API route to s. Static paths are added before
// the ones with path variables so /api/user/list never matches {userId}.
func (r *Route) RegisterRoutes(s interfaces.Server) error {
	login := r.guard(middleware.RequireLogin)
	limited := r.throttle()

	endpoints := []endpoint{
		{http.MethodGet, UserListRouteAPI, r.ListUsers, login},
		{http.MethodPost, UserRegisterRouteAPI, r.RegisterUser, limited},
		{http.MethodPost, UserLoginRouteAPI, r.LoginUser, limited},
		{http.MethodPost, UserLogoutRouteAPI, r.LogoutUser, nil},
		{http.MethodGet, UserRouteAPI, r.GetUser, login},
		{http.MethodPut, UserRouteAPI, r.UpdateUser, r.guard(middleware.RequirePermissionOrSelf(auth.PermissionEditAnyUser, UserIDVar))},
		{http.MethodDelete, UserRouteAPI, r.DeleteUser, r.guard(middleware.RequirePermission(auth.PermissionDeleteUser))},

		{http.MethodGet, BugListRouteAPI, r.ListBugs, login},
		{http.MethodPost, BugNewRouteAPI, r.ReportBug, login},
		{http.MethodGet, BugRouteAPI, r.GetBug, login},
		{http.MethodPut, BugRouteAPI, r.UpdateBug, login},
		{http.MethodPut, BugClassifyRouteAPI, r.ClassifyBug, r.guard(middleware.RequirePermission(auth.PermissionClassifyBug))},

		{http.MethodGet, HealthRouteAPI, r.HealthCheck, nil},
	}

	for _, e := range endpoints {
		var handler http.Handler = e.handler
		for i := len(e.guards) - 1; i >= 0; i-- {
			handler = e.guards[i](handler)
		}
		if err := s.AddRoute(e.method, e.path, handler); err != nil {
			return fmt.Errorf("failed to add route %s %s: %w", e.method, e.path, err)
		}
	}

	if r.Metrics != nil {
		metricsHandler := promhttp.HandlerFor(r.Metrics.GetRegistry(), promhttp.HandlerOpts{})
		if err := s.AddRoute(http.MethodGet, MetricsRouteAPI, metricsHandler); err != nil {
			return fmt.Errorf("failed to add metrics route: %w", err)
		}
	}

	return nil
}

// guard returns mw only when guards are enforced.
func (r *Route) guard(mw func(http.Handler) http.Handler) []func(http.Handler) http.Handler {
	if !r.Options.Enforce {
		return nil
	}
	return []func(http.Handler) http.Handler{mw}
}

func (r *Route) throttle() []func(http.Handler) http.Handler {
	if r.Options.RateLimiter == nil {
		return nil
	}
	return []func(http.Handler) http.Handler{middleware.RateLimitMiddleware(r.Options.RateLimiter, r.Metrics)}
}

// HealthCheck pings the database through the health monitor.
func (r *Route) HealthCheck(w http.ResponseWriter, req *http.Request) {
	if r.Health == nil {
		r.writeJSON(w, http.StatusOK, dto.HealthResponseDTO{Status: StatusOK})
		return
	}
	if err := r.Health.Check(req.Context()); err != nil {
		r.Logger.Warn("Health check failed", "error", err)
		r.writeJSON(w, http.StatusServiceUnavailable, dto.HealthResponseDTO{Status: StatusUnavailable})
		return
	}
	r.writeJSON(w, http.StatusOK, dto.HealthResponseDTO{Status: StatusOK})
}

// decodeJSON checks the request content type and decodes the body into v.
// It writes the 400 response itself and reports false on failure.
func (r *Route) decodeJSON(w http.ResponseWriter, req *http.Request, v interface{}, errMsg string) bool {
	mediaType, _, err := mime.ParseMediaType(req.Header.Get(ContentType))
	if err != nil || mediaType != ContentTypeJson {
		r.errorResponse(w, http.StatusBadRequest, ErrInvalidContentType,
			fmt.Sprintf(ErrInvalidContentTypeFormat, req.Header.Get(ContentType)))
		return false
	}

	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		r.errorResponse(w, http.StatusBadRequest, errMsg, err.Error())
		return false
	}
	return true
}

// validate runs the struct validator and writes the 400 response on failure.
func (r *Route) validate(w http.ResponseWriter, v interface{}, errMsg string) bool {
	if err := r.validator.Struct(v); err != nil {
		r.errorResponse(w, http.StatusBadRequest, errMsg, err.Error())
		return false
	}
	return true
}

func (r *Route) incCounter(name string, labels ...string) {
	if r.Metrics == nil {
		return
	}
	if len(labels) > 0 {
		r.Metrics.IncCounterVec(name, labels...)
		return
	}
	r.Metrics.IncCounter(name)
}

func (r *Route) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set(ContentType, ContentTypeJson)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		r.Logger.Error(ErrFailedToEncodeResponse, "error", err)
	}
}

func (r *Route) errorResponse(w http.ResponseWriter, status int, errMsg, message string) {
	r.writeJSON(w, status, dto.ErrorResponseDTO{Error: errMsg, Message: message})
}
