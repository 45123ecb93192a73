package routes

const (
	// API route constants
	UserListRouteAPI     = "/api/user/list"
	UserRegisterRouteAPI = "/api/user/register"
	UserLoginRouteAPI    = "/api/user/login"
	UserLogoutRouteAPI   = "/api/user/logout"
	UserRouteAPI         = "/api/user/{" + UserIDVar + "}"
	BugListRouteAPI      = "/api/bug/list"
	BugNewRouteAPI       = "/api/bug/new"
	BugRouteAPI          = "/api/bug/{" + BugIDVar + "}"
	BugClassifyRouteAPI  = "/api/bug/{" + BugIDVar + "}/classify"
	HealthRouteAPI       = "/healthz"
	MetricsRouteAPI      = "/metrics"

	// path variables
	UserIDVar = "userId"
	BugIDVar  = "bugId"

	// Content-Type constants
	ContentType     = "Content-Type"
	ContentTypeJson = "application/json"

	// health status values
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"

	// message constants
	MsgUserRegistered      = "New user registered!"
	MsgWelcomeBack         = "Welcome back!"
	MsgLoggedOut           = "Logged out!"
	MsgUserUpdatedFormat   = "User %s updated!"
	MsgUserDeletedFormat   = "User %s deleted!"
	MsgBugReported         = "New bug reported!"
	MsgBugUpdatedFormat    = "Bug %s updated!"
	MsgBugClassifiedFormat = "Bug %s classified!"

	// Error messages
	ErrInvalidContentType       = "Request Content-Type must be application/json"
	ErrInvalidContentTypeFormat = "invalid content-type: %s"
	ErrInvalidRequestBody       = "Invalid request body"
	ErrAllFieldsRequired        = "All fields are required."
	ErrEmailAlreadyRegistered   = "Email already registered."
	ErrMissingCredentials       = "Please enter your login credentials."
	ErrInvalidCredentials       = "Invalid login credential provided. Please try again."
	ErrInvalidUserID            = "Invalid User ID"
	ErrUserNotFoundFormat       = "User %s not found."
	ErrServerError              = "Server error"
	ErrMissingBugData           = "Missing or invalid data"
	ErrInvalidBugIDFormat       = "Invalid Bug ID: %s"
	ErrBugNotFoundFormat        = "Bug %s not found."
	ErrInvalidData              = "Invalid data"
	ErrInternalServerError      = "Internal server error"
	ErrFailedToEncodeResponse   = "failed to encode response"
)
