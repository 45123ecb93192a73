package userservice

import "errors"

// MaxPasswordBytes is the longest password bcrypt can hash.
const MaxPasswordBytes = 72

const (
	// Error messages for user service operations
	ErrFailedToHashPassword = "failed to hash password" // #nosec G101
	ErrFailedToRegisterUser = "failed to register user"
	ErrFailedToUpdateUser   = "failed to update user"
	ErrFailedToDeleteUser   = "failed to delete user"
	ErrRetrievingUser       = "error retrieving user"
	ErrListingUsers         = "error listing users"
)

var (
	ErrInvalidID              = errors.New("invalid user id")
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrPasswordTooLong        = errors.New("password exceeds 72 bytes")
)
