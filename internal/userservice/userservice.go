package userservice

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

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	UserRepo interfaces.UserRepository
	Logger   interfaces.Logger
	HashCost int
}

// NewUserService creates a new UserService instance.
func NewUserService(repo interfaces.UserRepository, logger interfaces.Logger) *UserService {
	return &UserService{
		UserRepo: repo,
		Logger:   logger,
		HashCost: bcrypt.DefaultCost,
	}
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName)
	defer s.Logger.Debug("Exiting function", "func", funcName)

	users, err := s.UserRepo.ListUsers(ctx)
	if err != nil {
		s.Logger.Error(ErrListingUsers, "func", funcName, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrListingUsers, err)
	}
	return users, nil
}

// GetUser returns ErrInvalidID for malformed ids and ErrUserNotFound for unknown ones.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "userId", id)
	defer s.Logger.Debug("Exiting function", "func", funcName, "userId", id)

	if !s.UserRepo.ValidID(id) {
		return nil, ErrInvalidID
	}
	return s.getUser(ctx, funcName, id)
}

func (s *UserService) getUser(ctx context.Context, funcName, id string) (*models.User, error) {
	user, err := s.UserRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrDocumentNotFound) {
			return nil, fmt.Errorf("%s: %w", id, ErrUserNotFound)
		}
		s.Logger.Error(ErrRetrievingUser, "func", funcName, "userId", id, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingUser, err)
	}
	return user, nil
}

// RegisterUser hashes the password and adds the user via the repository.
func (s *UserService) RegisterUser(ctx context.Context, req dto.UserRegisterRequestDTO) (string, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "email", req.Email)
	defer s.Logger.Debug("Exiting function", "func", funcName, "email", req.Email)

	req.Normalize()
	if len(req.Password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	s.Logger.Info("Registering user", "func", funcName, "email", req.Email)

	existing, err := s.UserRepo.GetUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, interfaces.ErrDocumentNotFound) {
		s.Logger.Error(ErrRetrievingUser, "func", funcName, "email", req.Email, "error", err)
		return "", fmt.Errorf("%s: %w", ErrFailedToRegisterUser, err)
	}
	if existing != nil {
		return "", ErrEmailAlreadyRegistered
	}

	hashedPassword, err := s.hash(req.Password)
	if err != nil {
		s.Logger.Error(ErrFailedToHashPassword, "func", funcName, "email", req.Email, "error", err)
		return "", err
	}

	user := models.NewUser(req.Email, hashedPassword, req.FullName, req.GivenName, req.FamilyName, req.Role)

	userID, err := s.UserRepo.AddUser(ctx, *user)
	if err != nil {
		if errors.Is(err, interfaces.ErrDuplicateKey) {
			return "", ErrEmailAlreadyRegistered
		}
		s.Logger.Error(ErrFailedToRegisterUser, "func", funcName, "email", req.Email, "error", err)
		return "", fmt.Errorf("%s: %w", ErrFailedToRegisterUser, err)
	}
	s.Logger.Info("User registered successfully", "func", funcName, "email", req.Email, "ID", userID)
	return userID, nil
}

// AuthenticateUser verifies a user's credentials and returns the user.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "email", email)
	defer s.Logger.Debug("Exiting function", "func", funcName, "email", email)

	user, err := s.UserRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, interfaces.ErrDocumentNotFound) {
			s.Logger.Warn("Login for unknown email", "func", funcName, "email", email)
			return nil, ErrInvalidCredentials
		}
		s.Logger.Error(ErrRetrievingUser, "func", funcName, "email", email, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingUser, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.Logger.Warn("Invalid password", "func", funcName, "email", email)
		return nil, ErrInvalidCredentials
	}

	s.Logger.Info("User authenticated successfully", "func", funcName, "email", email)
	return user, nil
}

// UpdateUser writes the non-empty whitelisted fields of req and stamps lastUpdated.
func (s *UserService) UpdateUser(ctx context.Context, id string, req dto.UserUpdateRequestDTO) error {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "userId", id)
	defer s.Logger.Debug("Exiting function", "func", funcName, "userId", id)

	if !s.UserRepo.ValidID(id) {
		return ErrInvalidID
	}

	req.Normalize()
	if len(req.Password) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	fields, err := repository.UpdateFields(req)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrFailedToUpdateUser, err)
	}
	if password, ok := fields["password"].(string); ok {
		hashed, err := s.hash(password)
		if err != nil {
			s.Logger.Error(ErrFailedToHashPassword, "func", funcName, "userId", id, "error", err)
			return err
		}
		fields["password"] = hashed
	}
	fields["lastUpdated"] = time.Now().UTC()

	matched, err := s.UserRepo.UpdateUser(ctx, id, fields)
	if err != nil {
		s.Logger.Error(ErrFailedToUpdateUser, "func", funcName, "userId", id, "error", err)
		return fmt.Errorf("%s: %w", ErrFailedToUpdateUser, err)
	}
	if !matched {
		return fmt.Errorf("%s: %w", id, ErrUserNotFound)
	}
	s.Logger.Info("User updated", "func", funcName, "userId", id)
	return nil
}

// DeleteUser checks the user exists before deleting it.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "userId", id)
	defer s.Logger.Debug("Exiting function", "func", funcName, "userId", id)

	if !s.UserRepo.ValidID(id) {
		return ErrInvalidID
	}
	if _, err := s.getUser(ctx, funcName, id); err != nil {
		return err
	}

	deleted, err := s.UserRepo.DeleteUser(ctx, id)
	if err != nil {
		s.Logger.Error(ErrFailedToDeleteUser, "func", funcName, "userId", id, "error", err)
		return fmt.Errorf("%s: %w", ErrFailedToDeleteUser, err)
	}
	if !deleted {
		return fmt.Errorf("%s: %w", id, ErrUserNotFound)
	}
	s.Logger.Info("User deleted", "func", funcName, "userId", id)
	return nil
}

// hash returns ErrPasswordTooLong for passwords bcrypt would reject.
func (s *UserService) hash(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	cost := s.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrFailedToHashPassword, err)
	}
	return string(hashed), nil
}
