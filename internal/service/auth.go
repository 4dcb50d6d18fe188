package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/prepmate/prepmate-server/internal/apierrors"
	"github.com/prepmate/prepmate-server/internal/logger"
	"github.com/prepmate/prepmate-server/internal/model"
	"github.com/prepmate/prepmate-server/internal/security"
)

// Auth owns user credentials: registration, authentication and profile
// access. Password digests and salts never leave this service.
type Auth struct {
	userStore model.UserStore
	logger    *logger.Logger
}

func NewAuth(userStore model.UserStore, logger *logger.Logger) *Auth {
	return &Auth{
		userStore: userStore,
		logger:    logger,
	}
}

// RegisterParams contains parameters to register a user.
type RegisterParams struct {
	Username string
	Email    string
	Password string
	FullName *string
}

// Register validates the input, derives the password digest and creates the
// user. Uniqueness is settled by the store's constraints, so two concurrent
// registrations of the same identifier yield one success and one conflict.
func (a *Auth) Register(ctx context.Context, params RegisterParams) (model.User, error) {
	a.logger.Debug("Auth service: starting user registration",
		"username", params.Username)

	var violations []string
	if params.Username == "" {
		violations = append(violations, "username is required")
	}
	if !ValidateEmail(params.Email) {
		violations = append(violations, "invalid email format")
	}
	if ok, broken := ValidatePassword(params.Password); !ok {
		violations = append(violations, broken...)
	}
	if len(violations) > 0 {
		return model.User{}, apierrors.NewErrValidation(violations)
	}

	digest, salt, err := security.DerivePassword(params.Password, "")
	if err != nil {
		return model.User{}, fmt.Errorf("failed to derive password: %w", err)
	}

	user, err := a.userStore.Create(ctx, model.User{
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: digest,
		Salt:         salt,
		FullName:     params.FullName,
	})
	if errors.Is(err, model.ErrDuplicate) {
		a.logger.Info("Auth service: registration conflict",
			"username", params.Username)
		return model.User{}, apierrors.NewErrConflict()
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"username", params.Username,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"username", user.Username,
		"user_id", user.ID)

	return user, nil
}

// Authenticate resolves a user by username or email and verifies the
// password. Unknown identity and wrong password produce the same error so
// accounts cannot be enumerated.
func (a *Auth) Authenticate(ctx context.Context, usernameOrEmail, password string) (model.User, error) {
	user, err := a.userStore.GetByLogin(ctx, usernameOrEmail)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apierrors.NewErrInvalidCredentials()
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by login: %w", err)
	}

	if !security.VerifyPassword(password, user.PasswordHash, user.Salt) {
		a.logger.Info("Auth service: password verification failed",
			"user_id", user.ID)
		return model.User{}, apierrors.NewErrInvalidCredentials()
	}

	if err := a.userStore.UpdateLastLogin(ctx, user.ID); err != nil {
		return model.User{}, fmt.Errorf("failed to update last login: %w", err)
	}

	a.logger.Info("Auth service: user authenticated",
		"user_id", user.ID)

	return user, nil
}

// GetProfile returns the public profile fields for an active user.
func (a *Auth) GetProfile(ctx context.Context, userID int64) (model.UserProfile, error) {
	user, err := a.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.UserProfile{}, apierrors.NewErrUserNotFound()
	}
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user.Profile(), nil
}

// UpdateProfile replaces the opaque profile blob and optionally the full
// name.
func (a *Auth) UpdateProfile(ctx context.Context, userID int64, fullName *string, profileData *string) error {
	err := a.userStore.UpdateProfile(ctx, userID, fullName, profileData)
	if errors.Is(err, model.ErrNotFound) {
		return apierrors.NewErrUserNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	a.logger.Info("Auth service: profile updated",
		"user_id", userID)

	return nil
}
