package model

import (
	"context"
	"time"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByLogin(ctx context.Context, usernameOrEmail string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	UpdateLastLogin(ctx context.Context, id int64) error
	UpdateProfile(ctx context.Context, id int64, fullName *string, profileData *string) error
}

// User represents a stored user with authentication material.
// PasswordHash and Salt must never leave the service layer.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Salt         string
	FullName     *string
	CreatedAt    time.Time
	LastLogin    *time.Time
	IsActive     bool
	ProfileData  *string
}

// UserProfile is the public view of a user, safe to return to callers.
type UserProfile struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FullName    *string    `json:"full_name,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	ProfileData *string    `json:"profile_data,omitempty"`
}

// Profile converts a user into its public view.
func (u User) Profile() UserProfile {
	return UserProfile{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		CreatedAt:   u.CreatedAt,
		LastLogin:   u.LastLogin,
		ProfileData: u.ProfileData,
	}
}
