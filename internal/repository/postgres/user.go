package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/prepmate/prepmate-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Create inserts a new user. Uniqueness of username and email is enforced by
// the database constraints, so a race between two concurrent registrations
// of the same identifier resolves to exactly one success.
func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (username, email, password_hash, salt, full_name)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, username, email, password_hash, salt, full_name, created_at, last_login, is_active, profile_data`

	var savedUser model.User
	err := r.db.QueryRow(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.Salt, user.FullName,
	).Scan(
		&savedUser.ID, &savedUser.Username, &savedUser.Email, &savedUser.PasswordHash,
		&savedUser.Salt, &savedUser.FullName, &savedUser.CreatedAt, &savedUser.LastLogin,
		&savedUser.IsActive, &savedUser.ProfileData,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, model.ErrDuplicate
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return savedUser, nil
}

// GetByLogin looks up an active user by username or email.
func (r *UserRepository) GetByLogin(ctx context.Context, usernameOrEmail string) (model.User, error) {
	var user model.User
	query := `SELECT id, username, email, password_hash, salt, full_name, created_at, last_login, is_active, profile_data
			  FROM users WHERE (username = $1 OR email = $1) AND is_active = TRUE`

	err := r.db.QueryRow(ctx, query, usernameOrEmail).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Salt,
		&user.FullName, &user.CreatedAt, &user.LastLogin, &user.IsActive, &user.ProfileData,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by login: %w", err)
	}

	return user, nil
}

// GetByID looks up an active user by id.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (model.User, error) {
	var user model.User
	query := `SELECT id, username, email, password_hash, salt, full_name, created_at, last_login, is_active, profile_data
			  FROM users WHERE id = $1 AND is_active = TRUE`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Salt,
		&user.FullName, &user.CreatedAt, &user.LastLogin, &user.IsActive, &user.ProfileData,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// UpdateLastLogin stamps the user's last successful authentication.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	query := `UPDATE users SET last_login = now() WHERE id = $1 AND is_active = TRUE`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

// UpdateProfile replaces the profile blob and, when provided, the full name.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, fullName *string, profileData *string) error {
	query := `UPDATE users SET profile_data = $2, full_name = COALESCE($3, full_name)
			  WHERE id = $1 AND is_active = TRUE`

	cmd, err := r.db.Exec(ctx, query, id, profileData, fullName)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
