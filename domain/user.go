package domain

import (
	"context"
	"time"
)

// User represents a registered member.
// A user can publish courses, write posts, comment and like.
type User struct {
	ID              int64     // Unique identifier
	Email           string    // Login email (unique)
	Nickname        string    // Display name
	Password        string    // Bcrypt hashed password
	ProfileImageURL string    // Optional avatar URL
	BirthYear       int       // Optional, 0 when unset
	Gender          string    // Optional, empty when unset
	CreatedAt       time.Time // Account creation timestamp
	UpdatedAt       time.Time // Last profile update timestamp
}

// UserRepository defines the contract for user data persistence.
type UserRepository interface {
	// GetByID retrieves a user by their ID.
	// Returns ErrNotFound if the user doesn't exist.
	GetByID(ctx context.Context, id int64) (User, error)

	// GetByEmail retrieves a user by their email.
	// Used during login to verify credentials.
	GetByEmail(ctx context.Context, email string) (User, error)

	// Insert creates a new user account.
	// Backfills the ID in the provided User object upon success.
	Insert(ctx context.Context, u *User) error

	// Update merges the non-zero profile fields of an existing user.
	Update(ctx context.Context, u *User) error

	GetByIDs(ctx context.Context, ids []int64) ([]User, error)
}

// UserUsecase defines the business logic contract for user operations.
type UserUsecase interface {
	// Register creates a new user account.
	// Returns ErrConflict if the email is already taken.
	Register(ctx context.Context, email, nickname, password string) error

	// Login verifies user credentials and returns a JWT token.
	// Returns ErrNotFound if the user doesn't exist.
	// Returns ErrBadParamInput if the password is incorrect.
	Login(ctx context.Context, email, password string) (string, error)

	// Get returns the profile for the given user.
	Get(ctx context.Context, id int64) (User, error)

	// UpdateProfile merges nickname/profile image/birth year/gender edits.
	// Only the profile owner may edit, enforced by the caller-supplied id.
	UpdateProfile(ctx context.Context, u *User) error
}
