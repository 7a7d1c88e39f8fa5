package repositories

import (
	"context"

	"clinic/internal/models"

	"github.com/google/uuid"
)

// UserRepository defines the user-related database operations
type UserRepository interface {
	// Create creates a new user in the database
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by their ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetByEmail retrieves a user by their email address
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdatePassword stores a new password hash and invalidates issued tokens
	UpdatePassword(ctx context.Context, userID uuid.UUID, hash string) error

	// IncrementTokenVersion invalidates every token issued to the user so far
	IncrementTokenVersion(ctx context.Context, userID uuid.UUID) error

	// List retrieves users with pagination, optionally limited to one clinic
	List(ctx context.Context, q ListQuery) ([]models.User, int64, error)
}
