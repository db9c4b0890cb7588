package repository

import (
	"context"

	"github.com/imyashkale/kubegate/internal/database"
	"github.com/imyashkale/kubegate/internal/models"
)

var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = database.ErrNotFound
	// ErrDuplicate is returned when an insert violates a uniqueness constraint
	ErrDuplicate = database.ErrDuplicate
)

// UserRepository defines the interface for user store operations
type UserRepository interface {
	Add(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	Delete(ctx context.Context, id int64) error
}

// postgresUserRepository implements UserRepository using PostgreSQL
type postgresUserRepository struct {
	db *database.UserOperations
}

// NewUserRepository creates a new PostgreSQL-backed user repository
func NewUserRepository(db *database.UserOperations) UserRepository {
	return &postgresUserRepository{
		db: db,
	}
}

// Add inserts a user and assigns its id
func (r *postgresUserRepository) Add(ctx context.Context, user *models.User) error {
	return r.db.AddUser(ctx, user)
}

// GetByUsername retrieves a user by username
func (r *postgresUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.db.GetUserByUsername(ctx, username)
}

// GetByID retrieves a user by surrogate id
func (r *postgresUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.db.GetUserByID(ctx, id)
}

// GetAll retrieves every user
func (r *postgresUserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	return r.db.GetAllUsers(ctx)
}

// Delete removes a user row
func (r *postgresUserRepository) Delete(ctx context.Context, id int64) error {
	return r.db.DeleteUser(ctx, id)
}
