package repository

import (
	"context"
	"time"

	"github.com/imyashkale/kubegate/internal/database"
	"github.com/imyashkale/kubegate/internal/models"
)

// ResourceRepository defines the interface for ownership ledger operations.
// List operations return soft-deleted rows too; callers partition on the
// deleted timestamp for presentation.
type ResourceRepository interface {
	Add(ctx context.Context, resource *models.Resource) error
	GetByName(ctx context.Context, name string, ownerID int64) (*models.Resource, error)
	GetByID(ctx context.Context, id int64, ownerID int64) (*models.Resource, error)
	GetAll(ctx context.Context) ([]*models.Resource, error)
	GetByOwner(ctx context.Context, ownerID int64) ([]*models.Resource, error)
	SoftDelete(ctx context.Context, id int64, deletedAt time.Time) error
	SetUpdateTime(ctx context.Context, name string, ownerID int64, modifiedAt time.Time) error
}

// postgresResourceRepository implements ResourceRepository using PostgreSQL
type postgresResourceRepository struct {
	db *database.ResourceOperations
}

// NewResourceRepository creates a new PostgreSQL-backed resource repository
func NewResourceRepository(db *database.ResourceOperations) ResourceRepository {
	return &postgresResourceRepository{
		db: db,
	}
}

// Add inserts a ledger row and assigns its id
func (r *postgresResourceRepository) Add(ctx context.Context, resource *models.Resource) error {
	return r.db.AddResource(ctx, resource)
}

// GetByName retrieves an owner's resource by name
func (r *postgresResourceRepository) GetByName(ctx context.Context, name string, ownerID int64) (*models.Resource, error) {
	return r.db.GetResourceByName(ctx, name, ownerID)
}

// GetByID retrieves an owner's resource by surrogate id
func (r *postgresResourceRepository) GetByID(ctx context.Context, id int64, ownerID int64) (*models.Resource, error) {
	return r.db.GetResourceByID(ctx, id, ownerID)
}

// GetAll retrieves every ledger row
func (r *postgresResourceRepository) GetAll(ctx context.Context) ([]*models.Resource, error) {
	return r.db.GetAllResources(ctx)
}

// GetByOwner retrieves every ledger row for one owner
func (r *postgresResourceRepository) GetByOwner(ctx context.Context, ownerID int64) ([]*models.Resource, error) {
	return r.db.GetUserResources(ctx, ownerID)
}

// SoftDelete stamps the deleted timestamp
func (r *postgresResourceRepository) SoftDelete(ctx context.Context, id int64, deletedAt time.Time) error {
	return r.db.SoftDelete(ctx, id, deletedAt)
}

// SetUpdateTime stamps the modified timestamp
func (r *postgresResourceRepository) SetUpdateTime(ctx context.Context, name string, ownerID int64, modifiedAt time.Time) error {
	return r.db.SetUpdateTime(ctx, name, ownerID, modifiedAt)
}
