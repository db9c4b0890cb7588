package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/imyashkale/kubegate/internal/logger"
	"github.com/imyashkale/kubegate/internal/models"
)

// ResourceOperations handles all PostgreSQL operations for the resource
// ledger. Every call is its own unit of work; no transaction is ever held
// open across a cluster API call.
type ResourceOperations struct {
	pool *pgxpool.Pool
}

// NewResourceOperations creates a new ResourceOperations instance
func NewResourceOperations(pool *pgxpool.Pool) *ResourceOperations {
	return &ResourceOperations{pool: pool}
}

// AddResource inserts a ledger row and assigns its surrogate id. The insert
// commits immediately so a crash mid-manifest leaves exactly the committed
// prefix recorded.
func (ro *ResourceOperations) AddResource(ctx context.Context, resource *models.Resource) error {
	const query = `INSERT INTO resources (owner, name, type, created_timestamp)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := ro.pool.QueryRow(ctx, query,
		resource.Owner,
		resource.Name,
		resource.Type,
		resource.CreatedTimestamp,
	).Scan(&resource.ID)

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"name":  resource.Name,
			"type":  resource.Type,
			"owner": resource.Owner,
			"error": err.Error(),
		}).Error("Failed to insert resource record")
		return fmt.Errorf("failed to insert resource: %w", err)
	}

	logger.WithFields(map[string]interface{}{
		"resource_id": resource.ID,
		"name":        resource.Name,
		"type":        resource.Type,
		"owner":       resource.Owner,
	}).Info("Resource recorded")

	return nil
}

const resourceColumns = `id, owner, name, type, created_timestamp, modified_timestamp, deleted_timestamp`

func scanResource(row pgx.Row) (*models.Resource, error) {
	var r models.Resource
	err := row.Scan(&r.ID, &r.Owner, &r.Name, &r.Type, &r.CreatedTimestamp, &r.ModifiedTimestamp, &r.DeletedTimestamp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan resource: %w", err)
	}
	return &r, nil
}

// GetResourceByName retrieves a resource by name, scoped to its owner
func (ro *ResourceOperations) GetResourceByName(ctx context.Context, name string, ownerID int64) (*models.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE name = $1 AND owner = $2`
	return scanResource(ro.pool.QueryRow(ctx, query, name, ownerID))
}

// GetResourceByID retrieves a resource by surrogate id, scoped to its owner
func (ro *ResourceOperations) GetResourceByID(ctx context.Context, id int64, ownerID int64) (*models.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1 AND owner = $2`
	return scanResource(ro.pool.QueryRow(ctx, query, id, ownerID))
}

func (ro *ResourceOperations) queryResources(ctx context.Context, query string, args ...interface{}) ([]*models.Resource, error) {
	rows, err := ro.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query resources: %w", err)
	}
	defer rows.Close()

	var resources []*models.Resource
	for rows.Next() {
		resource, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, resource)
	}
	return resources, rows.Err()
}

// GetAllResources retrieves every ledger row, soft-deleted ones included
func (ro *ResourceOperations) GetAllResources(ctx context.Context) ([]*models.Resource, error) {
	return ro.queryResources(ctx, `SELECT `+resourceColumns+` FROM resources ORDER BY id`)
}

// GetUserResources retrieves every ledger row for one owner, soft-deleted
// ones included
func (ro *ResourceOperations) GetUserResources(ctx context.Context, ownerID int64) ([]*models.Resource, error) {
	return ro.queryResources(ctx, `SELECT `+resourceColumns+` FROM resources WHERE owner = $1 ORDER BY id`, ownerID)
}

// SoftDelete stamps the row's deleted timestamp. The row is never physically
// removed, preserving audit history.
func (ro *ResourceOperations) SoftDelete(ctx context.Context, id int64, deletedAt time.Time) error {
	const query = `UPDATE resources SET deleted_timestamp = $1 WHERE id = $2`

	tag, err := ro.pool.Exec(ctx, query, deletedAt, id)
	if err != nil {
		return fmt.Errorf("failed to soft-delete resource: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	logger.WithField("resource_id", id).Info("Resource soft-deleted")
	return nil
}

// SetUpdateTime stamps the row's modified timestamp, scoped to its owner
func (ro *ResourceOperations) SetUpdateTime(ctx context.Context, name string, ownerID int64, modifiedAt time.Time) error {
	const query = `UPDATE resources SET modified_timestamp = $1 WHERE name = $2 AND owner = $3`

	tag, err := ro.pool.Exec(ctx, query, modifiedAt, name, ownerID)
	if err != nil {
		return fmt.Errorf("failed to set update time: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
