package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/imyashkale/kubegate/internal/logger"
	"github.com/imyashkale/kubegate/internal/models"
)

const uniqueViolationCode = "23505"

// UserOperations handles all PostgreSQL operations for users
type UserOperations struct {
	pool *pgxpool.Pool
}

// NewUserOperations creates a new UserOperations instance
func NewUserOperations(pool *pgxpool.Pool) *UserOperations {
	return &UserOperations{pool: pool}
}

// PopulateRoles fills the roles table with the fixed role set. Already
// seeded rows are left untouched, so the call is idempotent.
func (uo *UserOperations) PopulateRoles(ctx context.Context) error {
	const query = `INSERT INTO roles (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`

	for _, role := range models.AllRoles {
		if _, err := uo.pool.Exec(ctx, query, int(role), role.String()); err != nil {
			return fmt.Errorf("failed to seed role %s: %w", role, err)
		}
	}

	logger.Debug("Roles table populated")
	return nil
}

// AddUser inserts a user and assigns its surrogate id
func (uo *UserOperations) AddUser(ctx context.Context, user *models.User) error {
	const query = `INSERT INTO users (first_name, last_name, username, email, hashed_password, disabled, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := uo.pool.QueryRow(ctx, query,
		user.FirstName,
		user.LastName,
		user.Username,
		user.Email,
		user.HashedPassword,
		user.Disabled,
		int(user.Role),
	).Scan(&user.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			logger.WithField("username", user.Username).Warn("Username already taken")
			return ErrDuplicate
		}
		logger.WithFields(map[string]interface{}{
			"username": user.Username,
			"error":    err.Error(),
		}).Error("Failed to insert user")
		return fmt.Errorf("failed to insert user: %w", err)
	}

	logger.WithFields(map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("User created")

	return nil
}

const userColumns = `id, first_name, last_name, username, email, hashed_password, disabled, role`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	var role int
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Username, &u.Email, &u.HashedPassword, &u.Disabled, &role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	u.Role = models.Role(role)
	return &u, nil
}

// GetUserByUsername retrieves a user by username
func (uo *UserOperations) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(uo.pool.QueryRow(ctx, query, username))
}

// GetUserByID retrieves a user by surrogate id
func (uo *UserOperations) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(uo.pool.QueryRow(ctx, query, id))
}

// GetAllUsers retrieves every user in the database
func (uo *UserOperations) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := uo.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// DeleteUser removes a user row. Unlike resources, user rows are physically
// deleted.
func (uo *UserOperations) DeleteUser(ctx context.Context, id int64) error {
	const query = `DELETE FROM users WHERE id = $1`

	tag, err := uo.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	logger.WithField("user_id", id).Info("User deleted")
	return nil
}
