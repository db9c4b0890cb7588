package services

import (
	"context"
	"errors"
	"time"

	"github.com/imyashkale/kubegate/internal/models"
	"github.com/imyashkale/kubegate/internal/repository"
)

// fakeUserRepo is an in-memory UserRepository for service tests
type fakeUserRepo struct {
	nextID int64
	users  map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[string]*models.User{}}
	for _, user := range users {
		repo.nextID++
		user.ID = repo.nextID
		repo.users[user.Username] = user
	}
	return repo
}

func (f *fakeUserRepo) Add(ctx context.Context, user *models.User) error {
	if _, exists := f.users[user.Username]; exists {
		return repository.ErrDuplicate
	}
	f.nextID++
	user.ID = f.nextID
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetAll(ctx context.Context) ([]*models.User, error) {
	all := []*models.User{}
	for _, user := range f.users {
		all = append(all, user)
	}
	return all, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	for username, user := range f.users {
		if user.ID == id {
			delete(f.users, username)
			return nil
		}
	}
	return repository.ErrNotFound
}

// fakeResourceRepo is an in-memory ResourceRepository. Setting failAdd makes
// every insert fail, simulating a ledger outage mid-deploy.
type fakeResourceRepo struct {
	nextID  int64
	rows    []*models.Resource
	failAdd bool
}

func newFakeResourceRepo() *fakeResourceRepo {
	return &fakeResourceRepo{}
}

func (f *fakeResourceRepo) Add(ctx context.Context, resource *models.Resource) error {
	if f.failAdd {
		return errors.New("ledger unavailable")
	}
	f.nextID++
	resource.ID = f.nextID
	f.rows = append(f.rows, resource)
	return nil
}

func (f *fakeResourceRepo) GetByName(ctx context.Context, name string, ownerID int64) (*models.Resource, error) {
	for _, row := range f.rows {
		if row.Name == name && row.Owner == ownerID {
			return row, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeResourceRepo) GetByID(ctx context.Context, id int64, ownerID int64) (*models.Resource, error) {
	for _, row := range f.rows {
		if row.ID == id && row.Owner == ownerID {
			return row, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeResourceRepo) GetAll(ctx context.Context) ([]*models.Resource, error) {
	return f.rows, nil
}

func (f *fakeResourceRepo) GetByOwner(ctx context.Context, ownerID int64) ([]*models.Resource, error) {
	owned := []*models.Resource{}
	for _, row := range f.rows {
		if row.Owner == ownerID {
			owned = append(owned, row)
		}
	}
	return owned, nil
}

func (f *fakeResourceRepo) SoftDelete(ctx context.Context, id int64, deletedAt time.Time) error {
	for _, row := range f.rows {
		if row.ID == id {
			stamp := deletedAt
			row.DeletedTimestamp = &stamp
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeResourceRepo) SetUpdateTime(ctx context.Context, name string, ownerID int64, modifiedAt time.Time) error {
	for _, row := range f.rows {
		if row.Name == name && row.Owner == ownerID {
			stamp := modifiedAt
			row.ModifiedTimestamp = &stamp
			return nil
		}
	}
	return repository.ErrNotFound
}
