package fakes

import (
	"context"
	"sync"
	"time"

	"historyatlas/src/domain"
	"historyatlas/src/domain/entities"

	"github.com/google/uuid"
)

// UserRepository guarda usuários em memória com a mesma semântica de erro do Postgres.
type UserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]entities.User
	Err   error
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: map[uuid.UUID]entities.User{}}
}

func (r *UserRepository) Create(_ context.Context, user entities.User) (entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return entities.User{}, r.Err
	}
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return entities.User{}, domain.ErrUserAlreadyExists
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	r.users[user.ID] = user
	return user, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return entities.User{}, r.Err
	}
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return entities.User{}, domain.ErrUserNotFound
}

func (r *UserRepository) FindByID(_ context.Context, id uuid.UUID) (entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return entities.User{}, r.Err
	}
	user, found := r.users[id]
	if !found {
		return entities.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *UserRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}
