package repository

import (
	"context"
	"sync"

	"github.com/AlibekovAA/todo-rpc/internal/user/domain"
)

type MemoryUserRepository struct {
	mu    sync.Mutex
	users []domain.User
}

func NewMemoryUserRepository(users ...domain.User) *MemoryUserRepository {
	return &MemoryUserRepository{users: append([]domain.User(nil), users...)}
}

func (r *MemoryUserRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append(make([]domain.User, 0, len(r.users)), r.users...), nil
}
