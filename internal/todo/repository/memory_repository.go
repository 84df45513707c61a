package repository

import (
	"context"
	"sync"

	"github.com/AlibekovAA/todo-rpc/internal/todo/domain"
)

// MemoryTodoRepository keeps todos in insertion order. It backs tests and
// local runs without a database.
type MemoryTodoRepository struct {
	mu          sync.Mutex
	todos       []domain.Todo
	listCalls   int
	deleteCalls int
}

func NewMemoryTodoRepository(todos ...domain.Todo) *MemoryTodoRepository {
	return &MemoryTodoRepository{todos: append([]domain.Todo(nil), todos...)}
}

func (r *MemoryTodoRepository) List(_ context.Context) ([]domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listCalls++
	return append(make([]domain.Todo, 0, len(r.todos)), r.todos...), nil
}

func (r *MemoryTodoRepository) DeleteByID(_ context.Context, id string) (domain.DeleteResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.deleteCalls++
	for i, t := range r.todos {
		if t.ID == id {
			r.todos = append(r.todos[:i], r.todos[i+1:]...)
			deleted := t
			return domain.DeleteResult{Deleted: &deleted, RowsAffected: 1}, nil
		}
	}
	return domain.DeleteResult{}, nil
}

// Calls reports how many times List and DeleteByID were invoked.
func (r *MemoryTodoRepository) Calls() (list, deleteByID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listCalls, r.deleteCalls
}
