package view

import (
	"context"
	"errors"
	"sync"

	"github.com/AlibekovAA/todo-rpc/internal/observability/metrics"
	"github.com/AlibekovAA/todo-rpc/internal/rpc/contract"
)

type TodoAPI interface {
	TodoList(ctx context.Context) ([]contract.Todo, error)
	TodoDeleteByID(ctx context.Context, id string) (contract.TodoDeleteByIDOutput, error)
}

type DeletePhase string

const (
	PhaseIdle       DeletePhase = "idle"
	PhaseMutating   DeletePhase = "mutating"
	PhaseSettled    DeletePhase = "settled"
	PhaseRefetching DeletePhase = "refetching"
)

type TodoListOptions struct {
	OnState Observer[[]contract.Todo]
	OnPhase func(DeletePhase)
}

// TodoListView is the todo list together with its delete flow:
// Mutating -> Settled -> Refetching -> Idle. The list is refetched after
// every delete, failed or not, and rows are never removed locally.
type TodoListView struct {
	list    *ListView[[]contract.Todo]
	api     TodoAPI
	onPhase func(DeletePhase)

	deleteMu    sync.Mutex
	mu          sync.RWMutex
	phase       DeletePhase
	mutationErr error
}

// LoadTodoListView fetches todo.list once and uses the result as the initial
// state. A failed initial fetch is kept in the state rather than returned.
func LoadTodoListView(ctx context.Context, api TodoAPI, opts TodoListOptions) *TodoListView {
	todos, err := api.TodoList(ctx)
	if todos == nil {
		todos = []contract.Todo{}
	}
	return newTodoListView(api, newListViewWithError(todos, err, api.TodoList, opts.OnState), opts)
}

// NewTodoListView starts from initial without calling the API.
func NewTodoListView(api TodoAPI, initial []contract.Todo, opts TodoListOptions) *TodoListView {
	if initial == nil {
		initial = []contract.Todo{}
	}
	return newTodoListView(api, NewListView(initial, api.TodoList, opts.OnState), opts)
}

func newTodoListView(api TodoAPI, list *ListView[[]contract.Todo], opts TodoListOptions) *TodoListView {
	return &TodoListView{
		list:    list,
		api:     api,
		onPhase: opts.OnPhase,
		phase:   PhaseIdle,
	}
}

func (v *TodoListView) State() State[[]contract.Todo] {
	return v.list.State()
}

func (v *TodoListView) Phase() DeletePhase {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.phase
}

// MutationError is the error of the last delete, or nil if it succeeded.
func (v *TodoListView) MutationError() error {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.mutationErr
}

func (v *TodoListView) Refetch(ctx context.Context) error {
	return v.list.Refetch(ctx)
}

// Delete removes the todo with id and then reconciles the list with the
// store. The returned error joins the delete and refetch failures.
func (v *TodoListView) Delete(ctx context.Context, id string) error {
	v.deleteMu.Lock()
	defer v.deleteMu.Unlock()

	v.setPhase(PhaseMutating)
	_, mutationErr := v.api.TodoDeleteByID(ctx, id)

	outcome := "ok"
	if mutationErr != nil {
		outcome = "error"
	}
	metrics.WebMutationsSettledTotal.WithLabelValues(contract.TodoDeleteByID.Path(), outcome).Inc()

	v.mu.Lock()
	v.mutationErr = mutationErr
	v.mu.Unlock()
	v.setPhase(PhaseSettled)

	v.setPhase(PhaseRefetching)
	refetchErr := v.list.Refetch(ctx)

	v.setPhase(PhaseIdle)
	return errors.Join(mutationErr, refetchErr)
}

func (v *TodoListView) setPhase(p DeletePhase) {
	v.mu.Lock()
	v.phase = p
	v.mu.Unlock()

	if v.onPhase != nil {
		v.onPhase(p)
	}
}
