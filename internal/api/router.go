// Package api assembles the procedure namespaces of the service into the
// single router exposed by the transport.
package api

import (
	"context"

	"github.com/AlibekovAA/todo-rpc/internal/common/logger"
	"github.com/AlibekovAA/todo-rpc/internal/rpc"
	"github.com/AlibekovAA/todo-rpc/internal/rpc/contract"
)

type TodoService interface {
	List(ctx context.Context) ([]contract.Todo, error)
	DeleteByID(ctx context.Context, id string) (contract.TodoDeleteByIDOutput, error)
}

type UserService interface {
	List(ctx context.Context) ([]contract.User, error)
}

func NewAppRouter(todos TodoService, users UserService, log *logger.Logger) *rpc.Router {
	return rpc.NewRouter(log,
		newTodoNamespace(todos),
		newUserNamespace(users),
	)
}

func newTodoNamespace(svc TodoService) *rpc.Namespace {
	ns := rpc.NewNamespace(contract.NamespaceTodo)

	rpc.HandleQuery(ns, contract.TodoList, func(ctx context.Context, _ contract.NoInput) ([]contract.Todo, error) {
		return svc.List(ctx)
	})
	rpc.HandleMutation(ns, contract.TodoDeleteByID, func(ctx context.Context, in contract.TodoDeleteByIDInput) (contract.TodoDeleteByIDOutput, error) {
		return svc.DeleteByID(ctx, *in.ID)
	})

	return ns
}

func newUserNamespace(svc UserService) *rpc.Namespace {
	ns := rpc.NewNamespace(contract.NamespaceUser)

	rpc.HandleQuery(ns, contract.UserList, func(ctx context.Context, _ contract.NoInput) ([]contract.User, error) {
		return svc.List(ctx)
	})

	return ns
}
