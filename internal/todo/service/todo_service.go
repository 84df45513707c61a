package service

import (
	"context"

	"github.com/AlibekovAA/todo-rpc/internal/common/logger"
	"github.com/AlibekovAA/todo-rpc/internal/rpc/contract"
	todorepo "github.com/AlibekovAA/todo-rpc/internal/todo/repository"
	"github.com/AlibekovAA/todo-rpc/internal/todo/service/mapper"
)

type TodoService struct {
	repo todorepo.TodoRepository
	log  *logger.Logger
}

func NewTodoService(repo todorepo.TodoRepository, log *logger.Logger) *TodoService {
	return &TodoService{
		repo: repo,
		log:  log,
	}
}

func (s *TodoService) List(ctx context.Context) ([]contract.Todo, error) {
	todos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return mapper.TodosToWire(todos), nil
}

// DeleteByID removes the todo with the given id. Deleting an id that does not
// exist succeeds with zero rows affected.
func (s *TodoService) DeleteByID(ctx context.Context, id string) (contract.TodoDeleteByIDOutput, error) {
	res, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return contract.TodoDeleteByIDOutput{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"todo_id":       id,
		"rows_affected": res.RowsAffected,
		"action":        "todo_delete",
	}).Info("todo delete settled")

	return mapper.DeleteResultToWire(res), nil
}
