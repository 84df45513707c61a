package mapper

import (
	"time"

	"github.com/AlibekovAA/todo-rpc/internal/common/constants"
	"github.com/AlibekovAA/todo-rpc/internal/rpc/contract"
	tododomain "github.com/AlibekovAA/todo-rpc/internal/todo/domain"
)

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(constants.TimestampLayout)
}

func TodoToWire(todo tododomain.Todo) contract.Todo {
	return contract.Todo{
		ID:        todo.ID,
		Text:      todo.Text,
		CreatedAt: FormatTimestamp(todo.CreatedAt),
		UpdatedAt: FormatTimestamp(todo.UpdatedAt),
	}
}

// TodosToWire never returns nil, so an empty store encodes as [].
func TodosToWire(todos []tododomain.Todo) []contract.Todo {
	out := make([]contract.Todo, 0, len(todos))
	for _, t := range todos {
		out = append(out, TodoToWire(t))
	}
	return out
}

func DeleteResultToWire(res tododomain.DeleteResult) contract.TodoDeleteByIDOutput {
	out := contract.TodoDeleteByIDOutput{RowsAffected: res.RowsAffected}
	if res.Deleted != nil {
		wire := TodoToWire(*res.Deleted)
		out.Todo = &wire
	}
	return out
}
