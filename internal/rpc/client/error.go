package client

import (
	"fmt"

	commonerrors "github.com/AlibekovAA/todo-rpc/internal/common/errors"
)

// Error is a failure reported by the remote service in an error envelope.
type Error struct {
	Status  int
	Code    string
	Message string
	Details map[string]any
	TraceID string
}

func (e *Error) Error() string {
	if e.TraceID != "" {
		return fmt.Sprintf("rpc %d %s: %s (trace %s)", e.Status, e.Code, e.Message, e.TraceID)
	}
	return fmt.Sprintf("rpc %d %s: %s", e.Status, e.Code, e.Message)
}

// Is matches domain errors by code, so errors.Is(err, rpc.ErrValidation)
// holds for remote and in-process calls alike.
func (e *Error) Is(target error) bool {
	if de, ok := target.(commonerrors.DomainError); ok {
		return de.Code() == e.Code
	}
	return false
}
