package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	commonerrors "github.com/AlibekovAA/todo-rpc/internal/common/errors"
	"github.com/AlibekovAA/todo-rpc/internal/common/logger"
	"github.com/AlibekovAA/todo-rpc/internal/rpc/contract"
)

// Caller executes a procedure by path. Implementations exist for in-process
// dispatch and for the HTTP transport.
type Caller interface {
	Call(ctx context.Context, kind contract.Kind, path string, input json.RawMessage) (json.RawMessage, error)
}

type LocalCaller struct {
	router *Router
}

// NewLocalCaller calls procedures in the same process, skipping the network.
func NewLocalCaller(router *Router) *LocalCaller {
	return &LocalCaller{router: router}
}

// Call dispatches in process. Server-side failures are logged here, as the
// HTTP transport's error handler does for remote calls.
func (c *LocalCaller) Call(ctx context.Context, kind contract.Kind, path string, input json.RawMessage) (json.RawMessage, error) {
	out, err := c.router.Dispatch(ctx, kind, path, input)
	if err != nil && isServerError(err) {
		c.router.log.WithFields(ctx, logger.Fields{
			"procedure": path,
			"kind":      string(kind),
		}).Errorf("procedure failed: %v", err)
	}
	return out, err
}

func isServerError(err error) bool {
	de, ok := commonerrors.AsDomainError(err)
	return !ok || de.HTTPStatus() >= http.StatusInternalServerError
}

// Invoke calls p through c with typed input and output.
func Invoke[I, O any](ctx context.Context, c Caller, p contract.Procedure[I, O], input I) (O, error) {
	var out O

	var raw json.RawMessage
	if _, ok := any(input).(contract.NoInput); !ok {
		b, err := json.Marshal(input)
		if err != nil {
			return out, fmt.Errorf("encode %s input: %w", p.Path(), err)
		}
		raw = b
	}

	payload, err := c.Call(ctx, p.Kind(), p.Path(), raw)
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(payload, &out); err != nil {
		return out, fmt.Errorf("decode %s output: %w", p.Path(), err)
	}
	return out, nil
}
