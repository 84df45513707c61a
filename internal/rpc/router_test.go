package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "github.com/AlibekovAA/todo-rpc/internal/common/errors"
	"github.com/AlibekovAA/todo-rpc/internal/common/logger"
	"github.com/AlibekovAA/todo-rpc/internal/rpc/contract"
)

type echoInput struct {
	Name string `json:"name" validate:"required"`
}

type echoOutput struct {
	Greeting string `json:"greeting"`
}

var (
	testEcho  = contract.NewMutation[echoInput, echoOutput]("test", "echo")
	testPing  = contract.NewQuery[contract.NoInput, string]("test", "ping")
	otherPing = contract.NewQuery[contract.NoInput, string]("other", "ping")
)

func testLogger() *logger.Logger {
	return logger.NewWithWriter(&bytes.Buffer{}, "test", "debug")
}

func newTestRouter(t *testing.T, echoCalls *int) *Router {
	t.Helper()
	ns := NewNamespace("test")
	HandleMutation(ns, testEcho, func(ctx context.Context, in echoInput) (echoOutput, error) {
		*echoCalls++
		return echoOutput{Greeting: "hello " + in.Name}, nil
	})
	HandleQuery(ns, testPing, func(ctx context.Context, _ contract.NoInput) (string, error) {
		return "pong", nil
	})
	return NewRouter(testLogger(), ns)
}

func TestDispatch_Success(t *testing.T) {
	calls := 0
	r := newTestRouter(t, &calls)

	out, err := r.Dispatch(context.Background(), contract.KindMutation, "test.echo", json.RawMessage(`{"name":"ada"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"greeting":"hello ada"}`, string(out))
	assert.Equal(t, 1, calls)
}

func TestDispatch_ValidationSkipsHandler(t *testing.T) {
	calls := 0
	r := newTestRouter(t, &calls)

	inputs := []string{``, `null`, `{}`, `{"name":""}`, `{"name":42}`, `not json`}
	for _, in := range inputs {
		_, err := r.Dispatch(context.Background(), contract.KindMutation, "test.echo", json.RawMessage(in))
		require.Error(t, err, "input %q", in)
		assert.True(t, errors.Is(err, ErrValidation), "input %q", in)

		de, ok := commonerrors.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, "BAD_REQUEST", de.Code())
	}
	assert.Zero(t, calls)
}

func TestDispatch_ValidationDetailsUseWireNames(t *testing.T) {
	calls := 0
	r := newTestRouter(t, &calls)

	_, err := r.Dispatch(context.Background(), contract.KindMutation, "test.echo", json.RawMessage(`{}`))
	de, ok := commonerrors.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "required", de.Details()["name"])
}

func TestDispatch_NoInputIgnoresPayload(t *testing.T) {
	calls := 0
	r := newTestRouter(t, &calls)

	out, err := r.Dispatch(context.Background(), contract.KindQuery, "test.ping", json.RawMessage(`{"anything":true}`))
	require.NoError(t, err)
	assert.JSONEq(t, `"pong"`, string(out))
}

func TestDispatch_UnknownPath(t *testing.T) {
	calls := 0
	r := newTestRouter(t, &calls)

	_, err := r.Dispatch(context.Background(), contract.KindQuery, "test.missing", nil)
	assert.ErrorIs(t, err, ErrProcedureNotFound)

	de, ok := commonerrors.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", de.Code())
}

func TestDispatch_KindMismatch(t *testing.T) {
	calls := 0
	r := newTestRouter(t, &calls)

	_, err := r.Dispatch(context.Background(), contract.KindQuery, "test.echo", json.RawMessage(`{"name":"ada"}`))
	assert.ErrorIs(t, err, ErrMethodNotSupported)
	assert.Zero(t, calls)
}

func TestDispatch_HandlerErrorUnchanged(t *testing.T) {
	storeErr := errors.New("connection reset")
	ns := NewNamespace("test")
	HandleQuery(ns, testPing, func(ctx context.Context, _ contract.NoInput) (string, error) {
		return "", storeErr
	})
	r := NewRouter(testLogger(), ns)

	_, err := r.Dispatch(context.Background(), contract.KindQuery, "test.ping", nil)
	assert.Same(t, storeErr, err)
}

func TestHandlerError_LoggedOnceByLocalCaller(t *testing.T) {
	var logs bytes.Buffer
	ns := NewNamespace("test")
	HandleQuery(ns, testPing, func(ctx context.Context, _ contract.NoInput) (string, error) {
		return "", errors.New("connection reset")
	})
	HandleMutation(ns, testEcho, func(ctx context.Context, in echoInput) (echoOutput, error) {
		return echoOutput{}, nil
	})
	r := NewRouter(logger.NewWithWriter(&logs, "test", "info"), ns)

	_, err := r.Dispatch(context.Background(), contract.KindQuery, "test.ping", nil)
	require.Error(t, err)
	assert.Empty(t, logs.String())

	caller := NewLocalCaller(r)
	_, err = caller.Call(context.Background(), contract.KindQuery, "test.ping", nil)
	require.Error(t, err)
	assert.Equal(t, 1, strings.Count(logs.String(), "connection reset"))

	logs.Reset()
	_, err = caller.Call(context.Background(), contract.KindMutation, "test.echo", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrValidation)
	_, err = caller.Call(context.Background(), contract.KindQuery, "test.missing", nil)
	assert.ErrorIs(t, err, ErrProcedureNotFound)
	assert.Empty(t, logs.String())
}

func TestBinding_Panics(t *testing.T) {
	ns := NewNamespace("test")
	handler := func(ctx context.Context, _ contract.NoInput) (string, error) { return "", nil }

	assert.Panics(t, func() { HandleQuery(ns, otherPing, handler) })
	assert.Panics(t, func() {
		HandleMutation(ns, contract.NewQuery[contract.NoInput, string]("test", "q"), handler)
	})

	HandleQuery(ns, testPing, handler)
	assert.Panics(t, func() { HandleQuery(ns, testPing, handler) })
}

func TestNewRouter_DuplicateNamespacePanics(t *testing.T) {
	assert.Panics(t, func() {
		NewRouter(testLogger(), NewNamespace("todo"), NewNamespace("todo"))
	})
}

func TestVerify(t *testing.T) {
	calls := 0
	r := newTestRouter(t, &calls)

	assert.NoError(t, r.Verify([]contract.Descriptor{testEcho.Descriptor(), testPing.Descriptor()}))
	assert.Error(t, r.Verify([]contract.Descriptor{testEcho.Descriptor()}))
	assert.Error(t, r.Verify([]contract.Descriptor{
		testEcho.Descriptor(),
		testPing.Descriptor(),
		otherPing.Descriptor(),
	}))
}

func TestInvoke_LocalCaller(t *testing.T) {
	calls := 0
	caller := NewLocalCaller(newTestRouter(t, &calls))

	out, err := Invoke(context.Background(), caller, testEcho, echoInput{Name: "grace"})
	require.NoError(t, err)
	assert.Equal(t, "hello grace", out.Greeting)

	pong, err := Invoke(context.Background(), caller, testPing, contract.NoInput{})
	require.NoError(t, err)
	assert.Equal(t, "pong", pong)

	_, err = Invoke(context.Background(), caller, testEcho, echoInput{})
	assert.ErrorIs(t, err, ErrValidation)
}
