package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/todo-rpc/internal/api"
	commonhttp "github.com/AlibekovAA/todo-rpc/internal/common/http"
	"github.com/AlibekovAA/todo-rpc/internal/common/logger"
	"github.com/AlibekovAA/todo-rpc/internal/observability/metrics"
	"github.com/AlibekovAA/todo-rpc/internal/rpc"
	"github.com/AlibekovAA/todo-rpc/internal/rpc/client"
	"github.com/AlibekovAA/todo-rpc/internal/rpc/contract"
	rpchttp "github.com/AlibekovAA/todo-rpc/internal/rpc/http"
	tododomain "github.com/AlibekovAA/todo-rpc/internal/todo/domain"
	todorepo "github.com/AlibekovAA/todo-rpc/internal/todo/repository"
	todoservice "github.com/AlibekovAA/todo-rpc/internal/todo/service"
	userrepo "github.com/AlibekovAA/todo-rpc/internal/user/repository"
	userservice "github.com/AlibekovAA/todo-rpc/internal/user/service"
)

func newServer(t *testing.T, todos ...tododomain.Todo) *httptest.Server {
	t.Helper()
	return newServerFor(t, "api", todos...)
}

func newServerFor(t *testing.T, service string, todos ...tododomain.Todo) *httptest.Server {
	t.Helper()
	log := logger.NewWithWriter(&bytes.Buffer{}, "test", "info")

	router := api.NewAppRouter(
		todoservice.NewTodoService(todorepo.NewMemoryTodoRepository(todos...), log),
		userservice.NewUserService(userrepo.NewMemoryUserRepository(), log),
		log,
	)
	handler := rpchttp.NewHandler(router, log, rpchttp.Options{
		Endpoint:       "/api/rpc",
		RequestTimeout: time.Second,
	})

	srv := httptest.NewServer(commonhttp.BuildBaseHandler(service, log, "", rpchttp.Routes(router, "/api/rpc"), handler))
	t.Cleanup(srv.Close)
	return srv
}

func decodeEnvelope(t *testing.T, resp *http.Response) commonhttp.ErrorEnvelope {
	t.Helper()
	var env commonhttp.ErrorEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func TestEndToEnd_DeleteThenList(t *testing.T) {
	srv := newServer(t, tododomain.Todo{ID: "t1"}, tododomain.Todo{ID: "t2"})
	c := client.New(client.NewHTTPCaller(srv.URL, "/api/rpc", srv.Client()))
	ctx := context.Background()

	out, err := c.TodoDeleteByID(ctx, "t1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, out.RowsAffected)

	todos, err := c.TodoList(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "t2", todos[0].ID)
}

func TestQueryOverGET(t *testing.T) {
	srv := newServer(t, tododomain.Todo{ID: "t1"})

	resp, err := srv.Client().Get(srv.URL + "/api/rpc/todo.list")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var items []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, "t1", items[0]["id"])
}

func TestMutationOverPOST_ValidationEnvelope(t *testing.T) {
	srv := newServer(t, tododomain.Todo{ID: "t1"})

	resp, err := srv.Client().Post(srv.URL+"/api/rpc/todo.deleteById", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	assert.Equal(t, "BAD_REQUEST", env.Code)
	assert.Equal(t, "required", env.Details["id"])
	assert.NotEmpty(t, env.TraceID)
}

func TestMutationOverGET_Rejected(t *testing.T) {
	srv := newServer(t, tododomain.Todo{ID: "t1"})

	input := url.Values{"input": {`{"id":"t1"}`}}.Encode()
	resp, err := srv.Client().Get(srv.URL + "/api/rpc/todo.deleteById?" + input)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "METHOD_NOT_SUPPORTED", decodeEnvelope(t, resp).Code)
}

func TestUnknownProcedure_NotFound(t *testing.T) {
	srv := newServer(t)

	resp, err := srv.Client().Get(srv.URL + "/api/rpc/todo.archive")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeEnvelope(t, resp).Code)
}

func TestHTTPClient_ErrorMatchesDomainError(t *testing.T) {
	srv := newServer(t)
	caller := client.NewHTTPCaller(srv.URL, "/api/rpc", srv.Client())

	_, err := caller.Call(context.Background(), "query", "nope.nothing", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, rpc.ErrProcedureNotFound)

	var rpcErr *client.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, http.StatusNotFound, rpcErr.Status)
}

func TestMetrics_UnknownProceduresShareOneLabel(t *testing.T) {
	const service = "api-route-labels"
	srv := newServerFor(t, service)

	for i := 0; i < 50; i++ {
		resp, err := srv.Client().Get(fmt.Sprintf("%s/api/rpc/junk%d", srv.URL, i))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	}
	resp, err := srv.Client().Get(srv.URL + "/api/rpc/todo.list")
	require.NoError(t, err)
	resp.Body.Close()

	assert.False(t, metrics.HTTPRequestsTotal.DeleteLabelValues(service, http.MethodGet, "/api/rpc/junk0"))
	assert.True(t, metrics.HTTPRequestsTotal.DeleteLabelValues(service, http.MethodGet, "/api/rpc/unknown"))
	assert.True(t, metrics.HTTPRequestsTotal.DeleteLabelValues(service, http.MethodGet, "/api/rpc/todo.list"))
	assert.False(t, metrics.HTTPErrorsTotal.DeleteLabelValues("404", "/api/rpc/junk0", http.MethodGet))
	assert.True(t, metrics.HTTPErrorsTotal.DeleteLabelValues("404", "/api/rpc/unknown", http.MethodGet))
}

func TestHandlerError_LoggedOnce(t *testing.T) {
	var logs bytes.Buffer
	log := logger.NewWithWriter(&logs, "test", "info")

	ns := rpc.NewNamespace(contract.NamespaceTodo)
	rpc.HandleQuery(ns, contract.TodoList, func(ctx context.Context, _ contract.NoInput) ([]contract.Todo, error) {
		return nil, errors.New("connection reset")
	})
	router := rpc.NewRouter(log, ns)
	handler := rpchttp.NewHandler(router, log, rpchttp.Options{Endpoint: "/api/rpc", RequestTimeout: time.Second})
	srv := httptest.NewServer(commonhttp.BuildBaseHandler("api", log, "", rpchttp.Routes(router, "/api/rpc"), handler))
	t.Cleanup(srv.Close)

	resp, err := srv.Client().Get(srv.URL + "/api/rpc/todo.list")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", env.Code)
	assert.NotContains(t, env.Message, "connection reset")
	assert.Equal(t, 1, countLines(logs.String(), "connection reset"))
}

func countLines(logs, substr string) int {
	n := 0
	for _, line := range strings.Split(logs, "\n") {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}
