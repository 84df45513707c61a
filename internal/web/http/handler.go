package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/AlibekovAA/todo-rpc/internal/common/constants"
	commonhttp "github.com/AlibekovAA/todo-rpc/internal/common/http"
	"github.com/AlibekovAA/todo-rpc/internal/common/httpmetrics"
	"github.com/AlibekovAA/todo-rpc/internal/common/logger"
	"github.com/AlibekovAA/todo-rpc/internal/rpc/contract"
	"github.com/AlibekovAA/todo-rpc/internal/web/view"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(
	template.New("").
		Funcs(template.FuncMap{"deref": func(s *string) string { return *s }}).
		ParseFS(templateFS, "templates/*.html"),
)

// API is the subset of the RPC client used by the pages.
type API interface {
	view.TodoAPI
	view.UserAPI
}

type todosPage struct {
	Title         string
	Todos         []contract.Todo
	FetchError    string
	MutationError string
}

type usersPage struct {
	Title      string
	Raw        string
	FetchError string
}

type Handler struct {
	api     API
	log     *logger.Logger
	timeout time.Duration
}

func NewHandler(api API, log *logger.Logger, timeout time.Duration, healthChecks map[string]commonhttp.HealthCheck) http.Handler {
	if timeout <= 0 {
		timeout = constants.DefaultWebRequestTimeout
	}
	h := &Handler{api: api, log: log, timeout: timeout}
	withTimeout := commonhttp.WithTimeout(timeout)

	r := mux.NewRouter()
	r.HandleFunc("/health", commonhttp.HealthHandler(log, healthChecks))
	r.Handle("/", http.RedirectHandler("/todos", http.StatusFound)).Methods(http.MethodGet)
	r.HandleFunc("/todos", withTimeout(h.todos)).Methods(http.MethodGet)
	r.HandleFunc("/todos/delete", withTimeout(h.deleteTodo)).Methods(http.MethodPost)
	r.HandleFunc("/users", withTimeout(h.users)).Methods(http.MethodGet)
	return r
}

// Routes bounds the metric path label to the pages NewHandler serves.
func Routes() httpmetrics.Normalizer {
	return httpmetrics.KnownRoutes([]string{"/", "/health", "/todos", "/todos/delete", "/users"}, "", nil)
}

func (h *Handler) todos(w http.ResponseWriter, r *http.Request) {
	v := view.LoadTodoListView(r.Context(), h.api, view.TodoListOptions{})
	h.renderTodos(w, r, http.StatusOK, v)
}

func (h *Handler) deleteTodo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		commonhttp.WriteError(w, http.StatusBadRequest, commonhttp.CodeBadRequest, "invalid form")
		return
	}
	id := r.PostFormValue("id")

	v := view.NewTodoListView(h.api, nil, view.TodoListOptions{
		OnPhase: func(p view.DeletePhase) {
			if h.log.ShouldLog(logger.DEBUG) {
				h.log.WithFields(r.Context(), logger.Fields{"todo_id": id, "phase": string(p)}).Debug("delete flow")
			}
		},
	})
	if err := v.Delete(r.Context(), id); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{"todo_id": id}).Warnf("delete settled with error: %v", err)
	}

	h.renderTodos(w, r, http.StatusOK, v)
}

func (h *Handler) users(w http.ResponseWriter, r *http.Request) {
	v := view.LoadUserListView(r.Context(), h.api, nil)

	page := usersPage{Title: "Users", Raw: v.RawJSON()}
	if err := v.State().Err; err != nil {
		page.FetchError = err.Error()
	}
	h.render(w, r, http.StatusOK, "users.html", page)
}

func (h *Handler) renderTodos(w http.ResponseWriter, r *http.Request, status int, v *view.TodoListView) {
	state := v.State()
	page := todosPage{Title: "Todos", Todos: state.Data}
	if state.Err != nil {
		page.FetchError = state.Err.Error()
	}
	if err := v.MutationError(); err != nil {
		page.MutationError = err.Error()
	}
	h.render(w, r, status, "todos.html", page)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{"template": name}).Errorf("render failed: %v", err)
		commonhttp.WriteError(w, http.StatusInternalServerError, commonhttp.CodeInternal, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
