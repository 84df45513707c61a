package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AlibekovAA/todo-rpc/internal/common/constants"
	commonhttp "github.com/AlibekovAA/todo-rpc/internal/common/http"
	"github.com/AlibekovAA/todo-rpc/internal/common/httpmetrics"
	"github.com/AlibekovAA/todo-rpc/internal/common/logger"
	"github.com/AlibekovAA/todo-rpc/internal/rpc"
	"github.com/AlibekovAA/todo-rpc/internal/rpc/contract"
)

type Options struct {
	// Endpoint is the path prefix procedures are mounted under, e.g. "/api/rpc".
	Endpoint       string
	RequestTimeout time.Duration
	RateLimit      func(http.Handler) http.Handler
	HealthChecks   map[string]commonhttp.HealthCheck
	ExposeMetrics  bool
}

type Handler struct {
	router  *rpc.Router
	errors  *commonhttp.ErrorHandler
	timeout time.Duration
}

// NewHandler exposes router over HTTP. GET <endpoint>/<path> calls a query,
// with an optional JSON "input" query parameter. POST <endpoint>/<path> calls
// a mutation with the JSON body as input.
func NewHandler(router *rpc.Router, log *logger.Logger, opts Options) http.Handler {
	if opts.Endpoint == "" {
		opts.Endpoint = constants.DefaultRPCEndpoint
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = constants.DefaultAPIRequestTimeout
	}

	h := &Handler{
		router:  router,
		errors:  commonhttp.NewErrorHandler(log),
		timeout: opts.RequestTimeout,
	}

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(h.notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(h.methodNotAllowed)

	r.HandleFunc("/health", commonhttp.HealthHandler(log, opts.HealthChecks))
	if opts.ExposeMetrics {
		r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	}

	procedures := r.PathPrefix(opts.Endpoint).Subrouter()
	if opts.RateLimit != nil {
		procedures.Use(mux.MiddlewareFunc(opts.RateLimit))
	}
	procedures.HandleFunc("/{procedure}", h.serveProcedure).Methods(http.MethodGet, http.MethodPost)

	return r
}

// Routes bounds the metric path label to the paths NewHandler serves.
func Routes(router *rpc.Router, endpoint string) httpmetrics.Normalizer {
	if endpoint == "" {
		endpoint = constants.DefaultRPCEndpoint
	}
	descs := router.Procedures()
	paths := make([]string, 0, len(descs))
	for _, d := range descs {
		paths = append(paths, d.Path)
	}
	return httpmetrics.KnownRoutes([]string{"/health", "/metrics"}, endpoint, paths)
}

func (h *Handler) serveProcedure(w http.ResponseWriter, r *http.Request) {
	path := mux.Vars(r)["procedure"]

	var (
		kind  contract.Kind
		input json.RawMessage
	)
	switch r.Method {
	case http.MethodGet:
		kind = contract.KindQuery
		if raw := r.URL.Query().Get(constants.DefaultRPCInputParam); raw != "" {
			input = json.RawMessage(raw)
		}
	case http.MethodPost:
		kind = contract.KindMutation
		body, err := io.ReadAll(r.Body)
		if err != nil {
			if errors.Is(err, http.ErrBodyReadAfterClose) {
				commonhttp.WriteErrorEnvelope(w, http.StatusRequestEntityTooLarge, commonhttp.CodePayloadTooLarge, "request body too large", nil, commonhttp.TraceIDFromContext(r.Context()))
				return
			}
			h.errors.HandleError(w, r, err)
			return
		}
		input = body
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	output, err := h.router.Dispatch(ctx, kind, path, input)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteRawJSON(w, http.StatusOK, output)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.errors.HandleError(w, r, rpc.ErrProcedureNotFound.WithDetails(map[string]any{"path": r.URL.Path}))
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "GET, POST")
	commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, commonhttp.TraceIDFromContext(r.Context()))
}
