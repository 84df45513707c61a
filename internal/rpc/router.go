package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	commonerrors "github.com/AlibekovAA/todo-rpc/internal/common/errors"
	"github.com/AlibekovAA/todo-rpc/internal/common/logger"
	"github.com/AlibekovAA/todo-rpc/internal/observability/metrics"
	"github.com/AlibekovAA/todo-rpc/internal/rpc/contract"
)

const unknownPathLabel = "unknown"

// Router dispatches calls by dotted path to the procedures of its namespaces.
// It is immutable after construction and safe for concurrent use.
type Router struct {
	procs map[string]*procedure
	log   *logger.Logger
}

// NewRouter composes namespaces into one router. Two namespaces with the same
// name cause a panic.
func NewRouter(log *logger.Logger, namespaces ...*Namespace) *Router {
	r := &Router{
		procs: make(map[string]*procedure),
		log:   log,
	}

	seen := make(map[string]struct{}, len(namespaces))
	for _, ns := range namespaces {
		if _, dup := seen[ns.name]; dup {
			panic(fmt.Sprintf("rpc: duplicate namespace %q", ns.name))
		}
		seen[ns.name] = struct{}{}

		for _, p := range ns.procs {
			r.procs[p.desc.Path] = p
		}
	}

	return r
}

func (r *Router) Lookup(path string) (contract.Descriptor, bool) {
	p, ok := r.procs[path]
	if !ok {
		return contract.Descriptor{}, false
	}
	return p.desc, true
}

// Procedures returns the registered descriptors ordered by path.
func (r *Router) Procedures() []contract.Descriptor {
	out := make([]contract.Descriptor, 0, len(r.procs))
	for _, p := range r.procs {
		out = append(out, p.desc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Verify checks that the router implements exactly the given procedures.
func (r *Router) Verify(want []contract.Descriptor) error {
	var errs []error
	expected := make(map[string]struct{}, len(want))

	for _, d := range want {
		expected[d.Path] = struct{}{}
		got, ok := r.Lookup(d.Path)
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("procedure %s is not implemented", d.Path))
		case got.Kind != d.Kind:
			errs = append(errs, fmt.Errorf("procedure %s is a %s, want %s", d.Path, got.Kind, d.Kind))
		}
	}
	for _, d := range r.Procedures() {
		if _, ok := expected[d.Path]; !ok {
			errs = append(errs, fmt.Errorf("procedure %s is not declared", d.Path))
		}
	}

	return errors.Join(errs...)
}

// Dispatch runs the procedure at path with a raw JSON input and returns its
// JSON encoded output. Handler errors are returned unchanged and left for the
// caller to log.
func (r *Router) Dispatch(ctx context.Context, kind contract.Kind, path string, input json.RawMessage) (json.RawMessage, error) {
	p, ok := r.procs[path]
	if !ok {
		metrics.RPCProcedureCallsTotal.WithLabelValues(unknownPathLabel, string(kind), "not_found").Inc()
		return nil, ErrProcedureNotFound.WithDetails(map[string]any{"path": path})
	}

	if kind != p.desc.Kind {
		metrics.RPCProcedureCallsTotal.WithLabelValues(path, string(kind), "method_not_supported").Inc()
		return nil, ErrMethodNotSupported.WithDetails(map[string]any{
			"path":     path,
			"expected": string(p.desc.Kind),
		})
	}

	start := time.Now()
	output, err := p.invoke(ctx, input)
	metrics.RPCProcedureDurationSeconds.WithLabelValues(path, string(kind)).Observe(time.Since(start).Seconds())

	if err != nil {
		outcome := "error"
		if errors.Is(err, ErrValidation) {
			outcome = "validation_error"
			metrics.RPCValidationFailuresTotal.WithLabelValues(path).Inc()
		}
		metrics.RPCProcedureCallsTotal.WithLabelValues(path, string(kind), outcome).Inc()
		return nil, err
	}

	payload, err := json.Marshal(output)
	if err != nil {
		metrics.RPCProcedureCallsTotal.WithLabelValues(path, string(kind), "error").Inc()
		return nil, commonerrors.ErrMarshalError.WithCause(err)
	}

	metrics.RPCProcedureCallsTotal.WithLabelValues(path, string(kind), "ok").Inc()
	if r.log.ShouldLog(logger.DEBUG) {
		r.log.WithFields(ctx, logger.Fields{
			"procedure": path,
			"duration":  time.Since(start).String(),
		}).Debug("procedure completed")
	}

	return payload, nil
}
