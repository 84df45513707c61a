package httpmetrics

import (
	"context"
	"net/http"
	"strings"
)

const UnknownRoute = "unknown"

// Normalizer maps a request path to a bounded metric label.
type Normalizer func(path string) string

type routeKey struct{}

func withRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, routeKey{}, route)
}

// Route returns the label chosen by the collector for r, or the generic
// normalisation when r did not pass through one.
func Route(r *http.Request) string {
	if route, ok := r.Context().Value(routeKey{}).(string); ok {
		return route
	}
	return NormalizePath(r.URL.Path)
}

// KnownRoutes labels only paths the service serves. static paths are kept as
// is. Under endpoint, registered procedures keep their name and anything else
// becomes <endpoint>/unknown. All other paths collapse to /unknown.
func KnownRoutes(static []string, endpoint string, procedures []string) Normalizer {
	paths := make(map[string]struct{}, len(static))
	for _, p := range static {
		paths[p] = struct{}{}
	}
	procs := make(map[string]struct{}, len(procedures))
	for _, p := range procedures {
		procs[p] = struct{}{}
	}
	prefix := strings.TrimRight(endpoint, "/") + "/"

	return func(path string) string {
		if _, ok := paths[path]; ok {
			return path
		}
		if endpoint != "" && strings.HasPrefix(path, prefix) {
			if _, ok := procs[strings.TrimPrefix(path, prefix)]; ok {
				return path
			}
			return prefix + UnknownRoute
		}
		return "/" + UnknownRoute
	}
}
