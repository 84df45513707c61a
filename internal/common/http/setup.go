package http

import (
	"net/http"

	"github.com/AlibekovAA/todo-rpc/internal/common/constants"
	"github.com/AlibekovAA/todo-rpc/internal/common/httpmetrics"
	"github.com/AlibekovAA/todo-rpc/internal/common/logger"
)

// BuildBaseHandler wraps handler with the middleware chain shared by both
// binaries. An empty csp selects the default policy. routes bounds the path
// label of every HTTP metric; nil uses the generic path normaliser.
func BuildBaseHandler(appName string, log *logger.Logger, csp string, routes httpmetrics.Normalizer, handler http.Handler) http.Handler {
	metrics := httpmetrics.New(appName, routes)
	recovery := RecoveryMiddleware(log)
	traceID := TraceIDMiddleware
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)
	securityHeaders := SecurityHeadersMiddleware
	contentPolicy := ContentSecurityPolicyMiddleware(csp)

	return securityHeaders(contentPolicy(traceID(recovery(maxRequestSize(metrics.Wrap(handler))))))
}
