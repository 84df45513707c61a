package http

import (
	"net/http"
	"strconv"

	commonerrors "github.com/AlibekovAA/todo-rpc/internal/common/errors"
	"github.com/AlibekovAA/todo-rpc/internal/common/httpmetrics"
	"github.com/AlibekovAA/todo-rpc/internal/common/logger"
	"github.com/AlibekovAA/todo-rpc/internal/observability/metrics"
)

type ErrorHandler struct {
	log *logger.Logger
}

func NewErrorHandler(log *logger.Logger) *ErrorHandler {
	return &ErrorHandler{log: log}
}

// HandleError writes err as an ErrorEnvelope. Errors that are not domain
// errors are reported as INTERNAL_SERVER_ERROR and their text stays in the log.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	if domainErr, ok := commonerrors.AsDomainError(err); ok {
		h.handleDomainError(w, r, domainErr)
		return
	}

	ctx := r.Context()
	traceID := TraceIDFromContext(ctx)

	h.log.WithFields(ctx, logger.Fields{
		"error":  err.Error(),
		"action": "unhandled_error",
		"path":   r.URL.Path,
	}).Errorf("unhandled error: %v", err)

	metrics.DomainErrorsTotal.WithLabelValues(
		string(commonerrors.CategoryInternal),
		commonerrors.ErrInternalError.Code(),
		strconv.Itoa(http.StatusInternalServerError),
	).Inc()
	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(http.StatusInternalServerError),
		httpmetrics.Route(r),
		r.Method,
	).Inc()

	WriteErrorEnvelope(
		w,
		http.StatusInternalServerError,
		commonerrors.ErrInternalError.Code(),
		commonerrors.ErrInternalError.Message(),
		nil,
		traceID,
	)
}

func (h *ErrorHandler) handleDomainError(w http.ResponseWriter, r *http.Request, err commonerrors.DomainError) {
	ctx := r.Context()
	traceID := TraceIDFromContext(ctx)

	domainErr := err
	if traceID != "" && err.TraceID() == "" {
		domainErr = err.WithTraceID(traceID)
	}

	status := domainErr.HTTPStatus()

	entry := h.log.WithFields(ctx, logger.Fields{
		"error_code": domainErr.Code(),
		"category":   string(domainErr.Category()),
		"status":     status,
		"action":     "domain_error",
	})
	if status >= http.StatusInternalServerError {
		entry.Errorf("domain error: %s", domainErr.Error())
	} else if h.log.ShouldLog(logger.DEBUG) {
		entry.Debugf("domain error: %s", domainErr.Error())
	}

	metrics.DomainErrorsTotal.WithLabelValues(
		string(domainErr.Category()),
		domainErr.Code(),
		strconv.Itoa(status),
	).Inc()

	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(status),
		httpmetrics.Route(r),
		r.Method,
	).Inc()

	WriteErrorEnvelope(w, status, domainErr.Code(), domainErr.Message(), domainErr.Details(), domainErr.TraceID())
}
