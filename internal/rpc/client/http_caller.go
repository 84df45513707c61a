package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/AlibekovAA/todo-rpc/internal/common/constants"
	commonhttp "github.com/AlibekovAA/todo-rpc/internal/common/http"
	"github.com/AlibekovAA/todo-rpc/internal/rpc/contract"
)

const maxResponseSize = 10 << 20

// HTTPCaller sends procedure calls to a remote transport adapter. Failed
// calls are never retried.
type HTTPCaller struct {
	baseURL  string
	endpoint string
	http     *http.Client
}

func NewHTTPCaller(baseURL, endpoint string, httpClient *http.Client) *HTTPCaller {
	if endpoint == "" {
		endpoint = constants.DefaultRPCEndpoint
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.DefaultWebRequestTimeout}
	}
	return &HTTPCaller{
		baseURL:  strings.TrimRight(baseURL, "/"),
		endpoint: "/" + strings.Trim(endpoint, "/"),
		http:     httpClient,
	}
}

func (c *HTTPCaller) Call(ctx context.Context, kind contract.Kind, path string, input json.RawMessage) (json.RawMessage, error) {
	req, err := c.newRequest(ctx, kind, path, input)
	if err != nil {
		return nil, err
	}

	if traceID := commonhttp.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set(commonhttp.TraceIDHeader, traceID)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp, body)
	}
	return body, nil
}

func (c *HTTPCaller) newRequest(ctx context.Context, kind contract.Kind, path string, input json.RawMessage) (*http.Request, error) {
	target := c.baseURL + c.endpoint + "/" + url.PathEscape(path)

	switch kind {
	case contract.KindQuery:
		if len(input) > 0 {
			target += "?" + url.Values{constants.DefaultRPCInputParam: {string(input)}}.Encode()
		}
		return http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	case contract.KindMutation:
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(input))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	default:
		return nil, fmt.Errorf("unknown procedure kind %q", kind)
	}
}

func decodeError(resp *http.Response, body []byte) error {
	var env commonhttp.ErrorEnvelope
	if err := json.Unmarshal(body, &env); err != nil || env.Code == "" {
		return &Error{
			Status:  resp.StatusCode,
			Code:    commonhttp.CodeUnknown,
			Message: strings.TrimSpace(string(body)),
			TraceID: resp.Header.Get(commonhttp.TraceIDHeader),
		}
	}

	traceID := env.TraceID
	if traceID == "" {
		traceID = resp.Header.Get(commonhttp.TraceIDHeader)
	}
	return &Error{
		Status:  resp.StatusCode,
		Code:    env.Code,
		Message: env.Message,
		Details: env.Details,
		TraceID: traceID,
	}
}

// Ping checks the remote service's /health endpoint.
func (c *HTTPCaller) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		return decodeError(resp, body)
	}
	return nil
}
