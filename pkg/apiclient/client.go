// Package apiclient talks to the phlebotomy HTTP API on behalf of a signed-in user.
//
// Every response is expected in the envelope {status, message, code, data}. Failures
// are reported as *errors.Error values with one of four shapes: transport failure or
// timeout (retryable), authorization rejected (HTTP 401 or body code 401), business
// rejection (the upstream message verbatim, else the caller's fallback), or a
// malformed response.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/phlebotomy-portal/pkg/errors"
	"github.com/noah-isme/phlebotomy-portal/pkg/middleware/requestid"
)

const (
	maxResponseBytes   = 8 << 20
	unauthorizedCode   = http.StatusUnauthorized
	defaultFallbackMsg = "Something went wrong. Please try again."
	sessionExpiredMsg  = "Your session has expired. Please sign in again."
)

// Observer receives one observation per upstream call.
type Observer interface {
	ObserveUpstreamRequest(endpoint, method string, status int, duration time.Duration)
}

// Config configures a Client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
	Observer   Observer
}

// Client issues authenticated requests against the upstream API.
type Client struct {
	baseURL  string
	http     *http.Client
	logger   *zap.Logger
	observer Observer
}

// Request describes a JSON call.
type Request struct {
	Method   string
	Path     string
	Endpoint string
	Query    url.Values
	Body     interface{}
	Token    string
	Fallback string
}

// File is one multipart file part.
type File struct {
	Field       string
	Filename    string
	ContentType string
	Content     io.Reader
}

// MultipartRequest describes a multipart/form-data POST.
type MultipartRequest struct {
	Path     string
	Endpoint string
	Token    string
	Fields   map[string]string
	Files    []File
	Fallback string
}

// Result carries response metadata for successful calls.
type Result struct {
	StatusCode int
	Message    string
}

type envelope struct {
	Status  *bool           `json:"status"`
	Message string          `json:"message"`
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
}

// New constructs a Client.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     httpClient,
		logger:   logger,
		observer: cfg.Observer,
	}
}

// Do sends a JSON request and decodes the envelope data into out when out is non-nil.
func (c *Client) Do(ctx context.Context, req Request, out interface{}) (Result, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return Result{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode request body")
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+req.Path, body)
	if err != nil {
		return Result{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build upstream request")
	}
	if len(req.Query) > 0 {
		httpReq.URL.RawQuery = req.Query.Encode()
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	return c.send(httpReq, req.Token, endpointLabel(req.Endpoint, req.Path), req.Fallback, out)
}

// DoMultipart sends a multipart/form-data POST built from fields and files.
func (c *Client) DoMultipart(ctx context.Context, req MultipartRequest, out interface{}) (Result, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	keys := make([]string, 0, len(req.Fields))
	for k := range req.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := writer.WriteField(k, req.Fields[k]); err != nil {
			return Result{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode form field")
		}
	}
	for _, f := range req.Files {
		part, err := writer.CreatePart(filePartHeader(f))
		if err != nil {
			return Result{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode form file")
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return Result{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "copy form file")
		}
	}
	if err := writer.Close(); err != nil {
		return Result{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "finalise form")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+req.Path, buf)
	if err != nil {
		return Result{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build upstream request")
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	return c.send(httpReq, req.Token, endpointLabel(req.Endpoint, req.Path), req.Fallback, out)
}

func (c *Client) send(httpReq *http.Request, token, endpoint, fallback string, out interface{}) (Result, error) {
	if fallback == "" {
		fallback = defaultFallbackMsg
	}
	httpReq.Header.Set("Accept", "application/json")
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	if reqID := requestid.FromContext(httpReq.Context()); reqID != "" {
		httpReq.Header.Set(requestid.Header, reqID)
	}

	log := c.logger.With(
		zap.String("endpoint", endpoint),
		zap.String("method", httpReq.Method),
		zap.String("request_id", requestid.FromContext(httpReq.Context())),
	)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.observe(endpoint, httpReq.Method, 0, time.Since(start))
		appErr := classifyTransport(err)
		log.Warn("upstream request failed", zap.String("code", appErr.Code), zap.Error(err))
		return Result{}, appErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	c.observe(endpoint, httpReq.Method, resp.StatusCode, time.Since(start))
	if err != nil {
		appErr := classifyTransport(err)
		log.Warn("upstream response read failed", zap.Int("status", resp.StatusCode), zap.Error(err))
		return Result{}, appErr
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)
	if len(bytes.TrimSpace(raw)) == 0 {
		decodeErr = nil
	}

	if resp.StatusCode == http.StatusUnauthorized || env.Code == unauthorizedCode {
		log.Info("upstream rejected credential", zap.Int("status", resp.StatusCode))
		return Result{}, appErrors.Clone(appErrors.ErrUnauthorized, sessionExpiredMsg)
	}

	if resp.StatusCode >= http.StatusInternalServerError && (decodeErr != nil || env.Message == "") {
		log.Warn("upstream unavailable", zap.Int("status", resp.StatusCode))
		unavailable := appErrors.Clone(appErrors.ErrUpstreamUnavailable, "")
		unavailable.Err = fmt.Errorf("upstream status %d", resp.StatusCode)
		return Result{}, unavailable
	}

	if resp.StatusCode >= http.StatusMultipleChoices || (env.Status != nil && !*env.Status) {
		message := strings.TrimSpace(env.Message)
		if message == "" {
			message = fallback
		}
		log.Info("upstream rejected request", zap.Int("status", resp.StatusCode), zap.String("message", message))
		return Result{}, appErrors.Clone(appErrors.ErrUpstreamRejected, message)
	}

	if decodeErr != nil {
		log.Warn("upstream response malformed", zap.Int("status", resp.StatusCode), zap.Error(decodeErr))
		return Result{}, appErrors.Wrap(decodeErr, appErrors.ErrUpstreamMalformed.Code, appErrors.ErrUpstreamMalformed.Status, fallback)
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			log.Warn("upstream payload malformed", zap.Error(err))
			return Result{}, appErrors.Wrap(err, appErrors.ErrUpstreamMalformed.Code, appErrors.ErrUpstreamMalformed.Status, fallback)
		}
	}

	log.Debug("upstream request completed", zap.Int("status", resp.StatusCode), zap.Duration("latency", time.Since(start)))
	return Result{StatusCode: resp.StatusCode, Message: env.Message}, nil
}

func (c *Client) observe(endpoint, method string, status int, d time.Duration) {
	if c.observer != nil {
		c.observer.ObserveUpstreamRequest(endpoint, method, status, d)
	}
}

func classifyTransport(err error) *appErrors.Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		clone := appErrors.Clone(appErrors.ErrUpstreamTimeout, "")
		clone.Err = err
		return clone
	}
	clone := appErrors.Clone(appErrors.ErrUpstreamUnavailable, "")
	clone.Err = err
	return clone
}

func endpointLabel(endpoint, path string) string {
	if endpoint != "" {
		return endpoint
	}
	return path
}

func filePartHeader(f File) map[string][]string {
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return map[string][]string{
		"Content-Disposition": {fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.Filename)},
		"Content-Type":        {contentType},
	}
}
