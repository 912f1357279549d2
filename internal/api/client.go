package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"seodash/internal/config"
	"seodash/internal/store"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

const RequestIDHeader = "X-Request-ID"

type Client struct {
	http *resty.Client
	log  *log.Logger
}

func New(cfg config.APIConfig, logger *log.Logger) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("base URL must be absolute, got: %s", cfg.BaseURL)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetLogger(logger)

	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}
	client.AddRetryCondition(retryCondition)
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if req.Header.Get(RequestIDHeader) == "" {
			req.SetHeader(RequestIDHeader, uuid.NewString())
		}
		return nil
	})

	return &Client{http: client, log: logger}, nil
}

// retryCondition retries reads on network errors, 5xx and 429. Writes are
// never retried here; the store leaves that decision to the caller.
func retryCondition(r *resty.Response, err error) bool {
	if r != nil && r.Request != nil && r.Request.Method != http.MethodGet {
		return false
	}
	if err != nil {
		return !errors.Is(err, context.Canceled)
	}
	if r == nil {
		return false
	}
	code := r.StatusCode()
	return code >= 500 || code == http.StatusTooManyRequests
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any) ([]byte, error) {
	req := c.http.R().SetContext(ctx)
	if params != nil {
		req.SetQueryParamsFromValues(params)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", store.ErrTransport, method, path, err)
	}

	c.log.Debug("api request completed", "method", method, "path", path, "status", resp.StatusCode())

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, decodeError(resp.StatusCode(), resp.Body())
	}
	return resp.Body(), nil
}

// decodeError maps a failed response to a ServerError when the body carries
// a message, and to a transport failure otherwise.
func decodeError(status int, body []byte) error {
	if gjson.ValidBytes(body) {
		root := gjson.ParseBytes(body)
		msg := firstString(root, "message", "error.message", "error", "detail")
		if msg != "" {
			return &store.ServerError{
				Status:  status,
				Code:    firstString(root, "code", "error.code"),
				Message: msg,
			}
		}
	}
	return fmt.Errorf("%w: unexpected status %d", store.ErrTransport, status)
}

func firstString(root gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := root.Get(p); v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return ""
}

func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/health", nil, nil)
	return err
}

func (c *Client) Resource(path string) *Resource {
	return &Resource{client: c, path: "/" + strings.Trim(path, "/")}
}

// Resource is the REST collection at path. It implements store.Transport.
type Resource struct {
	client *Client
	path   string
}

var _ store.Transport = (*Resource)(nil)

func (r *Resource) Path() string {
	return r.path
}

func (r *Resource) item(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

func (r *Resource) List(ctx context.Context, params url.Values) ([]byte, error) {
	return r.client.do(ctx, http.MethodGet, r.path, params, nil)
}

func (r *Resource) Get(ctx context.Context, id string) ([]byte, error) {
	return r.client.do(ctx, http.MethodGet, r.item(id), nil, nil)
}

func (r *Resource) Create(ctx context.Context, payload any) ([]byte, error) {
	return r.client.do(ctx, http.MethodPost, r.path, nil, payload)
}

func (r *Resource) Update(ctx context.Context, id string, patch any) ([]byte, error) {
	return r.client.do(ctx, http.MethodPatch, r.item(id), nil, patch)
}

func (r *Resource) Remove(ctx context.Context, id string) error {
	_, err := r.client.do(ctx, http.MethodDelete, r.item(id), nil, nil)
	return err
}
