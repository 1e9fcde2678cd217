package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MrSnakeDoc/apihub/internal/domain"
	"github.com/MrSnakeDoc/apihub/internal/logger"
	"github.com/MrSnakeDoc/apihub/internal/utils"
)

const (
	// MaxResponseSize caps how much of a reply body is read.
	MaxResponseSize = 10 * 1024 * 1024

	DefaultTimeout = 10 * time.Second
)

// Client talks to the remote Listing Store. Every call is bounded by the
// client timeout and by the caller's context. There are no retries.
type Client struct {
	base    *url.URL
	http    *http.Client
	timeout time.Duration
	logger  logger.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New returns a client for the store rooted at baseURL.
func New(baseURL string, log logger.Logger, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid store url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid store url %q: scheme must be http or https", baseURL)
	}
	if log == nil {
		log = logger.Nop()
	}

	c := &Client{
		base:    u,
		http:    &http.Client{},
		timeout: DefaultTimeout,
		logger:  log.Named("catalog"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the store root.
func (c *Client) BaseURL() string { return c.base.String() }

// GetCategories fetches every category. Records failing validation are
// logged and skipped; only an unreadable body is an error.
func (c *Client) GetCategories(ctx context.Context) ([]domain.Category, error) {
	var cats []domain.Category
	if err := c.getJSON(ctx, "get categories", "/categories", &cats); err != nil {
		return nil, err
	}
	return keepValid(c.logger, cats, domain.ValidateCategory), nil
}

// GetListings fetches every listing. Records failing validation are logged
// and skipped; only an unreadable body is an error.
func (c *Client) GetListings(ctx context.Context) ([]domain.Listing, error) {
	var ls []domain.Listing
	if err := c.getJSON(ctx, "get apis", "/apis", &ls); err != nil {
		return nil, err
	}
	return keepValid(c.logger, ls, domain.ValidateListing), nil
}

func keepValid[T any](log logger.Logger, records []T, validate func(T) error) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if err := validate(r); err != nil {
			log.Warn("skipping invalid record", logger.Error(err))
			continue
		}
		out = append(out, r)
	}
	return out
}

// GetListing fetches one listing by id. Empty and dot-segment ids are
// rejected before any request is made.
func (c *Client) GetListing(ctx context.Context, id string) (domain.Listing, error) {
	if id == "" || id == "." || id == ".." {
		return domain.Listing{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	var l domain.Listing
	if err := c.getJSON(ctx, "get api", "/apis/"+url.PathEscape(id), &l); err != nil {
		return domain.Listing{}, err
	}
	if err := domain.ValidateListing(l); err != nil {
		return domain.Listing{}, err
	}
	return l, nil
}

// GetDashboardMetrics fetches the aggregate counters.
func (c *Client) GetDashboardMetrics(ctx context.Context) (domain.Metrics, error) {
	var m domain.Metrics
	if err := c.getJSON(ctx, "get metrics", "/dashboard/metrics", &m); err != nil {
		return domain.Metrics{}, err
	}
	if err := domain.ValidateMetrics(m); err != nil {
		return domain.Metrics{}, err
	}
	return m, nil
}

// CreateListing posts a new listing. Only the status is checked.
func (c *Client) CreateListing(ctx context.Context, l domain.NewListing) error {
	body, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode listing: %w", err)
	}

	resp, err := c.do(ctx, "create api", http.MethodPost, "/apis", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer drain(resp.Body)

	c.logger.Info("listing created", logger.String("name", l.Name), logger.Int("status", resp.StatusCode))
	return nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, dst any) error {
	resp, err := c.do(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer drain(resp.Body)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return &TransportError{Op: op, URL: resp.Request.URL.String(), Err: err}
	}
	if len(raw) > MaxResponseSize {
		return &DecodeError{Op: op, URL: resp.Request.URL.String(), Err: errors.New("response too large")}
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return &DecodeError{Op: op, URL: resp.Request.URL.String(), Err: err}
	}
	return nil
}

// do sends one request and returns the response only for 2xx statuses.
// The caller owns the body.
func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader) (*http.Response, error) {
	target := c.base.JoinPath(path).String()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		cancel()
		return nil, &TransportError{Op: op, URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		cancel()
		return nil, &TransportError{Op: op, URL: target, Err: err}
	}

	c.logger.Debug("store request",
		logger.String("op", op),
		logger.String("url", target),
		logger.Int("status", resp.StatusCode),
		logger.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		drain(resp.Body)
		cancel()
		return nil, &StatusError{Op: op, URL: target, StatusCode: resp.StatusCode}
	}

	resp.Body = &utils.CancelOnClose{ReadCloser: resp.Body, Cancel: cancel}
	return resp, nil
}

func drain(rc io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, MaxResponseSize))
	utils.Close(rc)
}
