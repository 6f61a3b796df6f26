// Package client is a typed wrapper around the laptopstore REST API.
//
// Every call issues exactly one request and returns the decoded body. Transport
// errors are returned as-is; non-2xx responses come back as *StatusError.
// There are no retries and no client-side timeout: the caller's context decides.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/idilsaglam/laptopstore/internal/model"
)

const DefaultBaseURL = "http://127.0.0.1:8081/laptopstore"

type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the endpoint root every path is resolved against.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) List(ctx context.Context) ([]model.Laptop, error) {
	var out []model.Laptop
	if err := c.do(ctx, http.MethodGet, "/laptops", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id int64) (model.Laptop, error) {
	var out model.Laptop
	err := c.do(ctx, http.MethodGet, laptopPath(id), nil, &out)
	return out, err
}

func (c *Client) Create(ctx context.Context, l model.Laptop) (model.Laptop, error) {
	var out model.Laptop
	err := c.do(ctx, http.MethodPost, "/laptops", l, &out)
	return out, err
}

func (c *Client) Update(ctx context.Context, id int64, l model.Laptop) (model.Laptop, error) {
	var out model.Laptop
	err := c.do(ctx, http.MethodPut, laptopPath(id), l, &out)
	return out, err
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, laptopPath(id), nil, nil)
}

func (c *Client) SearchByName(ctx context.Context, name string) ([]model.Laptop, error) {
	return c.search(ctx, "name", name)
}

func (c *Client) SearchByPrice(ctx context.Context, price float64) ([]model.Laptop, error) {
	return c.search(ctx, "price", strconv.FormatFloat(price, 'f', -1, 64))
}

func (c *Client) SearchByBrand(ctx context.Context, brand string) ([]model.Laptop, error) {
	return c.search(ctx, "brand", brand)
}

// search sends a single filter dimension; the API has no combined query.
func (c *Client) search(ctx context.Context, key, value string) ([]model.Laptop, error) {
	q := url.Values{}
	q.Set(key, value)
	var out []model.Laptop
	if err := c.do(ctx, http.MethodGet, "/laptops/search?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func laptopPath(id int64) string {
	return "/laptops/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		body = bytes.NewReader(b)
	}

	u := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			slog.String("method", method),
			slog.String("url", u),
			slog.String("error", err.Error()),
		)
		return err
	}
	defer res.Body.Close()

	c.log.Debug("request completed",
		slog.String("method", method),
		slog.String("url", u),
		slog.Int("status", res.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &StatusError{Method: method, URL: u, StatusCode: res.StatusCode, Body: string(raw)}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	return nil
}
