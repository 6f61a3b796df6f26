package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/laptopstore/internal/apperror"
	"github.com/idilsaglam/laptopstore/internal/client"
	"github.com/idilsaglam/laptopstore/internal/model"
)

type captured struct {
	Method      string
	Path        string
	RawQuery    string
	ContentType string
	Body        string
}

// recorder answers every request with the configured status and body and keeps
// a copy of what it received.
type recorder struct {
	mu     sync.Mutex
	reqs   []captured
	status int
	body   string
}

func (r *recorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	b, _ := io.ReadAll(req.Body)
	r.mu.Lock()
	r.reqs = append(r.reqs, captured{
		Method:      req.Method,
		Path:        req.URL.Path,
		RawQuery:    req.URL.RawQuery,
		ContentType: req.Header.Get("Content-Type"),
		Body:        string(b),
	})
	status, body := r.status, r.body
	r.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func newClient(t *testing.T, rec *recorder) *client.Client {
	t.Helper()
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)
	return client.New(srv.URL + "/laptopstore")
}

func TestList(t *testing.T) {
	rec := &recorder{body: `[{"id":1,"name":"ProBook","price":900,"brand":"HP","storage":"512GB","ram":"16GB","processor":"i7"}]`}
	c := newClient(t, rec)

	got, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.Laptop{ID: 1, Name: "ProBook", Price: 900, Brand: "HP", Storage: "512GB", RAM: "16GB", Processor: "i7"}, got[0])

	require.Len(t, rec.reqs, 1)
	assert.Equal(t, http.MethodGet, rec.reqs[0].Method)
	assert.Equal(t, "/laptopstore/laptops", rec.reqs[0].Path)
	assert.Equal(t, "application/json", rec.reqs[0].ContentType)
}

func TestGet(t *testing.T) {
	rec := &recorder{body: `{"id":5,"name":"XPS","price":1500,"brand":"Dell"}`}
	c := newClient(t, rec)

	got, err := c.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ID)
	assert.Equal(t, "/laptopstore/laptops/5", rec.reqs[0].Path)
}

func TestCreateSendsBody(t *testing.T) {
	rec := &recorder{status: http.StatusCreated, body: `{"id":9,"name":"ThinkPad","price":1200.5,"brand":"Lenovo"}`}
	c := newClient(t, rec)

	in := model.Laptop{Name: "ThinkPad", Price: 1200.5, Brand: "Lenovo", Storage: "1TB", RAM: "32GB", Processor: "Ryzen 7"}
	got, err := c.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.ID)

	require.Len(t, rec.reqs, 1)
	assert.Equal(t, http.MethodPost, rec.reqs[0].Method)
	assert.Equal(t, "/laptopstore/laptops", rec.reqs[0].Path)

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(rec.reqs[0].Body), &sent))
	assert.Equal(t, float64(0), sent["id"])
	assert.Equal(t, 1200.5, sent["price"])
	assert.Equal(t, "Ryzen 7", sent["processor"])
}

func TestUpdate(t *testing.T) {
	rec := &recorder{body: `{"id":3,"name":"Swift","price":700,"brand":"Acer"}`}
	c := newClient(t, rec)

	_, err := c.Update(context.Background(), 3, model.Laptop{ID: 3, Name: "Swift", Price: 700, Brand: "Acer"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, rec.reqs[0].Method)
	assert.Equal(t, "/laptopstore/laptops/3", rec.reqs[0].Path)
}

func TestDeleteAcceptsEmptyBody(t *testing.T) {
	rec := &recorder{status: http.StatusNoContent}
	c := newClient(t, rec)

	require.NoError(t, c.Delete(context.Background(), 2))
	require.Len(t, rec.reqs, 1)
	assert.Equal(t, http.MethodDelete, rec.reqs[0].Method)
	assert.Equal(t, "/laptopstore/laptops/2", rec.reqs[0].Path)
}

func TestSearchSendsOneParameter(t *testing.T) {
	tests := []struct {
		name      string
		call      func(*client.Client) ([]model.Laptop, error)
		wantQuery string
	}{
		{"name", func(c *client.Client) ([]model.Laptop, error) {
			return c.SearchByName(context.Background(), "Pro Book")
		}, "name=Pro+Book"},
		{"price", func(c *client.Client) ([]model.Laptop, error) {
			return c.SearchByPrice(context.Background(), 899.99)
		}, "price=899.99"},
		{"brand", func(c *client.Client) ([]model.Laptop, error) {
			return c.SearchByBrand(context.Background(), "HP&Co")
		}, "brand=HP%26Co"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{body: `[]`}
			c := newClient(t, rec)

			got, err := tt.call(c)
			require.NoError(t, err)
			assert.Empty(t, got)
			require.Len(t, rec.reqs, 1)
			assert.Equal(t, "/laptopstore/laptops/search", rec.reqs[0].Path)
			assert.Equal(t, tt.wantQuery, rec.reqs[0].RawQuery)
		})
	}
}

func TestStatusError(t *testing.T) {
	rec := &recorder{status: http.StatusNotFound, body: `{"error":"not_found"}`}
	c := newClient(t, rec)

	_, err := c.Get(context.Background(), 42)
	require.Error(t, err)

	var se *client.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, http.MethodGet, se.Method)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.Contains(t, err.Error(), "404")
}

func TestServerErrorIsNotASentinel(t *testing.T) {
	rec := &recorder{status: http.StatusInternalServerError}
	c := newClient(t, rec)

	_, err := c.List(context.Background())
	var se *client.StatusError
	require.True(t, errors.As(err, &se))
	assert.False(t, errors.Is(err, apperror.ErrNotFound))
	assert.False(t, errors.Is(err, apperror.ErrValidation))
}

func TestTransportErrorPropagates(t *testing.T) {
	// Grab a free port and close it so nothing is listening.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	c := client.New("http://" + addr + "/laptopstore")
	_, err = c.List(context.Background())
	require.Error(t, err)

	var se *client.StatusError
	assert.False(t, errors.As(err, &se))
}

func TestCancelledContext(t *testing.T) {
	rec := &recorder{body: `[]`}
	c := newClient(t, rec)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.List(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestDefaultBaseURL(t *testing.T) {
	assert.Equal(t, client.DefaultBaseURL, client.New("").BaseURL())
	assert.Equal(t, "http://h/x", client.New("http://h/x/").BaseURL())
}
