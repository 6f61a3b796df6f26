package devserver_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/laptopstore/internal/apperror"
	"github.com/idilsaglam/laptopstore/internal/client"
	"github.com/idilsaglam/laptopstore/internal/devserver"
	"github.com/idilsaglam/laptopstore/internal/logging"
	"github.com/idilsaglam/laptopstore/internal/model"
	"github.com/idilsaglam/laptopstore/internal/store/jsonstore"
)

func seed() []model.Laptop {
	return []model.Laptop{
		{ID: 1, Name: "ProBook", Price: 900, Brand: "HP", Storage: "512GB", RAM: "16GB", Processor: "i5"},
		{ID: 2, Name: "Inspiron", Price: 600, Brand: "Dell", Storage: "256GB", RAM: "8GB", Processor: "i3"},
	}
}

func setup(t *testing.T, store *devserver.Store) *client.Client {
	t.Helper()
	srv := httptest.NewServer(devserver.NewRouter(store, logging.Discard()))
	t.Cleanup(srv.Close)
	return client.New(srv.URL + "/laptopstore")
}

func TestCRUDRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := setup(t, devserver.NewStore(seed()))

	all, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	created, err := c.Create(ctx, model.Laptop{Name: "ThinkPad", Price: 1200, Brand: "Lenovo", Storage: "1TB", RAM: "32GB", Processor: "Ryzen 7"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)

	got, err := c.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	got.Price = 1100
	updated, err := c.Update(ctx, 3, got)
	require.NoError(t, err)
	assert.Equal(t, 1100.0, updated.Price)

	require.NoError(t, c.Delete(ctx, 2))
	all, err = c.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(1), all[0].ID)
	assert.Equal(t, int64(3), all[1].ID)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	c := setup(t, devserver.NewStore(seed()))

	byName, err := c.SearchByName(ctx, "pro")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "ProBook", byName[0].Name)

	byBrand, err := c.SearchByBrand(ctx, "DELL")
	require.NoError(t, err)
	require.Len(t, byBrand, 1)
	assert.Equal(t, int64(2), byBrand[0].ID)

	byPrice, err := c.SearchByPrice(ctx, 700)
	require.NoError(t, err)
	require.Len(t, byPrice, 1)
	assert.Equal(t, int64(2), byPrice[0].ID)

	none, err := c.SearchByName(ctx, "macbook")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestErrorsMapToStatus(t *testing.T) {
	ctx := context.Background()
	c := setup(t, devserver.NewStore(seed()))

	_, err := c.Get(ctx, 99)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	err = c.Delete(ctx, 99)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	_, err = c.Create(ctx, model.Laptop{Price: 10})
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	var se *client.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.Contains(t, se.Body, "Name is required.")
}

func TestBadIDIsValidationError(t *testing.T) {
	srv := httptest.NewServer(devserver.NewRouter(devserver.NewStore(nil), logging.Discard()))
	t.Cleanup(srv.Close)

	res, err := http.Get(srv.URL + "/laptopstore/laptops/abc")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "laptops.json")
	require.NoError(t, jsonstore.Save(path, seed()))

	store, err := devserver.OpenStore(path)
	require.NoError(t, err)
	c := setup(t, store)

	_, err = c.Create(context.Background(), model.Laptop{Name: "Swift", Price: 500, Brand: "Acer"})
	require.NoError(t, err)

	onDisk, err := jsonstore.Load(path)
	require.NoError(t, err)
	require.Len(t, onDisk, 3)
	assert.Equal(t, "Swift", onDisk[2].Name)
}

func TestNewStoreAssignsMissingIDs(t *testing.T) {
	s := devserver.NewStore([]model.Laptop{{Name: "a", Brand: "b"}, {ID: 10, Name: "c", Brand: "d"}})
	got := s.List()
	require.Len(t, got, 2)
	assert.Equal(t, int64(10), got[0].ID)
	assert.Equal(t, "c", got[0].Name)
	assert.Equal(t, int64(11), got[1].ID)
	assert.Equal(t, "a", got[1].Name)

	l, err := s.Create(model.Laptop{Name: "e", Brand: "f"})
	require.NoError(t, err)
	assert.Equal(t, int64(12), l.ID)
}

func TestFailedWriteLeavesStoreUnchanged(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.Mkdir(dir, 0o755))
	path := filepath.Join(dir, "laptops.json")
	require.NoError(t, jsonstore.Save(path, seed()))

	store, err := devserver.OpenStore(path)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(dir))

	_, err = store.Create(model.Laptop{Name: "Swift", Price: 500, Brand: "Acer"})
	require.Error(t, err)
	_, err = store.Update(1, model.Laptop{Name: "ProBook G2", Price: 950, Brand: "HP"})
	require.Error(t, err)
	require.Error(t, store.Delete(2))

	assert.Equal(t, seed(), store.List())

	// the failed create did not burn an id
	require.NoError(t, os.Mkdir(dir, 0o755))
	l, err := store.Create(model.Laptop{Name: "Swift", Price: 500, Brand: "Acer"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), l.ID)
}

func TestOpenStoreRejectsDuplicateIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "laptops.json")
	dup := append(seed(), model.Laptop{ID: 2, Name: "Latitude", Price: 700, Brand: "Dell"})
	require.NoError(t, jsonstore.Save(path, dup))

	_, err := devserver.OpenStore(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrConflict))
	assert.Contains(t, err.Error(), "id 2")
}
