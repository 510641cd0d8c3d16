package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/beanboard/menu-service/internal/menu"
	"github.com/beanboard/menu-service/internal/menu/handler"
	"github.com/beanboard/menu-service/internal/menu/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newAPI(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	g := gin.New()
	handler.RegisterMenuRoutes(g, service.NewMemoryService())
	srv := httptest.NewServer(g)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL)
	require.NoError(t, err)
	return c
}

func TestClient_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newAPI(t)

	items, err := c.List(ctx)
	require.NoError(t, err)
	require.Empty(t, items)
	require.NotNil(t, items)

	created, err := c.Create(ctx, menu.MenuItem{Name: "Latte", Price: 65, Category: "Coffee", Available: true})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	require.NoError(t, c.Update(ctx, created.ID, menu.AvailabilityPatch(false)))

	items, err = c.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []menu.MenuItem{{ID: created.ID, Name: "Latte", Price: 65, Category: "Coffee", Available: false}}, items)

	require.NoError(t, c.Delete(ctx, created.ID))
	require.NoError(t, c.Delete(ctx, created.ID))

	items, err = c.List(ctx)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestClient_APIErrorCarriesMessage(t *testing.T) {
	c := newAPI(t)

	_, err := c.Create(context.Background(), menu.MenuItem{Name: "Latte", Price: 0, Category: "Coffee"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Contains(t, apiErr.Message, "menuPrice")

	err = c.Update(context.Background(), "missing", menu.AvailabilityPatch(true))
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestClient_PlainTextErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)
	_, err = c.List(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, "upstream exploded", apiErr.Message)
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url)
	require.NoError(t, err)
	_, err = c.List(context.Background())
	require.True(t, errors.Is(err, ErrNetwork))
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New("  ")
	require.Error(t, err)
}

func TestClient_KeepsBaseURLPathPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	handler.RegisterMenuRoutes(g.Group("/svc"), service.NewMemoryService())
	srv := httptest.NewServer(g)
	defer srv.Close()

	for _, base := range []string{srv.URL + "/svc", srv.URL + "/svc/"} {
		c, err := New(base)
		require.NoError(t, err)

		created, err := c.Create(context.Background(), menu.MenuItem{Name: "Latte", Price: 65, Category: "Coffee", Available: true})
		require.NoError(t, err, base)
		require.NoError(t, c.Update(context.Background(), created.ID, menu.AvailabilityPatch(false)), base)
		require.NoError(t, c.Delete(context.Background(), created.ID), base)

		items, err := c.List(context.Background())
		require.NoError(t, err, base)
		require.Empty(t, items)
	}
}
