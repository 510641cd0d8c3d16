package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beanboard/menu-service/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func get(r http.Handler, path, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = remote
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware_AllowsUnderLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(10, 2))
	r.GET("/ok", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	before := testutil.ToFloat64(metrics.RateLimitAllowed.WithLabelValues("memory"))

	require.Equal(t, http.StatusOK, get(r, "/ok", "10.0.0.1:1234").Code)
	require.Equal(t, http.StatusOK, get(r, "/ok", "10.0.0.1:1234").Code)

	after := testutil.ToFloat64(metrics.RateLimitAllowed.WithLabelValues("memory"))
	require.Equal(t, 2.0, after-before)
}

func TestRateLimitMiddleware_BlocksWhenExceeded(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2, 1))
	r.GET("/limited", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	require.Equal(t, http.StatusOK, get(r, "/limited", "10.0.0.2:1234").Code)

	w := get(r, "/limited", "10.0.0.2:1234")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "1", w.Header().Get("Retry-After"))

	// one token refills after 0.5s at 2 rps
	time.Sleep(600 * time.Millisecond)
	require.Equal(t, http.StatusOK, get(r, "/limited", "10.0.0.2:1234").Code)
}

func TestRateLimitMiddleware_KeysByClientIP(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(0.5, 1))
	r.GET("/u", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	require.Equal(t, http.StatusOK, get(r, "/u", "10.0.0.3:1234").Code)
	require.Equal(t, http.StatusTooManyRequests, get(r, "/u", "10.0.0.3:1234").Code)
	// another client has its own bucket
	require.Equal(t, http.StatusOK, get(r, "/u", "10.0.0.4:1234").Code)
}
