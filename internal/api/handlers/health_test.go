package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hugh/nextsaas/internal/api/handlers"
	"github.com/hugh/nextsaas/internal/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestHealthHandler(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	h := handlers.NewHealthHandler(db, client)

	t.Run("health", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.Health(rr, httptest.NewRequest("GET", "/health", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("ready", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.Ready(rr, httptest.NewRequest("GET", "/ready", nil))

		var resp handlers.HealthResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "healthy", resp.Services["database"])
		assert.Equal(t, "healthy", resp.Services["redis"])
	})

	t.Run("redis down", func(t *testing.T) {
		mr.Close()

		rr := httptest.NewRecorder()
		h.Ready(rr, httptest.NewRequest("GET", "/ready", nil))

		var resp handlers.HealthResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Equal(t, "unhealthy", resp.Services["redis"])
	})
}
