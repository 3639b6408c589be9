package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthHandler(t *testing.T) {
	ok := func(context.Context) error { return nil }

	t.Run("all checks pass", func(t *testing.T) {
		rr := httptest.NewRecorder()
		HealthHandler(map[string]Check{"db": ok, "redis": ok})(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":"healthy","checks":{"db":"ok","redis":"ok"}}`, rr.Body.String())
	})

	t.Run("one failing check is unavailable", func(t *testing.T) {
		down := func(context.Context) error { return errors.New("connection refused") }
		rr := httptest.NewRecorder()
		HealthHandler(map[string]Check{"db": ok, "redis": down})(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.JSONEq(t, `{"status":"unhealthy","checks":{"db":"ok","redis":"connection refused"}}`, rr.Body.String())
	})
}
