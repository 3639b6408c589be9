package httpserver

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"intake/pkg/platform/httputil"
)

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

const healthTimeout = 5 * time.Second

// HealthHandler runs every check concurrently and answers 503 when any fails.
func HealthHandler(checks map[string]Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		var (
			mu      sync.Mutex
			results = make(map[string]string, len(checks))
			healthy = true
		)
		var g errgroup.Group
		for name, check := range checks {
			g.Go(func() error {
				status := "ok"
				if err := check(ctx); err != nil {
					status = err.Error()
				}
				mu.Lock()
				defer mu.Unlock()
				results[name] = status
				if status != "ok" {
					healthy = false
				}
				return nil
			})
		}
		_ = g.Wait()

		if !healthy {
			httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unhealthy", "checks": results})
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{"status": "healthy", "checks": results})
	}
}
