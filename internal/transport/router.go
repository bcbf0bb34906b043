// Package transport assembles the HTTP surface: route tree, middleware chain,
// and the operational endpoints. Business logic stays in the handler and
// service packages.
package transport

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cardhandler "cardledger/internal/card/handler"
	"cardledger/internal/holder"
	"cardledger/internal/platform/middleware"
)

// HealthChecker reports readiness of a backing dependency.
type HealthChecker func(ctx context.Context) error

// Deps collects everything the router mounts.
type Deps struct {
	Cards         *cardhandler.Handler
	Authenticator *middleware.Authenticator
	// Health checks run on /healthz; nil entries are skipped.
	Health []HealthChecker
}

// NewRouter builds the full route tree. Holder routes require a valid token;
// admin routes additionally require the ADMIN role claim.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestMeta)

	r.Get("/healthz", handleHealth(deps.Health))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(deps.Authenticator.Require)
		deps.Cards.RegisterHolderRoutes(r)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(deps.Authenticator.Require)
		r.Use(middleware.RequireRole(holder.RoleAdmin))
		deps.Cards.RegisterAdminRoutes(r)
	})

	return r
}

func handleHealth(checks []HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if check == nil {
				continue
			}
			if err := check(r.Context()); err != nil {
				http.Error(w, "unhealthy: "+err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
