package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/verdantloop/verdantloop-backend/api/responses"
	"github.com/verdantloop/verdantloop-backend/pkg/config"
	pkgerrors "github.com/verdantloop/verdantloop-backend/pkg/errors"
	"github.com/verdantloop/verdantloop-backend/pkg/logger"
)

// Pinger is anything that can confirm a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, "live", map[string]string{"env": cfg.App.Env})
	}
}

// HealthReady verifies the database is reachable. Redis is reported but not
// required; sessions degrade to cookie-only when it is down.
func HealthReady(cfg *config.Config, logg *logger.Logger, database Pinger, cache Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{"database": "ok", "cache": "ok"}

		if database != nil {
			if err := database.Ping(ctx); err != nil {
				checks["database"] = "down"
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable").WithDetails(checks))
				return
			}
		}

		if cache != nil {
			if err := cache.Ping(ctx); err != nil {
				checks["cache"] = "down"
			}
		}

		responses.WriteSuccess(w, "ready", checks)
	}
}
