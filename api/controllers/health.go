package controllers

import (
	"net/http"

	"github.com/cafev2/storefront-backend/api/responses"
	"github.com/cafev2/storefront-backend/pkg/config"
	pkgerrors "github.com/cafev2/storefront-backend/pkg/errors"
	"github.com/cafev2/storefront-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Cafe-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the backing stores before reporting ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, checks map[string]func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Cafe-Env", cfg.App.Env)

		for name, check := range checks {
			if check == nil {
				continue
			}
			if err := check(); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
