package controllers

import (
	"net/http"

	"github.com/eurenemendes/ecofeira-backend/api/responses"
	"github.com/eurenemendes/ecofeira-backend/pkg/config"
	"github.com/eurenemendes/ecofeira-backend/pkg/db"
	"github.com/eurenemendes/ecofeira-backend/pkg/logger"
	"github.com/eurenemendes/ecofeira-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-EcoFeira-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the hard dependencies; redis is optional and reported
// but never fails readiness.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("X-EcoFeira-Env", cfg.App.Env)

		checks := map[string]string{}
		healthy := true

		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				checks["db"] = "down"
				healthy = false
				if logg != nil {
					logg.Error(ctx, "health.db", err)
				}
			} else {
				checks["db"] = "ok"
			}
		}

		if redisP != nil {
			if err := redisP.Ping(ctx); err != nil {
				checks["redis"] = "down"
				if logg != nil {
					logg.Warn(ctx, "health.redis: "+err.Error())
				}
			} else {
				checks["redis"] = "ok"
			}
		}

		status := http.StatusOK
		checks["status"] = "ready"
		if !healthy {
			status = http.StatusServiceUnavailable
			checks["status"] = "degraded"
		}
		responses.WriteSuccessStatus(w, status, checks)
	}
}
