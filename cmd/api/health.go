package main

import (
	"context"
	"net/http"
	"time"
)

// healthCheckHandler godoc
//
//	@Summary		Health check
//	@Description	Reports service status, environment, version and database reachability.
//	@Tags			ops
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Failure		503	{object}	error
//	@Security		BasicAuth
//	@Router			/health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	data := map[string]string{
		"status":   "ok",
		"env":      app.config.env,
		"version":  version,
		"database": "ok",
	}

	status := http.StatusOK
	if err := app.store.Ping(ctx); err != nil {
		app.logger.Errorw("database ping failed", "error", err)
		data["status"] = "degraded"
		data["database"] = "unreachable"
		status = http.StatusServiceUnavailable
	}

	if err := app.jsonResponse(w, status, data); err != nil {
		app.internalServerError(w, r, err)
	}
}
