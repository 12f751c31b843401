package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/store"
	"github.com/aussiebroadwan/qrhub/pkg/httpx"
	"github.com/aussiebroadwan/qrhub/pkg/qrsdk"
)

// HandleTest godoc
//
//	@Summary	Smoke test
//	@Tags		Health
//	@Produce	plain
//	@Success	200	{string}	string	"Server is working!"
//	@Router		/api/test [get].
func HandleTest(w http.ResponseWriter, _ *http.Request) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Server is working!"))
}

// HandleHealth godoc
//
//	@Summary	API health
//	@Tags		Health
//	@Produce	json
//	@Success	200	{object}	qrsdk.APIHealthResponse
//	@Router		/api/health [get].
func HandleHealth(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, qrsdk.APIHealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
	})
}

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe returning status, uptime and version. Always 200 while the process runs.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	qrsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := qrsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		}
		httpx.WriteJSON(w, http.StatusOK, response)
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe that pings both store containers.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	qrsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	qrsdk.HealthResponse	"store unreachable"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &qrsdk.HealthChecks{Store: "ok"}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Store = "error: unreachable"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		response := qrsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
