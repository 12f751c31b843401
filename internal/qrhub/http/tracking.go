package http

import (
	"net/http"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/service"
	"github.com/aussiebroadwan/qrhub/pkg/httpx"
	"github.com/aussiebroadwan/qrhub/pkg/qrsdk"
	"github.com/aussiebroadwan/qrhub/pkg/slogx"
)

// TrackingHandler serves the public scan endpoints.
type TrackingHandler struct {
	ProjectService *service.ProjectService
}

// HandleTrack handles GET /track/{id}
//
//	@Summary		Record a scan
//	@Description	Increments the scan count, appends a scan event and redirects to the project payload.
//	@Tags			Tracking
//	@Param			id	path	string	true	"Project id"
//	@Success		302	"Redirect to the payload"
//	@Failure		404	{object}	qrsdk.ErrorResponse
//	@Failure		409	{object}	qrsdk.ErrorResponse
//	@Failure		500	{object}	qrsdk.ErrorResponse
//	@Router			/track/{id} [get].
func (h *TrackingHandler) HandleTrack(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	p, err := h.ProjectService.Track(ctx, r.PathValue("id"), service.Scan{
		UserAgent: r.UserAgent(),
		IP:        httpx.ClientIP(r),
	})
	if err != nil {
		writeProjectError(w, log, "failed to record scan", err)
		return
	}

	httpx.NoCache(w)
	http.Redirect(w, r, p.RedirectURL(), http.StatusFound)
}

// HandleScanCount handles GET /api/get-scan-count/{id}
//
//	@Summary	Scan count
//	@Tags		Tracking
//	@Produce	json
//	@Param		id	path		string	true	"Project id"
//	@Success	200	{object}	qrsdk.ScanCountResponse
//	@Failure	404	{object}	qrsdk.ErrorResponse
//	@Router		/api/get-scan-count/{id} [get].
func (h *TrackingHandler) HandleScanCount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	p, err := h.ProjectService.Lookup(ctx, r.PathValue("id"))
	if err != nil {
		writeProjectError(w, log, "failed to read scan count", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, qrsdk.ScanCountResponse{ScanCount: p.ScanCount})
}

// HandleScanAnalytics handles GET /api/get-scan-analytics/{id}
//
//	@Summary		Scan analytics
//	@Description	Scan count and the most recent scan events, oldest first.
//	@Tags			Tracking
//	@Produce		json
//	@Param			id	path		string	true	"Project id"
//	@Success		200	{object}	qrsdk.ScanAnalyticsResponse
//	@Failure		404	{object}	qrsdk.ErrorResponse
//	@Router			/api/get-scan-analytics/{id} [get].
func (h *TrackingHandler) HandleScanAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	p, err := h.ProjectService.Lookup(ctx, r.PathValue("id"))
	if err != nil {
		writeProjectError(w, log, "failed to read scan analytics", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, qrsdk.ScanAnalyticsResponse{
		ScanCount:  p.ScanCount,
		ScanEvents: scanEventViews(p.ScanEvents),
	})
}
