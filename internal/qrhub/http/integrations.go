package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/caption"
	"github.com/aussiebroadwan/qrhub/internal/qrhub/service"
	"github.com/aussiebroadwan/qrhub/pkg/httpx"
	"github.com/aussiebroadwan/qrhub/pkg/qrsdk"
	"github.com/aussiebroadwan/qrhub/pkg/slogx"
)

// MaxImageUpload caps caption-image uploads.
const MaxImageUpload = 10 << 20

// Captioner describes an image. *caption.Client satisfies it.
type Captioner interface {
	Configured() bool
	Caption(ctx context.Context, image []byte, contentType string) (string, error)
}

type CustomDataHandler struct {
	CustomDataService *service.CustomDataService
}

// HandleFetch handles POST /api/custom-data
//
//	@Summary		Read a caller owned Cosmos container
//	@Description	Validates the target, scans the container once and returns its documents. Credentials are never stored.
//	@Tags			Integrations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		qrsdk.CustomDataRequest	true	"Cosmos target"
//	@Success		200		{object}	qrsdk.CustomDataResponse
//	@Failure		400		{object}	qrsdk.ErrorResponse
//	@Failure		500		{object}	qrsdk.ErrorResponse
//	@Router			/api/custom-data [post].
func (h *CustomDataHandler) HandleFetch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req qrsdk.CustomDataRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	docs, err := h.CustomDataService.Fetch(ctx, service.CustomDataRequest{
		Endpoint:    req.Endpoint,
		Key:         req.Key,
		DatabaseID:  req.DatabaseID,
		ContainerID: req.ContainerID,
	})
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, qrsdk.CustomDataResponse{Data: docs})
	case errors.Is(err, service.ErrInvalidInput):
		writeBadRequest(w, "Missing required fields.")
	case errors.Is(err, service.ErrInvalidTarget):
		// Target errors are our own validation text.
		writeBadRequest(w, err.Error())
	case errors.Is(err, service.ErrUpstream):
		writeError(w, http.StatusInternalServerError, qrsdk.ErrorCodeServerError,
			"Could not fetch from provided Cosmos DB.")
	default:
		writeServerError(w, log, "failed to fetch custom data", err)
	}
}

type CaptionHandler struct {
	Captioner Captioner
}

// HandleCaption handles POST /api/caption-image
//
//	@Summary	Caption an image
//	@Tags		Integrations
//	@Accept		mpfd
//	@Produce	json
//	@Param		image	formData	file	true	"Image, at most 10 MiB"
//	@Success	200		{object}	qrsdk.CaptionResponse
//	@Failure	400		{object}	qrsdk.ErrorResponse
//	@Failure	502		{object}	qrsdk.ErrorResponse	"Captioning upstream failed"
//	@Failure	503		{object}	qrsdk.ErrorResponse	"Captioning not configured"
//	@Router		/api/caption-image [post].
func (h *CaptionHandler) HandleCaption(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if h.Captioner == nil || !h.Captioner.Configured() {
		writeError(w, http.StatusServiceUnavailable, qrsdk.ErrorCodeUnavailable, "Image captioning is not configured.")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxImageUpload+1<<20)
	if err := r.ParseMultipartForm(MaxImageUpload); err != nil {
		writeBadRequest(w, "Expected a multipart upload of at most 10 MiB.")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("image")
	if err != nil {
		writeBadRequest(w, "No image uploaded.")
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > MaxImageUpload {
		writeBadRequest(w, "Image must be at most 10 MiB.")
		return
	}
	img, err := io.ReadAll(io.LimitReader(file, MaxImageUpload+1))
	if err != nil || len(img) == 0 {
		writeBadRequest(w, "No image uploaded.")
		return
	}

	text, err := h.Captioner.Caption(ctx, img, header.Header.Get("Content-Type"))
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, qrsdk.CaptionResponse{Caption: text})
	case errors.Is(err, caption.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, qrsdk.ErrorCodeUnavailable, "Image captioning is not configured.")
	default:
		log.Error("caption upstream failed", "error", err)
		writeError(w, http.StatusBadGateway, qrsdk.ErrorCodeUpstreamFailure, "Captioning service failed.")
	}
}
