package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/domain"
	"github.com/aussiebroadwan/qrhub/internal/qrhub/service"
	"github.com/aussiebroadwan/qrhub/pkg/httpx"
	"github.com/aussiebroadwan/qrhub/pkg/qrsdk"
	"github.com/aussiebroadwan/qrhub/pkg/slogx"
)

// ProjectsHandler serves the session scoped project CRUD endpoints.
type ProjectsHandler struct {
	ProjectService *service.ProjectService
}

// HandleSave handles POST /api/save-project
//
//	@Summary		Save project
//	@Description	Stores a project owned by the caller. Without qrImage the server renders a PNG pointing at /track/{id}.
//	@Tags			Projects
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		qrsdk.SaveProjectRequest	true	"Project"
//	@Success		201		{object}	qrsdk.ProjectResponse
//	@Failure		400		{object}	qrsdk.ErrorResponse
//	@Failure		401		{object}	qrsdk.ErrorResponse
//	@Failure		500		{object}	qrsdk.ErrorResponse
//	@Router			/api/save-project [post].
func (h *ProjectsHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	sub, _ := httpx.SubjectFromContext(ctx)

	var req qrsdk.SaveProjectRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Text) == "" {
		writeBadRequest(w, "Name and text are required.")
		return
	}

	p, err := h.ProjectService.Create(ctx, sub, service.CreateProjectInput{
		Name:    req.Name,
		Payload: req.Text,
		QRImage: req.QRImage,
		FgColor: req.FgColor,
		BgColor: req.BgColor,
	})
	if err != nil {
		writeProjectError(w, log, "failed to save project", err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, qrsdk.ProjectResponse{Message: "Project saved.", Project: projectView(p)})
}

// HandleList handles GET /api/get-projects
//
//	@Summary	List own projects
//	@Tags		Projects
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	qrsdk.ProjectsResponse	"Newest first"
//	@Failure	401	{object}	qrsdk.ErrorResponse
//	@Failure	500	{object}	qrsdk.ErrorResponse
//	@Router		/api/get-projects [get].
func (h *ProjectsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	sub, _ := httpx.SubjectFromContext(ctx)

	projects, err := h.ProjectService.List(ctx, sub)
	if err != nil {
		writeServerError(w, log, "failed to list projects", err)
		return
	}

	views := make([]qrsdk.Project, 0, len(projects))
	for _, p := range projects {
		views = append(views, projectView(p))
	}
	httpx.WriteJSON(w, http.StatusOK, qrsdk.ProjectsResponse{Projects: views})
}

// HandleGet handles GET /api/get-project/{id}
//
//	@Summary	Get project
//	@Tags		Projects
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Project id"
//	@Success	200	{object}	qrsdk.ProjectResponse
//	@Failure	401	{object}	qrsdk.ErrorResponse
//	@Failure	403	{object}	qrsdk.ErrorResponse
//	@Failure	404	{object}	qrsdk.ErrorResponse
//	@Router		/api/get-project/{id} [get].
func (h *ProjectsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	sub, _ := httpx.SubjectFromContext(ctx)

	p, err := h.ProjectService.Get(ctx, sub, r.PathValue("id"))
	if err != nil {
		writeProjectError(w, log, "failed to get project", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, qrsdk.ProjectResponse{Project: projectView(p)})
}

// HandleUpdate handles PUT /api/update-project/{id}
//
//	@Summary		Update project
//	@Description	Blank or absent fields are left unchanged. Changing colours without a new qrImage re-renders the image.
//	@Tags			Projects
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"Project id"
//	@Param			request	body		qrsdk.UpdateProjectRequest	true	"Fields to change"
//	@Success		200		{object}	qrsdk.ProjectResponse
//	@Failure		400		{object}	qrsdk.ErrorResponse
//	@Failure		403		{object}	qrsdk.ErrorResponse
//	@Failure		404		{object}	qrsdk.ErrorResponse
//	@Failure		409		{object}	qrsdk.ErrorResponse
//	@Router			/api/update-project/{id} [put].
func (h *ProjectsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

// HandleUpdateColors handles PUT /api/update-color/{id}
//
//	@Summary		Update project colours
//	@Description	Only fgColor, bgColor and qrImage are applied.
//	@Tags			Projects
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"Project id"
//	@Param			request	body		qrsdk.UpdateProjectRequest	true	"Colours"
//	@Success		200		{object}	qrsdk.ProjectResponse
//	@Failure		400		{object}	qrsdk.ErrorResponse
//	@Failure		403		{object}	qrsdk.ErrorResponse
//	@Failure		404		{object}	qrsdk.ErrorResponse
//	@Failure		409		{object}	qrsdk.ErrorResponse
//	@Router			/api/update-color/{id} [put].
func (h *ProjectsHandler) HandleUpdateColors(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

func (h *ProjectsHandler) update(w http.ResponseWriter, r *http.Request, colorsOnly bool) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	sub, _ := httpx.SubjectFromContext(ctx)

	var req qrsdk.UpdateProjectRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}
	patch := domain.ProjectPatch{
		Name:    req.Name,
		Payload: req.Text,
		QRImage: req.QRImage,
		FgColor: req.FgColor,
		BgColor: req.BgColor,
	}

	var (
		p   domain.Project
		err error
	)
	if colorsOnly {
		p, err = h.ProjectService.UpdateColors(ctx, sub, r.PathValue("id"), patch)
	} else {
		p, err = h.ProjectService.Update(ctx, sub, r.PathValue("id"), patch)
	}
	if err != nil {
		writeProjectError(w, log, "failed to update project", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, qrsdk.ProjectResponse{Message: "Project updated.", Project: projectView(p)})
}

// HandleDelete handles DELETE /api/delete-project/{id}
//
//	@Summary	Delete project
//	@Tags		Projects
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Project id"
//	@Success	200	{object}	qrsdk.MessageResponse
//	@Failure	403	{object}	qrsdk.ErrorResponse
//	@Failure	404	{object}	qrsdk.ErrorResponse
//	@Router		/api/delete-project/{id} [delete].
func (h *ProjectsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	sub, _ := httpx.SubjectFromContext(ctx)

	if err := h.ProjectService.Delete(ctx, sub, r.PathValue("id")); err != nil {
		writeProjectError(w, log, "failed to delete project", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, qrsdk.MessageResponse{Message: "Project deleted."})
}

func writeProjectError(w http.ResponseWriter, log *slog.Logger, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		writeError(w, http.StatusNotFound, qrsdk.ErrorCodeNotFound, "Project not found.")
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, qrsdk.ErrorCodeForbidden, "You do not have access to this project.")
	case errors.Is(err, service.ErrConflict):
		writeError(w, http.StatusConflict, qrsdk.ErrorCodeConflict, msgConflict)
	case errors.Is(err, service.ErrInvalidInput):
		writeBadRequest(w, "Invalid project fields. Colours must be #rgb or #rrggbb.")
	default:
		writeServerError(w, log, msg, err)
	}
}
