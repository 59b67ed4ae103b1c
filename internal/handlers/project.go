package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devlog-dev/devlog/internal/models"
	"github.com/devlog-dev/devlog/internal/store"
	"github.com/devlog-dev/devlog/internal/types"
	"github.com/devlog-dev/devlog/internal/utils"
)

type CreateProjectRequest struct {
	Title       string  `json:"title" binding:"required,max=100"`
	Description *string `json:"description"`
}

type PatchProjectRequest struct {
	Title       types.Optional[string] `json:"title"`
	Description types.Optional[string] `json:"description"`
}

type ProjectHandler struct {
	projects *store.ProjectStore
	logger   *slog.Logger
}

func NewProjectHandler(projects *store.ProjectStore, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, logger: logger}
}

func (h *ProjectHandler) Create(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, types.KindUnauthorized, "User not authenticated")
		return
	}

	var body CreateProjectRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondError(ctx, http.StatusBadRequest, types.KindValidation, "Invalid request")
		return
	}

	project, err := h.projects.Create(ctx.Request.Context(), userID, body.Title, body.Description)

	if err != nil {
		h.logger.Error("failed to create project", slog.String("error", err.Error()))
		respondError(ctx, http.StatusInternalServerError, types.KindInternal, "Failed to create project")
		return
	}

	ctx.JSON(http.StatusCreated, projectResponse(project))
}

func (h *ProjectHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, types.KindUnauthorized, "User not authenticated")
		return
	}

	limit := store.DefaultListLimit

	if raw := ctx.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > store.MaxListLimit {
			respondError(ctx, http.StatusBadRequest, types.KindValidation, "limit must be between 1 and 200")
			return
		}
	}

	offset := 0

	if raw := ctx.Query("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			respondError(ctx, http.StatusBadRequest, types.KindValidation, "offset must be zero or greater")
			return
		}
	}

	projects, err := h.projects.List(ctx.Request.Context(), userID, ctx.Query("q"), limit, offset)

	if err != nil {
		h.logger.Error("failed to list projects", slog.String("error", err.Error()))
		respondError(ctx, http.StatusInternalServerError, types.KindInternal, "Failed to retrieve projects")
		return
	}

	response := make([]types.ProjectResponse, 0, len(projects))

	for i := range projects {
		response = append(response, projectResponse(&projects[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *ProjectHandler) Get(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, types.KindUnauthorized, "User not authenticated")
		return
	}

	projectID, ok := parseProjectID(ctx)
	if !ok {
		return
	}

	project, err := h.projects.Get(ctx.Request.Context(), userID, projectID)

	if err != nil {
		h.respondStoreError(ctx, err, "Failed to retrieve project")
		return
	}

	ctx.JSON(http.StatusOK, projectResponse(project))
}

func (h *ProjectHandler) Patch(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, types.KindUnauthorized, "User not authenticated")
		return
	}

	projectID, ok := parseProjectID(ctx)
	if !ok {
		return
	}

	var body PatchProjectRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondError(ctx, http.StatusBadRequest, types.KindValidation, "Invalid request")
		return
	}

	// Title is non-nullable: sending it at all means sending a usable value.
	if body.Title.Set && (!body.Title.Valid || strings.TrimSpace(body.Title.Value) == "") {
		respondError(ctx, http.StatusBadRequest, types.KindValidation, "title must not be empty")
		return
	}

	project, err := h.projects.UpdatePartial(ctx.Request.Context(), userID, projectID, store.ProjectPatch{
		Title:       body.Title,
		Description: body.Description,
	})

	if err != nil {
		h.respondStoreError(ctx, err, "Failed to update project")
		return
	}

	ctx.JSON(http.StatusOK, projectResponse(project))
}

func (h *ProjectHandler) Put(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, types.KindUnauthorized, "User not authenticated")
		return
	}

	projectID, ok := parseProjectID(ctx)
	if !ok {
		return
	}

	var body CreateProjectRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondError(ctx, http.StatusBadRequest, types.KindValidation, "Invalid request")
		return
	}

	project, err := h.projects.UpdateFull(ctx.Request.Context(), userID, projectID, body.Title, body.Description)

	if err != nil {
		h.respondStoreError(ctx, err, "Failed to update project")
		return
	}

	ctx.JSON(http.StatusOK, projectResponse(project))
}

func (h *ProjectHandler) Delete(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, types.KindUnauthorized, "User not authenticated")
		return
	}

	projectID, ok := parseProjectID(ctx)
	if !ok {
		return
	}

	if err := h.projects.Delete(ctx.Request.Context(), userID, projectID); err != nil {
		h.respondStoreError(ctx, err, "Failed to delete project")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *ProjectHandler) respondStoreError(ctx *gin.Context, err error, message string) {
	if errors.Is(err, store.ErrNotFound) {
		respondError(ctx, http.StatusNotFound, types.KindNotFound, "Project not found")
		return
	}
	h.logger.Error("project store error", slog.String("error", err.Error()))
	respondError(ctx, http.StatusInternalServerError, types.KindInternal, message)
}

func parseProjectID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("project_id"), 10, 32)
	if err != nil {
		respondError(ctx, http.StatusBadRequest, types.KindValidation, "Invalid project id")
		return 0, false
	}
	return uint(id), true
}

func projectResponse(project *models.Project) types.ProjectResponse {
	return types.ProjectResponse{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		OwnerID:     project.OwnerID,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}
