package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/devlog-dev/devlog/internal/store"
	"github.com/devlog-dev/devlog/internal/types"
)

type CreateLogRequest struct {
	ProjectID uint   `json:"project_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// LogHandler serves the log routes. They are deliberately outside the
// auth group: any caller may append to or read any project's log, which
// matches the current ingest contract.
type LogHandler struct {
	logs   *store.LogStore
	logger *slog.Logger
}

func NewLogHandler(logs *store.LogStore, logger *slog.Logger) *LogHandler {
	return &LogHandler{logs: logs, logger: logger}
}

func (h *LogHandler) Create(ctx *gin.Context) {
	var body CreateLogRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondError(ctx, http.StatusBadRequest, types.KindValidation, "Invalid request")
		return
	}

	log, err := h.logs.Create(ctx.Request.Context(), body.ProjectID, body.Message)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(ctx, http.StatusNotFound, types.KindNotFound, "Project not found")
			return
		}
		h.logger.Error("failed to create log", slog.String("error", err.Error()))
		respondError(ctx, http.StatusInternalServerError, types.KindInternal, "Failed to create log")
		return
	}

	ctx.JSON(http.StatusCreated, types.LogResponse{
		ID:        log.ID,
		ProjectID: log.ProjectID,
		Message:   log.Message,
		Date:      log.Date,
	})
}

func (h *LogHandler) List(ctx *gin.Context) {
	var projectID *uint

	if raw := ctx.Query("project_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondError(ctx, http.StatusBadRequest, types.KindValidation, "Invalid project id")
			return
		}
		value := uint(id)
		projectID = &value
	}

	logs, err := h.logs.List(ctx.Request.Context(), projectID)

	if err != nil {
		h.logger.Error("failed to list logs", slog.String("error", err.Error()))
		respondError(ctx, http.StatusInternalServerError, types.KindInternal, "Failed to retrieve logs")
		return
	}

	response := make([]types.LogResponse, 0, len(logs))

	for _, log := range logs {
		response = append(response, types.LogResponse{
			ID:        log.ID,
			ProjectID: log.ProjectID,
			Message:   log.Message,
			Date:      log.Date,
		})
	}

	ctx.JSON(http.StatusOK, response)
}
