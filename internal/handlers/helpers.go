package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/devlog-dev/devlog/internal/types"
)

func respondError(ctx *gin.Context, status int, kind, message string) {
	ctx.JSON(status, types.ErrorResponse{Error: message, Kind: kind})
}
