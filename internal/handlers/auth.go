package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devlog-dev/devlog/internal/auth"
	"github.com/devlog-dev/devlog/internal/store"
	"github.com/devlog-dev/devlog/internal/types"
	"github.com/devlog-dev/devlog/internal/utils"
)

type CreateUserRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required,email,max=100"`
}

// LoginRequest binds from either a JSON body or an OAuth2-style password
// form, so command-line clients can post form data.
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type AuthHandler struct {
	users  *store.UserStore
	tokens *auth.TokenManager
	logger *slog.Logger
}

func NewAuthHandler(users *store.UserStore, tokens *auth.TokenManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, logger: logger}
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var body CreateUserRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondError(ctx, http.StatusBadRequest, types.KindValidation, "Invalid request")
		return
	}

	user, err := h.users.Register(ctx.Request.Context(), body.Username, body.Email, body.Password)

	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateUsername):
			respondError(ctx, http.StatusBadRequest, types.KindDuplicateIdentity, "Username already taken")
		case errors.Is(err, store.ErrDuplicateEmail):
			respondError(ctx, http.StatusBadRequest, types.KindDuplicateIdentity, "Email already registered")
		default:
			h.logger.Error("failed to register user", slog.String("error", err.Error()))
			respondError(ctx, http.StatusInternalServerError, types.KindInternal, "Internal server error")
		}
		return
	}

	ctx.JSON(http.StatusCreated, types.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var body LoginRequest

	if err := ctx.ShouldBind(&body); err != nil {
		respondError(ctx, http.StatusBadRequest, types.KindValidation, "Invalid request")
		return
	}

	user, err := h.users.Authenticate(ctx.Request.Context(), body.Username, body.Password)

	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			respondError(ctx, http.StatusUnauthorized, types.KindUnauthorized, "Incorrect username or password")
			return
		}
		h.logger.Error("failed to authenticate user", slog.String("error", err.Error()))
		respondError(ctx, http.StatusInternalServerError, types.KindInternal, "Internal server error")
		return
	}

	token, err := h.tokens.Generate(user.Username)

	if err != nil {
		h.logger.Error("failed to sign token", slog.String("error", err.Error()))
		respondError(ctx, http.StatusInternalServerError, types.KindInternal, "Internal server error")
		return
	}

	ctx.JSON(http.StatusOK, types.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func (h *AuthHandler) Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, types.KindUnauthorized, "User not authenticated")
		return
	}

	ctx.JSON(http.StatusOK, types.UserResponse{
		ID:       currentUser.ID,
		Username: currentUser.Username,
		Email:    currentUser.Email,
	})
}

// ListUsers is a debug listing of all accounts; it stays behind auth.
func (h *AuthHandler) ListUsers(ctx *gin.Context) {
	users, err := h.users.List(ctx.Request.Context())

	if err != nil {
		h.logger.Error("failed to list users", slog.String("error", err.Error()))
		respondError(ctx, http.StatusInternalServerError, types.KindInternal, "Internal server error")
		return
	}

	response := make([]types.UserResponse, 0, len(users))

	for _, user := range users {
		response = append(response, types.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		})
	}

	ctx.JSON(http.StatusOK, response)
}
