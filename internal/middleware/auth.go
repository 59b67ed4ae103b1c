package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devlog-dev/devlog/internal/auth"
	"github.com/devlog-dev/devlog/internal/store"
	"github.com/devlog-dev/devlog/internal/types"
)

type AuthenticatedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Auth gates a route group on a valid bearer token. The token subject is
// resolved back through the user store, so a token for a since-deleted
// account is rejected the same way as a forged one.
func Auth(users *store.UserStore, tokens *auth.TokenManager) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			abortUnauthorized(ctx, "Authorization token is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(ctx, "Authorization header format must be Bearer {token}")
			return
		}

		subject, err := tokens.Parse(parts[1])

		if err != nil {
			abortUnauthorized(ctx, "Invalid token")
			return
		}

		user, err := users.GetByUsername(ctx.Request.Context(), subject)

		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				abortUnauthorized(ctx, "User not found")
				return
			}
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{
				Error: "Internal server error",
				Kind:  types.KindInternal,
			})
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		})
		ctx.Next()
	}
}

func abortUnauthorized(ctx *gin.Context, message string) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{
		Error: message,
		Kind:  types.KindUnauthorized,
	})
}
