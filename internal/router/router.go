package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/devlog-dev/devlog/internal/auth"
	"github.com/devlog-dev/devlog/internal/handlers"
	"github.com/devlog-dev/devlog/internal/metrics"
	"github.com/devlog-dev/devlog/internal/middleware"
	"github.com/devlog-dev/devlog/internal/store"
	"github.com/devlog-dev/devlog/internal/types"
)

// NewRouter wires stores, handlers and middleware onto a gin engine.
// Everything is constructed here from the injected database handle and
// token manager; no package in the tree keeps global state.
func NewRouter(database *gorm.DB, tokens *auth.TokenManager, logger *slog.Logger) *gin.Engine {
	users := store.NewUserStore(database)
	projects := store.NewProjectStore(database)
	logs := store.NewLogStore(database)

	authHandler := handlers.NewAuthHandler(users, tokens, logger)
	projectHandler := handlers.NewProjectHandler(projects, logger)
	logHandler := handlers.NewLogHandler(logs, logger)

	httpMetrics := metrics.New()

	// 10 attempts per minute per IP on the credential endpoints.
	credentialLimiter := middleware.NewRateLimiter(rate.Limit(10.0/60.0), 10)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(httpMetrics.Middleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	requireAuth := middleware.Auth(users, tokens)

	r.GET("/health", handlers.HealthCheck)
	r.GET("/metrics", gin.WrapH(httpMetrics.Handler()))

	usersGroup := r.Group("/users")
	{
		usersGroup.POST("", credentialLimiter.Middleware(), authHandler.Register)
		usersGroup.GET("", requireAuth, authHandler.ListUsers)
		usersGroup.GET("/me", requireAuth, authHandler.Me)
	}

	r.POST("/auth/token", credentialLimiter.Middleware(), authHandler.Login)

	projectsGroup := r.Group("/projects", requireAuth)
	{
		projectsGroup.POST("", projectHandler.Create)
		projectsGroup.GET("", projectHandler.List)
		projectsGroup.GET("/:project_id", projectHandler.Get)
		projectsGroup.PATCH("/:project_id", projectHandler.Patch)
		projectsGroup.PUT("/:project_id", projectHandler.Put)
		projectsGroup.DELETE("/:project_id", projectHandler.Delete)
	}

	logsGroup := r.Group("/logs")
	{
		logsGroup.POST("", logHandler.Create)
		logsGroup.GET("", logHandler.List)
	}

	return r
}
