package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prepmate/prepmate-server/internal/api/http/handler"
	"github.com/prepmate/prepmate-server/internal/api/http/middleware"
	"github.com/prepmate/prepmate-server/internal/logger"
	"github.com/prepmate/prepmate-server/internal/service"
)

// Pinger checks liveness of the underlying store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router wires handlers and middleware into a gin engine. Data routes sit
// behind the authenticate middleware; only register, login and the health
// check are open.
type Router struct {
	authService     *service.Auth
	sessionService  *service.Session
	progressService *service.Progress
	db              Pinger
	logger          *logger.Logger
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	sessionService *service.Session,
	progressService *service.Progress,
	db Pinger,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:     authService,
		sessionService:  sessionService,
		progressService: progressService,
		db:              db,
		logger:          logger,
	}
}

// Register builds the gin engine with all routes and middleware.
func (r *Router) Register() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.sessionService, r.logger)

	authHandler := handler.NewAuth(r.authService, r.sessionService, r.logger)
	progressHandler := handler.NewProgress(r.progressService, r.logger)

	engine := gin.New()
	engine.Use(gin.Recovery(), logging.Handle)

	engine.GET("/healthz", r.healthz)

	v1 := engine.Group("/api/v1")
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)

	protected := v1.Group("")
	protected.Use(authenticate.Handle)
	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/auth/me", authHandler.Me)
	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile", authHandler.UpdateProfile)
	protected.POST("/progress", progressHandler.SaveLearningProgress)
	protected.GET("/progress", progressHandler.GetLearningProgress)
	protected.POST("/interviews", progressHandler.SaveInterviewSession)
	protected.GET("/interviews", progressHandler.GetInterviewSessions)
	protected.PUT("/preferences", progressHandler.SavePreferences)
	protected.GET("/preferences", progressHandler.GetPreferences)
	protected.POST("/admin/sessions/cleanup", authHandler.CleanupSessions)

	return engine
}

func (r *Router) healthz(c *gin.Context) {
	if err := r.db.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
