package router

import (
	"strings"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-auth-api/internal/config"
	"user-auth-api/internal/controller"
	"user-auth-api/internal/middleware"
	"user-auth-api/pkg/logger"
)

type Router struct {
	Engine *gin.Engine
	Config *config.Config
	Logger logger.Logger
}

func NewRouter(
	authController *controller.AuthController,
	userController *controller.UserController,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiterMiddleware,
	cfg *config.Config,
	logger logger.Logger,
) *Router {
	switch strings.ToLower(cfg.App.Mode) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	zapLogger, ok := logger.(interface {
		GetZapLogger() *zap.Logger
	})
	if ok {
		r.Use(ginzap.Ginzap(zapLogger.GetZapLogger(), time.RFC3339, true))
		r.Use(ginzap.RecoveryWithZap(zapLogger.GetZapLogger(), true))
	} else {
		logger.Warn("zap logger not available, using default gin logger")
		r.Use(gin.Logger(), gin.Recovery())
	}

	registerValidator()

	// Liveness probe
	r.GET("/api/test", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "API up and running"})
	})

	// Credential endpoints, throttled per client IP
	auth := r.Group("/api/auth")
	auth.Use(rateLimiter.Handle(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// Everything below requires a verified bearer token
	authProtected := r.Group("/api/auth")
	authProtected.Use(authMiddleware.Handle())
	{
		authProtected.GET("/profile", authController.Profile)
		authProtected.GET("/verify", authController.Verify)
	}

	users := r.Group("/api/users")
	users.Use(authMiddleware.Handle())
	{
		users.GET("", userController.List)
		users.GET("/:id", userController.Get)
		users.PUT("/:id", userController.Update)
		users.DELETE("/:id", userController.Delete)
	}

	return &Router{
		Engine: r,
		Config: cfg,
		Logger: logger,
	}
}
