package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/scubalog/dive-log-api/docs"
	"github.com/scubalog/dive-log-api/internal/api/handler"
	"github.com/scubalog/dive-log-api/internal/api/middleware"
	"github.com/scubalog/dive-log-api/internal/core/service"
	mongodb "github.com/scubalog/dive-log-api/internal/infrastructure/db/mongo"
	redisdb "github.com/scubalog/dive-log-api/internal/infrastructure/db/redis"
	"github.com/scubalog/dive-log-api/internal/pkg/config"
)

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("divelog"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	logRepo := mongodb.NewDiveLogRepository(db)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.SecretSalt, cfg.JWTExpiration, log)
	userService := service.NewUserService(userRepo, roleRepo, logRepo, cfg.SecretSalt, log)
	roleService := service.NewRoleService(roleRepo, log)
	logService := service.NewDiveLogService(logRepo, userRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleService)
	logHandler := handler.NewDiveLogHandler(logService)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	// --- Middleware ---
	auth := middleware.Auth(cfg.JWTSecret, userRepo)
	superAdminOnly := middleware.RequireSuperAdmin()
	loginLimit := middleware.RateLimitLogin(redisdb.NewLoginLimiter(rdb), log)

	// --- Unauthenticated routes ---
	e.GET("/", healthHandler.Greeting)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1")
	v1.GET("/status", healthHandler.Status)
	v1.POST("/users/login", authHandler.Login, loginLimit)

	// --- Authenticated routes ---
	v1.GET("/me", userHandler.Me, auth)
	v1.PATCH("/me/update", userHandler.UpdateMe, auth)

	v1.POST("/users", userHandler.Create, auth)
	v1.GET("/users", userHandler.List, auth)
	v1.GET("/users/:id", userHandler.Get, auth)
	v1.PATCH("/users/:id", userHandler.Update, auth)
	v1.DELETE("/users/:id", userHandler.Delete, auth)
	v1.PATCH("/users/activate/:id", userHandler.Activate, auth)
	v1.PATCH("/users/deactivate/:id", userHandler.Deactivate, auth)

	v1.POST("/logbooks", logHandler.Create, auth)
	v1.GET("/logbooks", logHandler.List, auth)
	v1.GET("/logbooks/:id", logHandler.Get, auth)
	v1.PATCH("/logbooks/:id", logHandler.Update, auth)
	v1.DELETE("/logbooks/:id", logHandler.Delete, auth)

	// Only super admins can manage roles.
	roles := v1.Group("/roles", auth, superAdminOnly)
	roles.POST("", roleHandler.Create)
	roles.GET("", roleHandler.List)
	roles.GET("/:id", roleHandler.Get)
	roles.PATCH("/:id", roleHandler.Update)
	roles.DELETE("/:id", roleHandler.Delete)

	return e
}
