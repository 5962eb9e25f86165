package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "user-admin-console/docs"

	"user-admin-console/internal/common/cache"
	"user-admin-console/internal/common/config"
	"user-admin-console/internal/common/logger"
	"user-admin-console/internal/common/middleware"
	"user-admin-console/internal/features/session"
	"user-admin-console/internal/features/user/client"
	userHandler "user-admin-console/internal/features/user/delivery/http"
	"user-admin-console/internal/platform/redis"
	"user-admin-console/internal/web"
)

const serviceName = "user-admin-console"

// @title           User Admin Console
// @version         1.0
// @description     Server-rendered admin console for the user API. JSON routes expose the session's list state and the service probes.

// @BasePath  /

// @tag.name console
// @tag.description List view state of the browser session

// @tag.name probes
// @tag.description Health, liveness and readiness checks
func main() {
	// Инициализируем конфигурацию
	cfg := config.Load()

	logger.Init(serviceName, cfg.Debug)
	logger.Info().
		Bool("debug", cfg.Debug).
		Str("api_base", cfg.APIBase()).
		Str("session_backend", cfg.Session.Backend).
		Msg("Starting user admin console")

	api := client.NewClient(cfg.APIBase(), cfg.API.Timeout)

	var (
		sessions    session.Registry
		redisClient *redis.Client
	)
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		var err error
		redisClient, err = redis.OpenFromConfig(context.Background(), cfg)
		if err != nil {
			logger.Fatal().Err(err).Str("addr", cfg.RedisAddr()).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()

		store := cache.NewCacheService(redisClient, "console:session")
		sessions = session.NewRedisRegistry(api, store, cfg.Session.TTL)
	default:
		sessions = session.NewMemoryRegistry(api, cfg.Session.TTL)
	}
	defer sessions.Close()

	tmpl, err := web.Templates()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to parse templates")
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.HandleErrors())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Accept", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	if cfg.API.UpstreamURL != "" {
		proxy, err := userHandler.NewAPIProxy(cfg.API.UpstreamURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to configure API proxy")
		}
		router.Any("/api/*path", proxy)
		logger.Info().Str("upstream", cfg.API.UpstreamURL).Msg("Proxying /api to user API")
	} else if cfg.API.BaseURL == "" {
		logger.Warn().Msg("Neither API_BASE_URL nor UPSTREAM_API_URL is set; user API calls will fail")
	}

	setupProbes(router, redisClient)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	userHandler.NewUserHandler(sessions, cfg.Session.Cookie, cfg.Session.TTL).RegisterRoutes(router)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.API.Timeout*3 + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Ждем сигнала для graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}

func setupProbes(router *gin.Engine, redisClient *redis.Client) {
	router.GET("/health", health)
	router.GET("/live", live)
	router.GET("/ready", ready(redisClient))
}

// @Summary Health check
// @Description Always answers while the process is up.
// @Tags probes
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"service":   serviceName,
	})
}

// @Summary Liveness probe
// @Tags probes
// @Success 200
// @Router /live [get]
func live(c *gin.Context) {
	c.Status(http.StatusOK)
}

// @Summary Readiness probe
// @Description Pings redis when sessions are stored there.
// @Tags probes
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{} "Redis unavailable"
// @Router /ready [get]
func ready(redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := redisClient.Ping(ctx).Err(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unready",
					"error":   "redis unavailable",
					"details": err.Error(),
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"timestamp": time.Now().UTC(),
			"service":   serviceName,
		})
	}
}
