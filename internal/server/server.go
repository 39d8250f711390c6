package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"petition-backend/internal/captcha"
	"petition-backend/internal/config"
	"petition-backend/internal/handler"
	"petition-backend/internal/middleware"
	"petition-backend/internal/ratelimit"
	"petition-backend/internal/repository"
	"petition-backend/internal/service"
	"petition-backend/internal/storage"
	"petition-backend/internal/validate"
)

const maxSignBodyBytes = 1 << 20 // 1 MiB

type Server struct {
	router        *gin.Engine
	config        *config.Config
	redis         *storage.RedisClient
	postgres      *storage.Postgres
	authService   *service.AuthService
	signHandler   *handler.SignHandler
	authHandler   *handler.AuthHandler
	exportHandler *handler.ExportHandler
	httpServer    *http.Server
}

func New(cfg *config.Config, redisClient *storage.RedisClient, postgres *storage.Postgres) *Server {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	signatureRepo := repository.NewSignatureRepository(postgres)
	adminRepo := repository.NewAdminRepository(postgres)

	rules := map[string]ratelimit.Rule{
		ratelimit.DimensionIP: {Max: cfg.RateLimit.IP.Max, Window: cfg.RateLimit.IP.Window},
		ratelimit.DimensionID: {Max: cfg.RateLimit.ID.Max, Window: cfg.RateLimit.ID.Window},
	}
	limiter := ratelimit.NewLimiter(redisClient, rules)

	verifier := captcha.NewHCaptcha(cfg.Captcha.Secret, cfg.Captcha.VerifyURL)
	signService := service.NewSignService(validate.New(), verifier, limiter, signatureRepo)
	authService := service.NewAuthService(adminRepo, cfg.Auth)

	s := &Server{
		router:        router,
		config:        cfg,
		redis:         redisClient,
		postgres:      postgres,
		authService:   authService,
		signHandler:   handler.NewSignHandler(signService),
		authHandler:   handler.NewAuthHandler(authService),
		exportHandler: handler.NewExportHandler(signatureRepo),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// SeedAdmin creates the configured admin account if it is missing.
func (s *Server) SeedAdmin(ctx context.Context) error {
	return s.authService.EnsureAdmin(ctx, s.config.Auth.AdminEmail, s.config.Auth.AdminPassword)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recovery())
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.Logger())
	s.router.Use(middleware.CORS(s.config.CORS.AllowedOrigins))
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)

	api := s.router.Group("/api")
	{
		api.POST("/sign", middleware.MaxBodySize(maxSignBodyBytes), s.signHandler.Sign)
		api.GET("/counter", s.signHandler.Counter)
		api.POST("/admin/login", s.authHandler.Login)
		api.GET("/export.xlsx", middleware.RequireAdmin(s.authService), s.exportHandler.Export)
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	redisHealthy := true
	if s.redis != nil {
		if err := s.redis.Ping(c.Request.Context()); err != nil {
			redisHealthy = false
			log.Printf("Redis health check failed: %v", err)
		}
	}

	dbHealthy := true
	if err := s.postgres.Ping(c.Request.Context()); err != nil {
		dbHealthy = false
		log.Printf("Database health check failed: %v", err)
	}

	status := "healthy"
	statusCode := http.StatusOK

	if !redisHealthy || !dbHealthy {
		status = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, gin.H{
		"status":    status,
		"service":   "petition-backend",
		"timestamp": time.Now().Unix(),
		"checks": gin.H{
			"redis":    redisHealthy,
			"database": dbHealthy,
		},
	})
}

func (s *Server) Run(addr string) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	log.Printf("Starting petition backend on %s", addr)
	log.Printf("Environment: %s", s.config.Server.Environment)
	if s.config.Server.Region != "" {
		log.Printf("Region: %s", s.config.Server.Region)
	}

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
