// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	_ "forgehub/docs" // swagger docs
	"forgehub/internal/cache"
	"forgehub/internal/config"
	"forgehub/internal/database"
	"forgehub/internal/middleware"
	"forgehub/internal/models"
	"forgehub/internal/repository"
	"forgehub/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config           *config.Config
	db               *gorm.DB
	redis            *redis.Client
	app              *fiber.App
	promMiddleware   *fiberprometheus.FiberPrometheus
	userRepo         repository.UserRepository
	projectRepo      repository.ProjectRepository
	developerRepo    repository.DeveloperRepository
	reviewRepo       repository.ReviewRepository
	bookmarkRepo     repository.BookmarkRepository
	notificationRepo repository.NotificationRepository
	reportRepo       repository.ReportRepository
	blogRepo         repository.BlogRepository
	reviewService    *service.ReviewService
	reportService    *service.ReportService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Initialize Redis
	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	developerRepo := repository.NewDeveloperRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	bookmarkRepo := repository.NewBookmarkRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	reportRepo := repository.NewReportRepository(db)
	blogRepo := repository.NewBlogRepository(db)

	// Initialize Prometheus metrics
	prom := middleware.InitMetrics("forgehub-api")

	server := &Server{
		config:           cfg,
		db:               db,
		redis:            redisClient,
		promMiddleware:   prom,
		userRepo:         userRepo,
		projectRepo:      projectRepo,
		developerRepo:    developerRepo,
		reviewRepo:       reviewRepo,
		bookmarkRepo:     bookmarkRepo,
		notificationRepo: notificationRepo,
		reportRepo:       reportRepo,
		blogRepo:         blogRepo,
	}
	server.reviewService = service.NewReviewService(reviewRepo, projectRepo, developerRepo, notificationRepo)
	server.reportService = service.NewReportService(reportRepo, projectRepo, reviewRepo, notificationRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	// A single origin is configured because credentials are allowed.
	origin := s.config.AllowedOrigin
	if origin == "" {
		origin = "http://localhost:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origin,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/", s.Root)
	app.Get("/health", s.HealthCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "ForgeHub Backend Metrics Dashboard",
	}))

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Get("/me", s.AuthRequired(), s.Me)

	// Public project routes (browse)
	publicProjects := api.Group("/projects")
	publicProjects.Get("/", s.GetProjects)
	publicProjects.Get("/featured", s.GetFeaturedProjects)
	// Define specific /:id/:resource routes BEFORE generic /:id route
	publicProjects.Get("/:id/reviews", s.GetProjectReviews)
	publicProjects.Get("/:id/reviews/distribution", s.GetReviewDistribution)
	publicProjects.Get("/:id", s.GetProject)

	// Public developer routes (browse)
	publicDevelopers := api.Group("/developers")
	publicDevelopers.Get("/", s.GetDevelopers)
	publicDevelopers.Get("/top", s.GetTopDevelopers)
	publicDevelopers.Get("/:id", s.GetDeveloper)

	// Public blog routes
	publicBlog := api.Group("/blog")
	publicBlog.Get("/", s.GetBlogPosts)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	// Project write routes
	projects := protected.Group("/projects")
	projects.Post("/", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "create_project"), s.CreateProject)
	projects.Post("/:id/reviews", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "create_review"), s.CreateReview)
	projects.Put("/:id", s.UpdateProject)
	projects.Delete("/:id", s.DeleteProject)

	// Developer profile routes
	developers := protected.Group("/developers")
	developers.Post("/", s.RequireRole(models.RoleDeveloper, models.RoleAdmin), s.CreateDeveloperProfile)
	developers.Put("/me", s.RequireRole(models.RoleDeveloper, models.RoleAdmin), s.UpdateMyDeveloperProfile)

	// User routes
	users := protected.Group("/users")
	users.Get("/me/projects", s.GetMyProjects)
	users.Put("/me", s.UpdateMyProfile)

	// Bookmark routes
	bookmarks := protected.Group("/bookmarks")
	bookmarks.Post("/", s.CreateBookmark)
	bookmarks.Get("/", s.GetBookmarks)
	bookmarks.Delete("/:id", s.DeleteBookmark)

	// Notification routes
	notifs := protected.Group("/notifications")
	notifs.Get("/", s.GetNotifications)
	notifs.Get("/unread-count", s.GetUnreadCount)
	notifs.Post("/read-all", s.MarkAllNotificationsRead)
	notifs.Post("/:id/read", s.MarkNotificationRead)

	// Report routes
	reports := protected.Group("/reports")
	reports.Post("/", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "create_report"), s.CreateReport)

	// Blog write routes; /my must be registered before the generic /:slug.
	blog := protected.Group("/blog")
	blog.Get("/my", s.GetMyBlogPosts)
	blog.Post("/", s.CreateBlogPost)
	blog.Put("/:id", s.UpdateBlogPost)
	blog.Delete("/:id", s.DeleteBlogPost)
	publicBlog.Get("/:slug", s.GetBlogPostBySlug)

	// Admin routes
	admin := protected.Group("/admin", s.RequireRole(models.RoleAdmin))
	admin.Get("/stats", s.GetPlatformStats)
	admin.Get("/users", s.GetAllUsers)
	admin.Post("/users/:id/deactivate", s.DeactivateUser)
	admin.Post("/users/:id/reactivate", s.ReactivateUser)
	admin.Get("/reviews/pending", s.GetPendingReviews)
	admin.Post("/reviews/:id/approve", s.ApproveReview)
	admin.Post("/reviews/:id/reject", s.RejectReview)
	admin.Get("/reports", s.GetReports)
	admin.Post("/reports/:id/resolve", s.ResolveReport)
	admin.Post("/projects/:id/feature", s.FeatureProject)

	// 404 fallback must be registered last
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}

// Root handles GET /
func (s *Server) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "ForgeHub API",
		"version": "1.0.0",
	})
}

// HealthCheck handles readiness probe requests
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The API degrades gracefully without Redis; readiness only reports it.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// RequireRole returns middleware that rejects users whose role is not in the
// allowed set. Must be placed after AuthRequired so that userRole is available
// in locals.
func (s *Server) RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := c.Locals("userRole").(models.Role)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Insufficient permissions"))
	}
}

// AuthRequired returns the authentication middleware. Beyond signature
// verification it loads the user row so that deactivated accounts are cut
// off at the gate, not at token expiry.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		// Parse and validate token
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			// Validate signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})

		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		// Extract claims
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		// Validate issuer, audience and token type
		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != "forgehub-api" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != "forgehub-client" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}
		if tokenType, typeOk := claims["type"].(string); !typeOk || tokenType != "user" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token type"))
		}

		// Extract user ID from subject claim
		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}

		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		// Load the user so role checks see current state, not token state.
		user, err := s.userRepo.GetByID(c.Context(), uint(userID))
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("User no longer exists"))
		}
		if !user.IsActive {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewAuthError("ACCOUNT_DEACTIVATED", "Account has been deactivated"))
		}

		// Store user ID and role in context
		c.Locals("userID", user.ID)
		c.Locals("userRole", user.Role)
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, user.ID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// NewApp builds the Fiber app with the settings every deployment needs:
// the JSON error handler (clients never see a text/plain 500) and the
// body size limit.
func (s *Server) NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:   "ForgeHub API",
		BodyLimit: 10 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := s.NewApp()
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	// Close database connection
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	// Close Redis connection
	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
