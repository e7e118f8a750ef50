package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/framez-app/backend/internal/handlers"
	"github.com/framez-app/backend/internal/middleware"
	"github.com/framez-app/backend/internal/models"
	"github.com/framez-app/backend/internal/repositories"
	"github.com/framez-app/backend/internal/services"
	"github.com/framez-app/backend/pkg/config"
	"github.com/framez-app/backend/pkg/metrics"
	"github.com/framez-app/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(metrics.Middleware())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies.
// mgClient and firebaseAuthClient may be nil; the features backed by them
// degrade instead of failing startup.
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client, storageService *storage.Service) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.CommentLike{},
		&models.Follow{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check and metrics - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	commentLikeRepo := repositories.NewPostgresCommentLikeRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)

	var notificationRepo repositories.NotificationRepository
	if mgClient != nil {
		notificationRepo = repositories.NewMongoNotificationRepository(mgClient.Database("framez"))
	}

	// --- Initialize Services ---
	userService := services.NewUserService(userRepo)
	postService := services.NewPostService(pgdb, postRepo, commentRepo, likeRepo, commentLikeRepo, userRepo)
	commentService := services.NewCommentService(pgdb, commentRepo, postRepo, commentLikeRepo, userRepo)
	engagementService := services.NewEngagementService(pgdb, userRepo, postRepo, commentRepo, likeRepo, commentLikeRepo, followRepo)
	notificationService := services.NewNotificationService(notificationRepo)
	reconcileService := services.NewReconcileService(pgdb, commentRepo, likeRepo, commentLikeRepo, followRepo)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, userService, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- API routes (JWT claims extracted when present) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// User profile routes
	userHandler := handlers.NewUserHandler(userService)
	userHandler.RegisterUserRoutes(api)
	log.Println("User profile routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postService)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentService, postService, userService, notificationService)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Like and follow routes
	engagementHandler := handlers.NewEngagementHandler(engagementService, postService, userService, notificationService)
	engagementHandler.RegisterEngagementRoutes(api)
	log.Println("Engagement routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	// Media upload routes
	if storageService != nil {
		mediaHandler := handlers.NewMediaHandler(storageService)
		mediaHandler.RegisterMediaRoutes(api)
		log.Println("Media routes configured.")
	}

	// Counter reconciliation (operational)
	reconcileHandler := handlers.NewReconcileHandler(reconcileService)
	reconcileHandler.RegisterReconcileRoutes(api)
	log.Println("Reconcile routes configured.")
}
