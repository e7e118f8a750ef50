package main

import (
	"context"
	"log"

	firebaseAuth "firebase.google.com/go/v4/auth"
	"github.com/framez-app/backend/internal/router"
	"github.com/framez-app/backend/pkg/config"
	"github.com/framez-app/backend/pkg/firebase"
	"github.com/framez-app/backend/pkg/storage"
	"github.com/framez-app/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	// Initialize Firebase when credentials are configured; without them the
	// firebase-login exchange is disabled and local auth still works.
	var authClient *firebaseAuth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		authClient = firebaseApp.AuthClient
	} else {
		log.Println("FIREBASE_CREDENTIALS_PATH not set, firebase-login disabled.")
	}

	// Initialize media storage
	storageService, err := storage.NewService(storage.Config{
		UseS3:     cfg.UploadUseS3,
		S3Bucket:  cfg.UploadS3Bucket,
		AWSRegion: cfg.UploadRegion,
		LocalDir:  cfg.UploadLocalDir,
		BaseURL:   cfg.UploadBaseURL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize media storage: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	router.SetupRoutes(e, cfg, db.Postgres, db.Mongo, authClient, storageService)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
