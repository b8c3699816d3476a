package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hirewise/hirewise/internal/calendar"
	"github.com/hirewise/hirewise/internal/config"
	"github.com/hirewise/hirewise/internal/database"
	"github.com/hirewise/hirewise/internal/gemini"
	"github.com/hirewise/hirewise/internal/handler"
	"github.com/hirewise/hirewise/internal/keypool"
	"github.com/hirewise/hirewise/internal/mailbox"
	"github.com/hirewise/hirewise/internal/pdf"
	"github.com/hirewise/hirewise/internal/repository"
	"github.com/hirewise/hirewise/internal/routes"
	"github.com/hirewise/hirewise/internal/service"
	"github.com/hirewise/hirewise/internal/watcher"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close(db)

	log.Println("Database connected successfully")

	// Run migrations
	log.Println("Running database migrations...")
	if err := database.RunMigrations(db); err != nil {
		return err
	}
	log.Println("Migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	credentialRepo := repository.NewCredentialRepository(db)
	jobPostRepo := repository.NewJobPostRepository(db)
	candidateRepo := repository.NewCandidateRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	slotRepo := repository.NewSlotRepository(db)

	// Initialize clients
	gateway := mailbox.NewGateway(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI, credentialRepo)
	llmClient := gemini.NewClient(cfg.GeminiModel)
	calendarClient := calendar.NewClient()
	extractor := pdf.NewExtractor()
	keys := keypool.New(cfg.GeminiAPIKeys, userRepo)

	// Initialize ingestion pipeline
	processor := service.NewIngestProcessor(gateway, extractor, llmClient, candidateRepo, jobPostRepo, keys, cfg.LookbackWindow)
	w := watcher.New(cfg.CycleInterval, userRepo, processor)

	// Initialize HTTP server
	router := gin.Default()
	routes.Register(router, cfg.JWTSecret, routes.Handlers{
		Auth:       handler.NewAuthHandler(userRepo, cfg.JWTSecret, cfg.GoogleClientID),
		Home:       handler.NewHomeHandler(userRepo, jobPostRepo, keys),
		Email:      handler.NewEmailHandler(gateway, userRepo, processor),
		JobPosts:   handler.NewJobPostHandler(jobPostRepo, userRepo, llmClient, keys),
		Resumes:    handler.NewResumeHandler(userRepo, extractor, processor),
		Candidates: handler.NewCandidateHandler(userRepo, candidateRepo),
		Reviews:    handler.NewReviewHandler(userRepo, candidateRepo, jobPostRepo, reviewRepo, llmClient, keys),
		Interviews: handler.NewInterviewHandler(userRepo, candidateRepo, jobPostRepo, slotRepo, gateway, calendarClient, cfg.FrontendURL),
	})

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start watcher and HTTP server in goroutines
	errChan := make(chan error, 2)
	go func() {
		errChan <- w.Start(ctx)
	}()
	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		log.Println("Shutdown signal received")
		cancel()

		// Wait for graceful shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeout)*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP shutdown error: %v", err)
		}

		select {
		case <-shutdownCtx.Done():
			log.Println("Shutdown timeout exceeded")
		case err := <-errChan:
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("Watcher error: %v", err)
			}
		}

		log.Println("Application stopped")
		return nil

	case err := <-errChan:
		return err
	}
}
