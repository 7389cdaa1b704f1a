package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "microfin-backend/internal/api/http"
	"microfin-backend/internal/config"
	firestorerepo "microfin-backend/internal/repository/firestore"
	"microfin-backend/internal/repository/postgres"

	"microfin-backend/internal/logger"
	"microfin-backend/internal/repository"
	"microfin-backend/internal/security"
	"microfin-backend/internal/service"
	"microfin-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Microfin Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "driver", cfg.Database.Driver)

	// Initialize Store
	store, closeStore, err := openStore(cfg)
	if err != nil {
		logger.Error("Failed to initialize store", "error", err)
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer closeStore()

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Email Service
	emailSvc := newEmailService(cfg)

	// Initialize Document Storage
	documents, err := storage.NewDocumentStore(cfg.Documents.UploadDir, cfg.Documents.MaxFileSize)
	if err != nil {
		logger.Error("Failed to initialize document storage", "error", err)
		log.Fatalf("Failed to initialize document storage: %v", err)
	}

	// Initialize Services
	authSvc := service.NewAuthService(store.Members, tokenManager)
	customerSvc := service.NewCustomerService(store.Customers, store.Members)
	loanSvc := service.NewLoanService(store.Loans, store.Customers, nil)
	paymentSvc := service.NewPaymentService(store.Loans, nil)
	notificationSvc := service.NewNotificationService(store.Notifications)
	memberSvc := service.NewMemberService(store.Members)
	approvalSvc := service.NewApprovalService(
		store.Approvals,
		store.Members,
		store.Notifications,
		paymentSvc,
		loanSvc,
		customerSvc,
		emailSvc,
		nil,
	)

	// Set up HTTP server
	router := httpapi.NewRouter(&httpapi.Services{
		Auth:          authSvc,
		Customers:     customerSvc,
		Loans:         loanSvc,
		Payments:      paymentSvc,
		Approvals:     approvalSvc,
		Members:       memberSvc,
		Notifications: notificationSvc,
		Documents:     documents,
		Tokens:        tokenManager,
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}

// openStore connects the configured persistence backend.
func openStore(cfg *config.Config) (*repository.Store, func(), error) {
	switch cfg.Database.Driver {
	case "firestore":
		logger.Info("Connecting to Firestore...", "project_id", cfg.Database.ProjectID)
		client, err := firestorerepo.NewClient(context.Background(), cfg.Database.ProjectID, cfg.Database.CredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Firestore connection established")
		return firestorerepo.NewStore(client), func() { client.Close() }, nil
	default:
		logger.Info("Connecting to Postgres...", "host", cfg.Database.Host, "port", cfg.Database.Port)
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			return nil, nil, err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("Database connection established")
		return postgres.NewStore(db), func() { db.Close() }, nil
	}
}

// newEmailService builds the configured mail backend.
func newEmailService(cfg *config.Config) service.EmailService {
	if cfg.Email.Provider == "sendgrid" {
		logger.Info("Using SendGrid email backend")
		return service.NewSendGridEmailService(cfg.Email.SendGrid.APIKey, cfg.Email.From, cfg.Email.FromName)
	}
	logger.Info("Using SMTP email backend", "host", cfg.Email.SMTP.Host, "port", cfg.Email.SMTP.Port)
	return service.NewSMTPEmailService(
		cfg.Email.SMTP.Host,
		cfg.Email.SMTP.Port,
		cfg.Email.SMTP.User,
		cfg.Email.SMTP.Password,
		cfg.Email.From,
		cfg.Email.FromName,
	)
}
