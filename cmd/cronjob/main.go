package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"microfin-backend/internal/config"
	"microfin-backend/internal/jobs"
	"microfin-backend/internal/logger"
	"microfin-backend/internal/repository"
	firestorerepo "microfin-backend/internal/repository/firestore"
	"microfin-backend/internal/repository/postgres"
	"microfin-backend/internal/scheduler"
	"microfin-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'mark-overdue-loans', 'all-nightly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Microfin Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Store
	store, closeStore, err := openStore(cfg)
	if err != nil {
		logger.Error("Failed to initialize store", "error", err)
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer closeStore()

	// Initialize Services
	emailService := newEmailService(cfg)

	jobServices := &jobs.Services{
		Email: emailService,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(store, jobServices, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "mark-overdue-loans":
		jobRunner.MarkOverdueLoans()
	case "sweep-completed-loans":
		jobRunner.SweepCompletedLoans()
	case "send-collection-summary":
		jobRunner.SendCollectionSummary()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		log.Fatalf("Unknown job: %s", jobName)
	}
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
		return postgres.NewStore(db), func() { db.Close() }, nil
	}
}

// newEmailService builds the configured mail backend.
func newEmailService(cfg *config.Config) service.EmailService {
	if cfg.Email.Provider == "sendgrid" {
		return service.NewSendGridEmailService(cfg.Email.SendGrid.APIKey, cfg.Email.From, cfg.Email.FromName)
	}
	return service.NewSMTPEmailService(
		cfg.Email.SMTP.Host,
		cfg.Email.SMTP.Port,
		cfg.Email.SMTP.User,
		cfg.Email.SMTP.Password,
		cfg.Email.From,
		cfg.Email.FromName,
	)
}
