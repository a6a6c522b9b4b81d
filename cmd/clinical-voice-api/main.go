// cmd/clinical-voice-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "clinical_voice_service/internal/api/rest/v1"
	"clinical_voice_service/internal/app"
	"clinical_voice_service/internal/domain/agents"
	"clinical_voice_service/internal/domain/ehr"
	"clinical_voice_service/internal/domain/events"
	"clinical_voice_service/internal/domain/guidelines"
	"clinical_voice_service/internal/domain/orders"
	"clinical_voice_service/internal/domain/scheduling"
	"clinical_voice_service/internal/domain/transcripts"
	"clinical_voice_service/internal/infrastructure/llm"
	"clinical_voice_service/internal/infrastructure/messaging"
	"clinical_voice_service/internal/infrastructure/persistence"
	"clinical_voice_service/internal/infrastructure/retrieval"
	"clinical_voice_service/internal/infrastructure/transcriptstore"
	"clinical_voice_service/internal/pkg/config"
	"clinical_voice_service/internal/pkg/logger"
	"github.com/gin-contrib/cors"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/app.yaml"
	}

	appConfig, err := config.InitializeAppConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&appConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(appConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.close(log)

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(appConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	dispatcher    *app.Dispatcher
	patients      ehr.PatientRepository
	records       ehr.MedicalRecordRepository
	prescriptions ehr.PrescriptionRepository
	appointments  scheduling.AppointmentRepository
	orders        orders.OrderRepository
	transcripts   transcripts.Store
	publisher     events.Publisher
}

func (d *appDependencies) close(log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := d.transcripts.Close(ctx); err != nil {
		log.Warn("Failed to close transcript store: ", err)
	}
	if err := d.publisher.Close(); err != nil {
		log.Warn("Failed to close event publisher: ", err)
	}
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.AppConfig, log logger.Logger) (*appDependencies, error) {
	// Initialize database
	db, err := persistence.NewDBConnectionWithFallback(cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := persistence.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Database migrations completed successfully")

	// Initialize repositories
	patientRepo, err := persistence.NewGormPatientRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create patient repository: %w", err)
	}

	appointmentRepo, err := persistence.NewGormAppointmentRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create appointment repository: %w", err)
	}

	orderRepo, err := persistence.NewGormOrderRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create order repository: %w", err)
	}

	recordRepo, err := persistence.NewGormMedicalRecordRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create medical record repository: %w", err)
	}

	prescriptionRepo, err := persistence.NewGormPrescriptionRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create prescription repository: %w", err)
	}

	guidelineRepo, err := persistence.NewGormGuidelineRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create guideline repository: %w", err)
	}

	// Initialize the model client and guideline retriever
	groqClient, err := llm.NewGroqClient(&cfg.Groq, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create Groq client: %w", err)
	}

	retriever, err := retrieval.NewEmbeddingRetriever(guidelineRepo, groqClient, &cfg.Retrieval, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create guideline retriever: %w", err)
	}

	// Initialize agents. The metrics recorder is shared between the
	// dispatcher and the analytics agent so reports reflect live counters.
	formulary := app.LoadFormulary(os.Getenv("FORMULARY_PATH"), log)
	metrics := app.NewMetricsRecorder()

	agentList, err := initializeAgents(groqClient, retriever, cfg, patientRepo, appointmentRepo, orderRepo, formulary, metrics, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize agents: %w", err)
	}

	// Initialize transcript store and event publisher
	transcriptStore, err := initializeTranscriptStore(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize transcript store: %w", err)
	}

	publisher, err := initializePublisher(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize publisher: %w", err)
	}

	// Initialize the dispatch pipeline
	inspector := app.NewInspector(log)

	dispatcher, err := app.NewDispatcher(agentList, inspector, metrics, transcriptStore, publisher, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create dispatcher: %w", err)
	}

	log.Info("Application dependencies initialized successfully")
	return &appDependencies{
		dispatcher:    dispatcher,
		patients:      patientRepo,
		records:       recordRepo,
		prescriptions: prescriptionRepo,
		appointments:  appointmentRepo,
		orders:        orderRepo,
		transcripts:   transcriptStore,
		publisher:     publisher,
	}, nil
}

// initializeAgents sets up every specialized agent behind the dispatcher
func initializeAgents(
	chat *llm.GroqClient,
	retriever guidelines.Retriever,
	cfg *config.AppConfig,
	patientRepo ehr.PatientRepository,
	appointmentRepo scheduling.AppointmentRepository,
	orderRepo orders.OrderRepository,
	formulary *app.Formulary,
	metrics *app.MetricsRecorder,
	log logger.Logger,
) ([]agents.Agent, error) {
	ehrAgent, err := app.NewEHRAgent(chat, patientRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create ehr agent: %w", err)
	}

	schedulingAgent, err := app.NewSchedulingAgent(chat, appointmentRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduling agent: %w", err)
	}

	medicationAgent, err := app.NewMedicationAgent(chat, formulary, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create medication agent: %w", err)
	}

	orderAgent, err := app.NewOrderAgent(chat, orderRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create order agent: %w", err)
	}

	clinicalDecisionAgent, err := app.NewClinicalDecisionAgent(chat, retriever, &cfg.Retrieval, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create clinical decision agent: %w", err)
	}

	analyticsAgent, err := app.NewAnalyticsAgent(chat, metrics, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create analytics agent: %w", err)
	}

	return []agents.Agent{
		ehrAgent,
		schedulingAgent,
		medicationAgent,
		orderAgent,
		clinicalDecisionAgent,
		analyticsAgent,
	}, nil
}

// initializeTranscriptStore tiers MongoDB over the JSON file fallback
func initializeTranscriptStore(cfg *config.AppConfig, log logger.Logger) (transcripts.Store, error) {
	fileStore, err := transcriptstore.NewFileStore(cfg.Mongo.FallbackDir, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create file transcript store: %w", err)
	}

	if !cfg.Mongo.Enabled {
		return fileStore, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoStore, err := transcriptstore.NewMongoStore(ctx, &cfg.Mongo, log)
	if err != nil {
		log.Warn("MongoDB unavailable, falling back to file transcript store: ", err)
		return fileStore, nil
	}

	return transcriptstore.NewTieredStore(mongoStore, fileStore, log), nil
}

// initializePublisher wires the Kafka producer when brokers are configured
func initializePublisher(cfg *config.AppConfig, log logger.Logger) (events.Publisher, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		log.Info("No Kafka brokers configured, encounter events disabled")
		return messaging.NewNoopPublisher(), nil
	}

	publisher, err := messaging.NewKafkaPublisher(&cfg.Kafka, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
	}
	return publisher, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.AppConfig, deps *appDependencies, log logger.Logger) error {
	// Setup router
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup API routes
	v1.SetupRoutes(r,
		deps.dispatcher,
		deps.patients,
		deps.records,
		deps.prescriptions,
		deps.appointments,
		deps.orders,
		deps.transcripts,
		log,
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal %v, initiating graceful shutdown", sig)
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
