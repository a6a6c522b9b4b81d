package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"clinical_voice_service/internal/app"
	"clinical_voice_service/internal/domain/agents"
	"clinical_voice_service/internal/domain/events"
	"clinical_voice_service/internal/domain/guidelines"
	"clinical_voice_service/internal/domain/transcripts"
	"clinical_voice_service/internal/infrastructure/llm"
	"clinical_voice_service/internal/infrastructure/messaging"
	"clinical_voice_service/internal/infrastructure/persistence"
	"clinical_voice_service/internal/infrastructure/retrieval"
	"clinical_voice_service/internal/infrastructure/transcriptstore"
	"clinical_voice_service/internal/pkg/config"
	"clinical_voice_service/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// RegisterGlobalFlags attaches the persistent flags shared by every command.
func RegisterGlobalFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringP("config", "", "", "Path to the YAML configuration (defaults to $CONFIG_PATH, then configs/app.yaml)")
	rootCmd.PersistentFlags().StringP("log-level", "", config.LogLevelInfo, "Log level: info, debug, error, warning or critical")
}

func setupLogger(logLevel string) (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: logLevel,
		LogType:  config.LogTypeConsole,
		FilePath: "",
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

func loadAppConfig(configPath string) (*config.AppConfig, error) {
	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}
	if configPath == "" {
		configPath = "configs/app.yaml"
	}

	appConfig, err := config.InitializeAppConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	return appConfig, nil
}

// bootstrapFromFlags reads the persistent --config and --log-level flags and
// returns an initialized logger and configuration.
func bootstrapFromFlags(cmd *cobra.Command) (logger.Logger, *config.AppConfig, error) {
	logLevel, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log-level flag: %w", err)
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, fmt.Errorf("invalid config flag: %w", err)
	}

	loggerInstance, err := setupLogger(logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	appConfig, err := loadAppConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	return loggerInstance, appConfig, nil
}

// assistPipeline bundles the dispatch pipeline with the stores the commands
// need to release when they finish.
type assistPipeline struct {
	dispatcher  *app.Dispatcher
	transcripts transcripts.Store
	publisher   events.Publisher
	guidelines  guidelines.Repository
	chat        *llm.GroqClient
}

func (p *assistPipeline) close(log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := p.transcripts.Close(ctx); err != nil {
		log.Warn("Failed to close transcript store: ", err)
	}
	if err := p.publisher.Close(); err != nil {
		log.Warn("Failed to close event publisher: ", err)
	}
}

// newAssistPipeline wires the full dispatch pipeline the same way the REST
// API does: database, repositories, model client, retriever, agents, stores.
func newAssistPipeline(cfg *config.AppConfig, log logger.Logger) (*assistPipeline, error) {
	db, err := persistence.NewDBConnectionWithFallback(cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	if err := persistence.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

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

	guidelineRepo, err := persistence.NewGormGuidelineRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create guideline repository: %w", err)
	}

	groqClient, err := llm.NewGroqClient(&cfg.Groq, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create Groq client: %w", err)
	}

	retriever, err := retrieval.NewEmbeddingRetriever(guidelineRepo, groqClient, &cfg.Retrieval, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create guideline retriever: %w", err)
	}

	formulary := app.LoadFormulary(os.Getenv("FORMULARY_PATH"), log)
	metrics := app.NewMetricsRecorder()

	ehrAgent, err := app.NewEHRAgent(groqClient, patientRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create ehr agent: %w", err)
	}
	schedulingAgent, err := app.NewSchedulingAgent(groqClient, appointmentRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduling agent: %w", err)
	}
	medicationAgent, err := app.NewMedicationAgent(groqClient, formulary, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create medication agent: %w", err)
	}
	orderAgent, err := app.NewOrderAgent(groqClient, orderRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create order agent: %w", err)
	}
	clinicalDecisionAgent, err := app.NewClinicalDecisionAgent(groqClient, retriever, &cfg.Retrieval, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create clinical decision agent: %w", err)
	}
	analyticsAgent, err := app.NewAnalyticsAgent(groqClient, metrics, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create analytics agent: %w", err)
	}

	agentList := []agents.Agent{
		ehrAgent,
		schedulingAgent,
		medicationAgent,
		orderAgent,
		clinicalDecisionAgent,
		analyticsAgent,
	}

	transcriptStore, err := newTranscriptStore(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize transcript store: %w", err)
	}

	publisher, err := newPublisher(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize publisher: %w", err)
	}

	inspector := app.NewInspector(log)

	dispatcher, err := app.NewDispatcher(agentList, inspector, metrics, transcriptStore, publisher, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create dispatcher: %w", err)
	}

	return &assistPipeline{
		dispatcher:  dispatcher,
		transcripts: transcriptStore,
		publisher:   publisher,
		guidelines:  guidelineRepo,
		chat:        groqClient,
	}, nil
}

func newTranscriptStore(cfg *config.AppConfig, log logger.Logger) (transcripts.Store, error) {
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

func newPublisher(cfg *config.AppConfig, log logger.Logger) (events.Publisher, error) {
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
