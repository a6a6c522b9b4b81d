package commands

import (
	"fmt"

	"clinical_voice_service/internal/domain/guidelines"
	"clinical_voice_service/internal/infrastructure/llm"
	"clinical_voice_service/internal/infrastructure/persistence"
	"clinical_voice_service/internal/infrastructure/retrieval"
	"clinical_voice_service/internal/pkg/config"
	"clinical_voice_service/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// GuidelineCommandHandler encapsulates logic for managing the clinical
// guideline knowledge base via CLI.
type GuidelineCommandHandler struct {
	config    *config.AppConfig
	indexer   *retrieval.Indexer
	retriever guidelines.Retriever
	logger    logger.Logger
}

// NewGuidelineCommandHandler initializes and returns a GuidelineCommandHandler
// instance with a configured logger, indexer and retriever. Called from the
// command Run bodies so registration stays side-effect free.
func NewGuidelineCommandHandler(cmd *cobra.Command) (*GuidelineCommandHandler, error) {
	loggerInstance, appConfig, err := bootstrapFromFlags(cmd)
	if err != nil {
		return nil, err
	}

	db, err := persistence.NewDBConnectionWithFallback(appConfig.Database, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	if err := persistence.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	guidelineRepo, err := persistence.NewGormGuidelineRepository(db, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create guideline repository: %w", err)
	}

	groqClient, err := llm.NewGroqClient(&appConfig.Groq, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create Groq client: %w", err)
	}

	retriever, err := retrieval.NewEmbeddingRetriever(guidelineRepo, groqClient, &appConfig.Retrieval, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create guideline retriever: %w", err)
	}

	return &GuidelineCommandHandler{
		config:    appConfig,
		indexer:   retrieval.NewIndexer(guidelineRepo, groqClient, loggerInstance),
		retriever: retriever,
		logger:    loggerInstance,
	}, nil
}

// IndexGuidelinesCmd ingests every guideline document under a directory into
// the knowledge base
func (commandHandler *GuidelineCommandHandler) IndexGuidelinesCmd(cmd *cobra.Command, _ []string) {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		commandHandler.logger.Error("invalid dir flag ", err)
		return
	}

	count, err := commandHandler.indexer.IndexDirectory(cmd.Context(), dir)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Indexed ", count, " guideline chunks from ", dir)
}

// QueryGuidelinesCmd ranks stored guideline chunks against a question and
// prints the best matches with their scores
func (commandHandler *GuidelineCommandHandler) QueryGuidelinesCmd(cmd *cobra.Command, _ []string) {
	question, err := cmd.Flags().GetString("question")
	if err != nil {
		commandHandler.logger.Error("invalid question flag ", err)
		return
	}

	scored, err := commandHandler.retriever.Query(cmd.Context(), question, commandHandler.config.Retrieval.TopK)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if len(scored) == 0 {
		fmt.Println("No relevant guideline chunks found.")
		return
	}

	for _, chunk := range scored {
		fmt.Printf("[%.3f] %s\n%s\n\n", chunk.Score, chunk.Chunk.Source, chunk.Chunk.Content)
	}
}

// InitGuidelineCommands registers the guideline command group. The database
// and model client are built inside each Run body, not at registration.
func InitGuidelineCommands(rootCmd *cobra.Command) error {
	var indexGuidelinesCmd = &cobra.Command{
		Use:   "index-guidelines",
		Short: "Index guideline documents into the knowledge base",
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := NewGuidelineCommandHandler(cmd)
			if err != nil {
				return fmt.Errorf("failed to create guideline command handler: %w", err)
			}
			handler.IndexGuidelinesCmd(cmd, args)
			return nil
		},
	}
	indexGuidelinesCmd.Flags().StringP("dir", "", "", "Directory containing .txt or .md guideline documents")
	rootCmd.AddCommand(indexGuidelinesCmd)

	var queryGuidelinesCmd = &cobra.Command{
		Use:   "query-guidelines",
		Short: "Query the guideline knowledge base",
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := NewGuidelineCommandHandler(cmd)
			if err != nil {
				return fmt.Errorf("failed to create guideline command handler: %w", err)
			}
			handler.QueryGuidelinesCmd(cmd, args)
			return nil
		},
	}
	queryGuidelinesCmd.Flags().StringP("question", "", "", "Question to rank guideline chunks against")
	rootCmd.AddCommand(queryGuidelinesCmd)

	return nil
}
