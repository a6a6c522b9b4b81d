package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"clinical_voice_service/internal/domain/transcripts"
	"clinical_voice_service/internal/infrastructure/transcriptstore"
	"clinical_voice_service/internal/pkg/config"
	"clinical_voice_service/internal/pkg/logger"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

// TranscriptCommandHandler encapsulates logic for exporting stored
// transcripts via CLI.
type TranscriptCommandHandler struct {
	store  transcripts.Store
	logger logger.Logger
}

// NewTranscriptCommandHandler initializes and returns a
// TranscriptCommandHandler instance with a configured logger and store.
// Called from the command Run body so registration stays side-effect free.
func NewTranscriptCommandHandler(cmd *cobra.Command) (*TranscriptCommandHandler, error) {
	loggerInstance, appConfig, err := bootstrapFromFlags(cmd)
	if err != nil {
		return nil, err
	}

	store, err := newTranscriptStoreForExport(appConfig, loggerInstance)
	if err != nil {
		return nil, err
	}

	return &TranscriptCommandHandler{
		store:  store,
		logger: loggerInstance,
	}, nil
}

func newTranscriptStoreForExport(cfg *config.AppConfig, log logger.Logger) (transcripts.Store, error) {
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
		log.Warn("MongoDB unavailable, exporting from file transcript store: ", err)
		return fileStore, nil
	}

	return transcriptstore.NewTieredStore(mongoStore, fileStore, log), nil
}

// ExportTranscriptsCmd writes stored transcripts as a JSON document, newest
// first
func (commandHandler *TranscriptCommandHandler) ExportTranscriptsCmd(cmd *cobra.Command, _ []string) {
	outputFilePath, err := cmd.Flags().GetString("output-file")
	if err != nil {
		commandHandler.logger.Error("invalid output-file flag ", err)
		return
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		commandHandler.logger.Error("invalid limit flag ", err)
		return
	}

	defer func() {
		if err := commandHandler.store.Close(cmd.Context()); err != nil {
			commandHandler.logger.Warn("Failed to close transcript store: ", err)
		}
	}()

	stored, err := commandHandler.store.List(cmd.Context(), limit)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	encoded, err := sonic.MarshalIndent(stored, "", "  ")
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if outputFilePath == "" {
		fmt.Println(string(encoded))
		return
	}

	if err := os.WriteFile(outputFilePath, encoded, 0600); err != nil {
		commandHandler.logger.Error(err)
		return
	}
	commandHandler.logger.Info("Exported ", len(stored), " transcripts to ", outputFilePath)
}

// InitTranscriptCommands registers the transcript command group. The store is
// built inside the Run body, not at registration.
func InitTranscriptCommands(rootCmd *cobra.Command) error {
	var exportTranscriptsCmd = &cobra.Command{
		Use:   "export-transcripts",
		Short: "Export stored transcripts as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := NewTranscriptCommandHandler(cmd)
			if err != nil {
				return fmt.Errorf("failed to create transcript command handler: %w", err)
			}
			handler.ExportTranscriptsCmd(cmd, args)
			return nil
		},
	}
	exportTranscriptsCmd.Flags().StringP("output-file", "", "", "Path to the JSON export file (stdout when omitted)")
	exportTranscriptsCmd.Flags().IntP("limit", "", 0, "Maximum number of transcripts to export (0 exports all)")
	rootCmd.AddCommand(exportTranscriptsCmd)

	return nil
}
