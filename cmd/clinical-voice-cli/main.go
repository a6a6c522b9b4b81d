// Package main is the entry point for the clinical-voice-cli application.
// It initializes the root command and registers sub-commands for voice
// encounters, typed questions, guideline indexing and transcript export,
// then executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "clinical_voice_service/cmd/clinical-voice-cli/internal/commands"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	// Secrets like GROQ_API_KEY are read from the environment; a local .env
	// file is honored when present.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "clinical-voice-cli",
		Short: "Clinical voice assistant CLI tool",
		Long: `clinical-voice-cli is a command-line tool for hands-free clinical workflows.
Supports push-to-talk voice encounters, typed questions, guideline knowledge
base indexing and transcript export.

The following environment variables configure external services:
- GROQ_API_KEY (required for any command that reaches the model)
- CONFIG_PATH (path to the YAML configuration when --config is not given)
- FORMULARY_PATH (optional medication formulary document)
If MongoDB or Kafka are unreachable the pipeline degrades to local storage.`,
	}

	// Register the persistent --config and --log-level flags
	commands.RegisterGlobalFlags(rootCmd)

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	// Execute root command ONCE after all commands are registered
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	// Register encounter commands (listen, ask)
	if err := commands.InitEncounterCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize encounter commands: %w", err)
	}

	// Register guideline knowledge base commands
	if err := commands.InitGuidelineCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize guideline commands: %w", err)
	}

	// Register transcript commands
	if err := commands.InitTranscriptCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize transcript commands: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	// Set log flags for better error messages
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// Ensure proper exit codes on errors
	log.SetOutput(os.Stderr)
}
