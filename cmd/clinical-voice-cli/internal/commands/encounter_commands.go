package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"clinical_voice_service/internal/infrastructure/archive"
	"clinical_voice_service/internal/infrastructure/audio"
	"clinical_voice_service/internal/infrastructure/stt"
	"clinical_voice_service/internal/infrastructure/tts"
	"clinical_voice_service/internal/pkg/config"
	"clinical_voice_service/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// EncounterCommandHandler encapsulates logic for running voice and typed
// encounters via CLI.
type EncounterCommandHandler struct {
	config   *config.AppConfig
	pipeline *assistPipeline
	logger   logger.Logger
}

// NewEncounterCommandHandler initializes and returns an EncounterCommandHandler
// instance with a configured logger and the full dispatch pipeline. It is
// called from the command Run bodies so that registration and --help never
// require a reachable configuration or model credentials.
func NewEncounterCommandHandler(cmd *cobra.Command) (*EncounterCommandHandler, error) {
	loggerInstance, appConfig, err := bootstrapFromFlags(cmd)
	if err != nil {
		return nil, err
	}

	pipeline, err := newAssistPipeline(appConfig, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to build assist pipeline: %w", err)
	}

	return &EncounterCommandHandler{
		config:   appConfig,
		pipeline: pipeline,
		logger:   loggerInstance,
	}, nil
}

// ListenCmd captures microphone audio, transcribes it locally and dispatches
// the utterance. With --loop the capture cycle repeats until interrupted.
func (commandHandler *EncounterCommandHandler) ListenCmd(cmd *cobra.Command, _ []string) {
	loop, err := cmd.Flags().GetBool("loop")
	if err != nil {
		commandHandler.logger.Error("invalid loop flag ", err)
		return
	}
	speak, err := cmd.Flags().GetBool("speak")
	if err != nil {
		commandHandler.logger.Error("invalid speak flag ", err)
		return
	}

	defer commandHandler.pipeline.close(commandHandler.logger)

	recorder, err := audio.NewRecorder(&commandHandler.config.Audio, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			commandHandler.logger.Warn("Failed to close recorder: ", err)
		}
	}()

	transcriber, err := stt.NewWhisperTranscriber(&commandHandler.config.STT, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer func() {
		if err := transcriber.Close(); err != nil {
			commandHandler.logger.Warn("Failed to close transcriber: ", err)
		}
	}()

	ctx := cmd.Context()
	for {
		if err := commandHandler.runVoiceTurn(ctx, recorder, transcriber, speak); err != nil {
			commandHandler.logger.Error(err)
			return
		}
		if !loop {
			return
		}
	}
}

func (commandHandler *EncounterCommandHandler) runVoiceTurn(ctx context.Context, recorder *audio.Recorder, transcriber stt.Transcriber, speak bool) error {
	if err := tts.ReadyCue(); err != nil {
		commandHandler.logger.Warn("Ready cue failed: ", err)
	}

	samples, err := recorder.Record(ctx)
	if err != nil {
		return fmt.Errorf("recording failed: %w", err)
	}
	if len(samples) == 0 {
		commandHandler.logger.Info("No speech captured")
		return nil
	}

	text, err := transcriber.Transcribe(ctx, samples)
	if err != nil {
		return fmt.Errorf("transcription failed: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		commandHandler.logger.Info("Empty transcription, skipping dispatch")
		return nil
	}
	commandHandler.logger.Info("Transcribed: ", text)

	result, err := commandHandler.pipeline.dispatcher.Dispatch(ctx, text)
	if err != nil {
		return fmt.Errorf("dispatch failed: %w", err)
	}

	commandHandler.archiveRecording(ctx, result.EncounterID, samples)

	fmt.Println(result.Reply)
	if speak {
		if err := tts.Speak(result.Reply); err != nil {
			commandHandler.logger.Warn("Speech synthesis failed: ", err)
		}
	}
	return nil
}

// archiveRecording writes the captured segment to the recording directory and
// uploads it to S3 when a bucket is configured. Failures never abort the
// encounter.
func (commandHandler *EncounterCommandHandler) archiveRecording(ctx context.Context, encounterID string, samples []float32) {
	dir := commandHandler.config.Audio.RecordingDir
	if dir == "" {
		return
	}

	wavPath, err := audio.WriteWAV(dir, samples, commandHandler.config.Audio.SampleRate)
	if err != nil {
		commandHandler.logger.Warn("Failed to write recording: ", err)
		return
	}
	commandHandler.logger.Info("Recording saved to ", wavPath)

	if commandHandler.config.Archive.Bucket == "" {
		return
	}

	archiver, err := archive.NewS3Archiver(ctx, &commandHandler.config.Archive, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Warn("Failed to create S3 archiver: ", err)
		return
	}

	wavBytes, err := os.ReadFile(filepath.Clean(wavPath))
	if err != nil {
		commandHandler.logger.Warn("Failed to read recording for archival: ", err)
		return
	}

	location, err := archiver.ArchiveRecording(ctx, encounterID, wavBytes)
	if err != nil {
		commandHandler.logger.Warn("Failed to archive recording: ", err)
		return
	}
	commandHandler.logger.Info("Recording archived to ", location)
}

// AskCmd dispatches a typed utterance through the same pipeline the voice
// path uses.
func (commandHandler *EncounterCommandHandler) AskCmd(cmd *cobra.Command, _ []string) {
	text, err := cmd.Flags().GetString("text")
	if err != nil {
		commandHandler.logger.Error("invalid text flag ", err)
		return
	}

	defer commandHandler.pipeline.close(commandHandler.logger)

	result, err := commandHandler.pipeline.dispatcher.Dispatch(cmd.Context(), text)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	fmt.Println(result.Reply)
}

// InitEncounterCommands registers the encounter command group. The dispatch
// pipeline is built inside each Run body, not at registration.
func InitEncounterCommands(rootCmd *cobra.Command) error {
	var listenCmd = &cobra.Command{
		Use:   "listen",
		Short: "Capture a voice utterance and dispatch it",
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := NewEncounterCommandHandler(cmd)
			if err != nil {
				return fmt.Errorf("failed to create encounter command handler: %w", err)
			}
			handler.ListenCmd(cmd, args)
			return nil
		},
	}
	listenCmd.Flags().BoolP("loop", "", false, "Keep listening for utterances until interrupted")
	listenCmd.Flags().BoolP("speak", "", true, "Speak the reply through the speech synthesizer")
	rootCmd.AddCommand(listenCmd)

	var askCmd = &cobra.Command{
		Use:   "ask",
		Short: "Dispatch a typed utterance",
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := NewEncounterCommandHandler(cmd)
			if err != nil {
				return fmt.Errorf("failed to create encounter command handler: %w", err)
			}
			handler.AskCmd(cmd, args)
			return nil
		},
	}
	askCmd.Flags().StringP("text", "", "", "The utterance to dispatch")
	rootCmd.AddCommand(askCmd)

	return nil
}
