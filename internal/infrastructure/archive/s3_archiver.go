package archive

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	appconfig "clinical_voice_service/internal/pkg/config"
	"clinical_voice_service/internal/pkg/logger"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Archiver uploads captured recordings to object storage.
type Archiver interface {
	// ArchiveRecording stores a WAV recording and returns its object key.
	ArchiveRecording(ctx context.Context, encounterID string, wav []byte) (string, error)
}

type s3Archiver struct {
	client *s3.Client
	bucket string
	prefix string
	logger logger.Logger
}

// NewS3Archiver builds an archiver from the ambient AWS configuration. A nil
// Archiver with no error means archival is disabled (no bucket configured).
func NewS3Archiver(ctx context.Context, settings *appconfig.ArchiveSettings, log logger.Logger) (Archiver, error) {
	if settings.Bucket == "" {
		log.Info("Recording archival disabled, no bucket configured")
		return nil, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.New(s3.Options{
		Region:       cfg.Region,
		Credentials:  cfg.Credentials,
		HTTPClient:   cfg.HTTPClient,
		BaseEndpoint: cfg.BaseEndpoint,
		UsePathStyle: true,
	})

	return &s3Archiver{
		client: client,
		bucket: settings.Bucket,
		prefix: settings.Prefix,
		logger: log,
	}, nil
}

func (a *s3Archiver) ArchiveRecording(ctx context.Context, encounterID string, wav []byte) (string, error) {
	key := path.Join(a.prefix, fmt.Sprintf("%s_%s.wav", encounterID, time.Now().UTC().Format("20060102_150405")))

	contentType := "audio/wav"
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &a.bucket,
		Key:         &key,
		Body:        bytes.NewReader(wav),
		ContentType: &contentType,
		ACL:         types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload recording: %w", err)
	}

	a.logger.Info("Archived recording to s3://", a.bucket, "/", key)
	return key, nil
}
