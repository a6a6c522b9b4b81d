package transcriptstore

import (
	"context"
	"fmt"
	"time"

	"clinical_voice_service/internal/domain/transcripts"
	"clinical_voice_service/internal/pkg/config"
	"clinical_voice_service/internal/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     logger.Logger
}

type transcriptDocument struct {
	Text      string                 `bson:"text"`
	Timestamp time.Time              `bson:"timestamp"`
	Metadata  map[string]interface{} `bson:"metadata,omitempty"`
}

// NewMongoStore connects to MongoDB and returns a transcript store backed by
// the configured collection. The connection is verified with a ping so a dead
// server fails here rather than on the first save.
func NewMongoStore(ctx context.Context, settings *config.MongoSettings, log logger.Logger) (transcripts.Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(settings.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &mongoStore{
		client:     client,
		collection: client.Database(settings.Database).Collection(settings.Collection),
		logger:     log,
	}, nil
}

func (s *mongoStore) Save(ctx context.Context, transcript *transcripts.Transcript) error {
	if err := transcript.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	doc := transcriptDocument{
		Text:      transcript.Text,
		Timestamp: transcript.Timestamp,
		Metadata:  transcript.Metadata,
	}
	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert transcript: %w", err)
	}

	s.logger.Info("Saved transcript to MongoDB")
	return nil
}

func (s *mongoStore) List(ctx context.Context, limit int) ([]*transcripts.Transcript, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}

	cursor, err := s.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query transcripts: %w", err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var out []*transcripts.Transcript
	for cursor.Next(ctx) {
		var doc transcriptDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode transcript: %w", err)
		}
		out = append(out, &transcripts.Transcript{
			Text:      doc.Text,
			Timestamp: doc.Timestamp,
			Metadata:  doc.Metadata,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transcripts: %w", err)
	}

	return out, nil
}

func (s *mongoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	return nil
}
