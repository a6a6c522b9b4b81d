package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// AppConfig aggregates every settings group for the assistant. The REST API
// and the CLI share the same configuration file layout.
type AppConfig struct {
	Port      string            `mapstructure:"port"`
	Logger    LoggerSettings    `mapstructure:"logger"`
	Database  DatabaseSettings  `mapstructure:"database"`
	Mongo     MongoSettings     `mapstructure:"mongo"`
	Groq      GroqSettings      `mapstructure:"groq"`
	Audio     AudioSettings     `mapstructure:"audio"`
	STT       STTSettings       `mapstructure:"stt"`
	Kafka     KafkaSettings     `mapstructure:"kafka"`
	Archive   ArchiveSettings   `mapstructure:"archive"`
	Retrieval RetrievalSettings `mapstructure:"retrieval"`
}

// Validate checks every settings group that is unconditionally required.
// Capture and transcriber settings are validated by the components that use
// them, since the REST API runs without a microphone.
func (c *AppConfig) Validate() error {
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Mongo.Validate(); err != nil {
		return err
	}
	if err := c.Groq.Validate(); err != nil {
		return err
	}
	if err := c.Kafka.Validate(); err != nil {
		return err
	}
	if err := c.Archive.Validate(); err != nil {
		return err
	}
	return c.Retrieval.Validate()
}

// InitializeAppConfig reads the YAML configuration at configPath, applies the
// documented environment overrides (GROQ_API_KEY, GROQ_MODEL, POSTGRES_*,
// MONGO_*) and validates the result.
func InitializeAppConfig(configPath string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("database.type", PostgresDbType)
	v.SetDefault("mongo.fallback_dir", "data/transcripts")
	v.SetDefault("mongo.collection", "transcriptions")
	v.SetDefault("groq.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("groq.model", DefaultGroqModel)
	v.SetDefault("groq.temperature", 0.1)
	v.SetDefault("groq.max_tokens", 2048)
	v.SetDefault("audio.sample_rate", 16000)
	v.SetDefault("audio.frame_size", 320)
	v.SetDefault("audio.silence_rms", 0.015)
	v.SetDefault("audio.silence_window_ms", 600)
	v.SetDefault("audio.max_seconds", 30)
	v.SetDefault("stt.language", "en")
	v.SetDefault("retrieval.top_k", 4)
	v.SetDefault("retrieval.min_confidence", 0.2)
}

// applyEnvOverrides wires the environment variables the original deployment
// documented. Environment always wins over the file.
func applyEnvOverrides(cfg *AppConfig) {
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		cfg.Groq.APIKey = key
	}
	if model := os.Getenv("GROQ_MODEL"); model != "" {
		cfg.Groq.Model = model
	}

	if host := os.Getenv("POSTGRES_HOST"); host != "" {
		port := os.Getenv("POSTGRES_PORT")
		if port == "" {
			port = "5432"
		}
		db := os.Getenv("POSTGRES_DB")
		if db == "" {
			db = "clinical_ehr"
		}
		user := os.Getenv("POSTGRES_USER")
		if user == "" {
			user = "postgres"
		}
		cfg.Database.Type = PostgresDbType
		cfg.Database.Name = db
		cfg.Database.DSN = postgresDSN(host, port, db, user, os.Getenv("POSTGRES_PASSWORD"))
	}

	if host := os.Getenv("MONGO_HOST"); host != "" {
		port := os.Getenv("MONGO_PORT")
		if port == "" {
			port = "27017"
		}
		cfg.Mongo.Enabled = true
		cfg.Mongo.URI = fmt.Sprintf("mongodb://%s:%s", host, port)
		if db := os.Getenv("MONGO_DB"); db != "" {
			cfg.Mongo.Database = db
		}
		if coll := os.Getenv("MONGO_COLLECTION"); coll != "" {
			cfg.Mongo.Collection = coll
		}
	}
}

func postgresDSN(host, port, dbname, user, password string) string {
	parts := []string{
		"host=" + host,
		"port=" + port,
		"dbname=" + dbname,
		"user=" + user,
		"sslmode=disable",
	}
	if password != "" {
		parts = append(parts, "password="+password)
	}
	return strings.Join(parts, " ")
}
