//go:build unit
// +build unit

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validConfigYaml = `
port: "9090"
logger:
  log_level: info
  log_type: console
database:
  type: sqlite
  dsn: data/ehr.db
mongo:
  enabled: false
  fallback_dir: data/transcripts
groq:
  api_key: gsk_test
retrieval:
  top_k: 4
`

func TestInitializeAppConfig(t *testing.T) {
	path := writeConfigFile(t, validConfigYaml)

	cfg, err := InitializeAppConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, SqliteDbType, cfg.Database.Type)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.Groq.BaseURL)
	assert.Equal(t, DefaultGroqModel, cfg.Groq.Model)
	assert.Equal(t, float32(0.1), cfg.Groq.Temperature)
	assert.Equal(t, 2048, cfg.Groq.MaxTokens)
	assert.Equal(t, 16000, cfg.Audio.SampleRate)
	assert.Equal(t, 0.015, cfg.Audio.SilenceRMS)
	assert.Equal(t, 4, cfg.Retrieval.TopK)
}

func TestInitializeAppConfigMissingFile(t *testing.T) {
	_, err := InitializeAppConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInitializeAppConfigInvalidSettings(t *testing.T) {
	path := writeConfigFile(t, `
logger:
  log_level: info
  log_type: console
database:
  type: mysql
  dsn: root@tcp(localhost:3306)/ehr
mongo:
  fallback_dir: data/transcripts
groq:
  api_key: gsk_test
`)

	_, err := InitializeAppConfig(path)
	assert.Error(t, err)
}

func TestInitializeAppConfigEnvOverrides(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_from_env")
	t.Setenv("GROQ_MODEL", "llama3-8b-8192")
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("POSTGRES_PORT", "5433")
	t.Setenv("POSTGRES_DB", "ehr_prod")
	t.Setenv("POSTGRES_USER", "clinical")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("MONGO_HOST", "mongo.internal")
	t.Setenv("MONGO_PORT", "27018")
	t.Setenv("MONGO_DB", "assistant_prod")

	path := writeConfigFile(t, validConfigYaml)

	cfg, err := InitializeAppConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "gsk_from_env", cfg.Groq.APIKey)
	assert.Equal(t, "llama3-8b-8192", cfg.Groq.Model)

	assert.Equal(t, PostgresDbType, cfg.Database.Type)
	assert.Equal(t, "ehr_prod", cfg.Database.Name)
	assert.Contains(t, cfg.Database.DSN, "host=db.internal")
	assert.Contains(t, cfg.Database.DSN, "port=5433")
	assert.Contains(t, cfg.Database.DSN, "user=clinical")
	assert.Contains(t, cfg.Database.DSN, "password=secret")

	assert.True(t, cfg.Mongo.Enabled)
	assert.Equal(t, "mongodb://mongo.internal:27018", cfg.Mongo.URI)
	assert.Equal(t, "assistant_prod", cfg.Mongo.Database)
	assert.Equal(t, "transcriptions", cfg.Mongo.Collection)
}
