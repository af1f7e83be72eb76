package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"deepseek", "openai", "anthropic", "gemini"}, cfg.LLM.Order)
	assert.Equal(t, 0.7, cfg.LLM.Temperature)
	assert.Equal(t, 4, cfg.Assistant.TopK)
	assert.Equal(t, 5, cfg.Assistant.MemoryWindow)
	assert.Equal(t, 1000, cfg.Assistant.MemorySummaryTokens)
	assert.Equal(t, 512, cfg.Embeddings.FallbackDimension)
	assert.Equal(t, "bolt", cfg.VectorStore.Backend)
	assert.False(t, cfg.Redis.Enabled())
}

func TestPath(t *testing.T) {
	t.Setenv(PathEnv, "")
	assert.Equal(t, "resumegpt.toml", Path())

	t.Setenv(PathEnv, "/etc/resumegpt/prod.toml")
	assert.Equal(t, "/etc/resumegpt/prod.toml", Path())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resumegpt.toml")
	content := `
log_level = "debug"

[server]
port = "9000"

[llm]
order = ["openai"]
timeout = "30s"

[assistant]
top_k = 6
memory_type = "window"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("PORT", "9100")
	t.Setenv("MEMORY_WINDOW", "3")
	t.Setenv("LLM_ORDER", " Gemini , anthropic ,")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "9100", cfg.Server.Port, "env wins over file")
	assert.Equal(t, 6, cfg.Assistant.TopK)
	assert.Equal(t, "window", cfg.Assistant.MemoryType)
	assert.Equal(t, 3, cfg.Assistant.MemoryWindow)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, []string{"gemini", "anthropic"}, cfg.LLM.Order)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad int", map[string]string{"RETRIEVAL_TOP_K": "four"}},
		{"zero top k", map[string]string{"RETRIEVAL_TOP_K": "0"}},
		{"bad duration", map[string]string{"SESSION_TTL": "tomorrow"}},
		{"unknown vector backend", map[string]string{"VECTOR_STORE_BACKEND": "faiss"}},
		{"s3 without bucket", map[string]string{"STORAGE_BACKEND": "s3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}
