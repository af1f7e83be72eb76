// Package config loads service configuration from defaults, an optional TOML
// file and environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	LogLevel    string            `toml:"log_level"`
	Server      ServerConfig      `toml:"server"`
	LLM         LLMConfig         `toml:"llm"`
	Embeddings  EmbeddingsConfig  `toml:"embeddings"`
	VectorStore VectorStoreConfig `toml:"vector_store"`
	Storage     StorageConfig     `toml:"storage"`
	Redis       RedisConfig       `toml:"redis"`
	Session     SessionConfig     `toml:"session"`
	Assistant   AssistantConfig   `toml:"assistant"`
}

type ServerConfig struct {
	Port        string `toml:"port"`
	BodyLimitMB int    `toml:"body_limit_mb"`
	CORSOrigins string `toml:"cors_origins"`
}

type LLMConfig struct {
	DeepSeekAPIKey  string        `toml:"deepseek_api_key"`
	DeepSeekBaseURL string        `toml:"deepseek_base_url"`
	DeepSeekModel   string        `toml:"deepseek_model"`
	OpenAIAPIKey    string        `toml:"openai_api_key"`
	OpenAIModel     string        `toml:"openai_model"`
	AnthropicAPIKey string        `toml:"anthropic_api_key"`
	AnthropicModel  string        `toml:"anthropic_model"`
	GeminiAPIKey    string        `toml:"gemini_api_key"`
	GeminiModel     string        `toml:"gemini_model"`
	Order           []string      `toml:"order"`
	Temperature     float64       `toml:"temperature"`
	MaxTokens       int           `toml:"max_tokens"`
	Timeout         time.Duration `toml:"timeout"`
}

type EmbeddingsConfig struct {
	APIKey            string `toml:"api_key"`
	Model             string `toml:"model"`
	FallbackDimension int    `toml:"fallback_dimension"`
}

type VectorStoreConfig struct {
	Backend string `toml:"backend"` // bolt | postgres
	Dir     string `toml:"dir"`

	DBHost string `toml:"db_host"`
	DBPort string `toml:"db_port"`
	DBUser string `toml:"db_user"`
	DBPass string `toml:"db_pass"`
	DBName string `toml:"db_name"`
}

// DSN builds the lib/pq connection string
func (c VectorStoreConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName)
}

type StorageConfig struct {
	Backend   string `toml:"backend"` // local | s3
	UploadDir string `toml:"upload_dir"`
	AWSRegion string `toml:"aws_region"`
	AWSBucket string `toml:"aws_bucket"`
}

type RedisConfig struct {
	Addr     string        `toml:"addr"`
	Password string        `toml:"password"`
	DB       int           `toml:"db"`
	CacheTTL time.Duration `toml:"cache_ttl"`
}

// Enabled reports whether an embedding cache should be wired
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

type SessionConfig struct {
	Secret string        `toml:"secret"`
	TTL    time.Duration `toml:"ttl"`
}

type AssistantConfig struct {
	TopK                   int    `toml:"top_k"`
	MemoryType             string `toml:"memory_type"`
	MemoryWindow           int    `toml:"memory_window"`
	MemorySummaryTokens    int    `toml:"memory_summary_tokens"`
	InterviewQuestionCount int    `toml:"interview_question_count"`
	VisionOCR              bool   `toml:"vision_ocr"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Server: ServerConfig{
			Port:        "8080",
			BodyLimitMB: 10,
			CORSOrigins: "*",
		},
		LLM: LLMConfig{
			DeepSeekBaseURL: "https://api.deepseek.com",
			DeepSeekModel:   "deepseek-chat",
			OpenAIModel:     "gpt-3.5-turbo",
			AnthropicModel:  "claude-3-5-haiku-latest",
			GeminiModel:     "gemini-1.5-flash",
			Order:           []string{"deepseek", "openai", "anthropic", "gemini"},
			Temperature:     0.7,
			MaxTokens:       1024,
			Timeout:         60 * time.Second,
		},
		Embeddings: EmbeddingsConfig{
			Model:             "text-embedding-3-small",
			FallbackDimension: 512,
		},
		VectorStore: VectorStoreConfig{
			Backend: "bolt",
			Dir:     "data/vector_store",
			DBPort:  "5432",
		},
		Storage: StorageConfig{
			Backend:   "local",
			UploadDir: "data/uploads",
		},
		Redis: RedisConfig{
			CacheTTL: 24 * time.Hour,
		},
		Session: SessionConfig{
			TTL: 24 * time.Hour,
		},
		Assistant: AssistantConfig{
			TopK:                   4,
			MemoryType:             "buffer",
			MemoryWindow:           5,
			MemorySummaryTokens:    1000,
			InterviewQuestionCount: 5,
			VisionOCR:              true,
		},
	}
}

const (
	PathEnv     = "RESUMEGPT_CONFIG"
	DefaultPath = "resumegpt.toml"
)

// Path is the config file named by RESUMEGPT_CONFIG, or resumegpt.toml
func Path() string {
	if p := strings.TrimSpace(os.Getenv(PathEnv)); p != "" {
		return p
	}
	return DefaultPath
}

// Load builds the configuration. A missing file at path is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("decode config file %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late
func (c *Config) Validate() error {
	switch c.VectorStore.Backend {
	case "bolt", "postgres":
	default:
		return fmt.Errorf("unknown vector store backend %q", c.VectorStore.Backend)
	}
	switch c.Storage.Backend {
	case "local", "s3":
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Storage.Backend == "s3" && c.Storage.AWSBucket == "" {
		return fmt.Errorf("AWS_BUCKET is required for the s3 storage backend")
	}
	if c.Assistant.TopK <= 0 {
		return fmt.Errorf("retrieval top_k must be positive, got %d", c.Assistant.TopK)
	}
	if c.Assistant.MemoryWindow <= 0 {
		return fmt.Errorf("memory window must be positive, got %d", c.Assistant.MemoryWindow)
	}
	if c.Assistant.InterviewQuestionCount <= 0 {
		return fmt.Errorf("interview question count must be positive, got %d", c.Assistant.InterviewQuestionCount)
	}
	if c.Embeddings.FallbackDimension <= 0 {
		return fmt.Errorf("fallback embedding dimension must be positive, got %d", c.Embeddings.FallbackDimension)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.LogLevel, "LOG_LEVEL")

	setString(&c.Server.Port, "PORT")
	setString(&c.Server.CORSOrigins, "CORS_ORIGINS")

	setString(&c.LLM.DeepSeekAPIKey, "DEEPSEEK_API_KEY")
	setString(&c.LLM.DeepSeekBaseURL, "DEEPSEEK_BASE_URL")
	setString(&c.LLM.DeepSeekModel, "DEEPSEEK_MODEL")
	setString(&c.LLM.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&c.LLM.OpenAIModel, "OPENAI_CHAT_MODEL")
	setString(&c.LLM.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	setString(&c.LLM.AnthropicModel, "ANTHROPIC_MODEL")
	setString(&c.LLM.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&c.LLM.GeminiModel, "GEMINI_MODEL")
	if v := os.Getenv("LLM_ORDER"); v != "" {
		c.LLM.Order = splitList(v)
	}

	setString(&c.Embeddings.APIKey, "OPENAI_API_KEY")
	setString(&c.Embeddings.Model, "EMBEDDING_MODEL")

	setString(&c.VectorStore.Backend, "VECTOR_STORE_BACKEND")
	setString(&c.VectorStore.Dir, "VECTOR_STORE_DIR")
	setString(&c.VectorStore.DBHost, "DB_HOST")
	setString(&c.VectorStore.DBPort, "DB_PORT")
	setString(&c.VectorStore.DBUser, "DB_USER")
	setString(&c.VectorStore.DBPass, "DB_PASS")
	setString(&c.VectorStore.DBName, "DB_NAME")

	setString(&c.Storage.Backend, "STORAGE_BACKEND")
	setString(&c.Storage.UploadDir, "UPLOAD_DIR")
	setString(&c.Storage.AWSRegion, "AWS_REGION")
	setString(&c.Storage.AWSBucket, "AWS_BUCKET")

	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASS")

	setString(&c.Session.Secret, "SESSION_SECRET")

	setString(&c.Assistant.MemoryType, "MEMORY_TYPE")

	ints := []struct {
		dst *int
		key string
	}{
		{&c.Server.BodyLimitMB, "BODY_LIMIT_MB"},
		{&c.LLM.MaxTokens, "LLM_MAX_TOKENS"},
		{&c.Embeddings.FallbackDimension, "FALLBACK_DIMENSION"},
		{&c.Redis.DB, "REDIS_DB"},
		{&c.Assistant.TopK, "RETRIEVAL_TOP_K"},
		{&c.Assistant.MemoryWindow, "MEMORY_WINDOW"},
		{&c.Assistant.MemorySummaryTokens, "MEMORY_SUMMARY_TOKENS"},
		{&c.Assistant.InterviewQuestionCount, "INTERVIEW_QUESTION_COUNT"},
	}
	for _, i := range ints {
		if err := setInt(i.dst, i.key); err != nil {
			return err
		}
	}

	durations := []struct {
		dst *time.Duration
		key string
	}{
		{&c.LLM.Timeout, "LLM_TIMEOUT"},
		{&c.Redis.CacheTTL, "EMBEDDING_CACHE_TTL"},
		{&c.Session.TTL, "SESSION_TTL"},
	}
	for _, d := range durations {
		if err := setDuration(d.dst, d.key); err != nil {
			return err
		}
	}

	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid LLM_TEMPERATURE %q: %w", v, err)
		}
		c.LLM.Temperature = f
	}
	if v := os.Getenv("VISION_OCR"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid VISION_OCR %q: %w", v, err)
		}
		c.Assistant.VisionOCR = b
	}

	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = d
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
