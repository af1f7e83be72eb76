package main

import (
	"context"
	"io"
	"time"

	"github.com/Abraxas-365/resumegpt/assistant/chat/chatapi"
	"github.com/Abraxas-365/resumegpt/assistant/chat/chatsrv"
	"github.com/Abraxas-365/resumegpt/assistant/content/contentapi"
	"github.com/Abraxas-365/resumegpt/assistant/content/contentsrv"
	"github.com/Abraxas-365/resumegpt/assistant/conversation"
	"github.com/Abraxas-365/resumegpt/assistant/document"
	"github.com/Abraxas-365/resumegpt/assistant/document/documentinfra"
	"github.com/Abraxas-365/resumegpt/assistant/document/documentsrv"
	"github.com/Abraxas-365/resumegpt/assistant/generation/generationinfra"
	"github.com/Abraxas-365/resumegpt/assistant/generation/generationsrv"
	"github.com/Abraxas-365/resumegpt/assistant/index"
	"github.com/Abraxas-365/resumegpt/assistant/index/indexinfra"
	"github.com/Abraxas-365/resumegpt/assistant/index/indexsrv"
	"github.com/Abraxas-365/resumegpt/assistant/session"
	"github.com/Abraxas-365/resumegpt/internal/ai/embeddings"
	"github.com/Abraxas-365/resumegpt/internal/ai/transcriber"
	"github.com/Abraxas-365/resumegpt/pkg/config"
	"github.com/Abraxas-365/resumegpt/pkg/fsx"
	"github.com/Abraxas-365/resumegpt/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/resumegpt/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/resumegpt/pkg/logx"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB          *sqlx.DB
	Redis       *redis.Client
	FileSystem  fsx.FileSystem
	VectorStore index.Store
	closers     []io.Closer

	// Services
	IndexService   *indexsrv.Service
	Generator      *generationsrv.Chain
	Sessions       *session.Manager
	TokenService   *session.TokenService
	ChatService    *chatsrv.Service
	ContentService *contentsrv.Service

	// API Handlers
	ChatHandlers    *chatapi.Handlers
	ContentHandlers *contentapi.Handlers
}

// NewContainer initializes the dependency injection container
func NewContainer(cfg *config.Config) *Container {
	c := &Container{Config: cfg}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	ctx := context.Background()

	// 1. Vector store
	switch c.Config.VectorStore.Backend {
	case "postgres":
		db, err := sqlx.Connect("postgres", c.Config.VectorStore.DSN())
		if err != nil {
			logx.Fatalf("Failed to connect to database: %v", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
		c.DB = db

		store := indexinfra.NewPostgresStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			logx.Fatalf("Failed to prepare vector schema: %v", err)
		}
		c.VectorStore = store
	default:
		store, err := indexinfra.NewBoltStore(c.Config.VectorStore.Dir)
		if err != nil {
			logx.Fatalf("Failed to open vector store at %s: %v", c.Config.VectorStore.Dir, err)
		}
		c.VectorStore = store
	}
	logx.Infof("Vector store: %s", c.Config.VectorStore.Backend)

	// 2. Redis embedding cache (optional)
	if c.Config.Redis.Enabled() {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     c.Config.Redis.Addr,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
		if _, err := c.Redis.Ping(ctx).Result(); err != nil {
			logx.Warnf("Failed to connect to Redis, embeddings will not be cached: %v", err)
		}
	}

	// 3. Upload storage
	switch c.Config.Storage.Backend {
	case "s3":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(c.Config.Storage.AWSRegion))
		if err != nil {
			logx.Fatalf("unable to load SDK config, %v", err)
		}
		c.FileSystem = fsxs3.NewS3FileSystem(s3.NewFromConfig(awsCfg), c.Config.Storage.AWSBucket, "uploads")
	default:
		fs, err := fsxlocal.NewLocalFileSystem(c.Config.Storage.UploadDir)
		if err != nil {
			logx.Fatalf("Failed to prepare upload dir %s: %v", c.Config.Storage.UploadDir, err)
		}
		c.FileSystem = fs
	}
}

func (c *Container) initServices() {
	cfg := c.Config

	// --- Generation ---
	backends, closers, err := generationinfra.NewBackends(context.Background(), cfg.LLM)
	if err != nil {
		logx.Fatalf("Failed to initialize LLM backends: %v", err)
	}
	c.closers = append(c.closers, closers...)
	c.Generator = generationsrv.NewChain(cfg.LLM.Timeout, backends...)
	if len(backends) == 0 {
		logx.Warn("No LLM API key configured, generation requests will fail")
	} else {
		logx.Infof("LLM backends in order: %v", c.Generator.Backends())
	}

	// --- Embeddings and index ---
	fallback := embeddings.NewLexical(cfg.Embeddings.FallbackDimension)
	var primary index.Embedder
	if cfg.Embeddings.APIKey != "" {
		var embedder index.Embedder = embeddings.NewEmbeddingsGenerator(cfg.Embeddings.APIKey, cfg.Embeddings.Model)
		if c.Redis != nil {
			embedder = indexsrv.NewCachedEmbedder(embedder, indexinfra.NewRedisEmbeddingCache(c.Redis, "resumegpt"), cfg.Redis.CacheTTL)
		}
		primary = embedder
	} else {
		logx.Warnf("OPENAI_API_KEY not set, indexing with %s", fallback.Model())
	}
	c.IndexService = indexsrv.NewService(primary, fallback, c.VectorStore)

	// --- Documents ---
	var pageTranscriber document.PageTranscriber
	if cfg.Assistant.VisionOCR && cfg.LLM.OpenAIAPIKey != "" {
		pageTranscriber = transcriber.NewTranscriber(cfg.LLM.OpenAIAPIKey, "")
	}
	processor := documentsrv.NewProcessor(
		documentinfra.Extractors(pageTranscriber),
		document.NewSplitter(document.DefaultChunkSize, document.DefaultChunkOverlap),
	)

	// --- Sessions ---
	policy, err := conversation.ParsePolicy(cfg.Assistant.MemoryType)
	if err != nil {
		logx.Fatalf("Invalid MEMORY_TYPE: %v", err)
	}
	c.Sessions = session.NewManager(
		c.IndexService,
		policy,
		conversation.Config{
			WindowSize:        cfg.Assistant.MemoryWindow,
			SummaryTokenLimit: cfg.Assistant.MemorySummaryTokens,
		},
		conversation.NewGenerationSummarizer(c.Generator),
		cfg.Session.TTL,
	)

	secret := cfg.Session.Secret
	if secret == "" {
		logx.Warn("SESSION_SECRET is not set, using a random secret; tokens will not survive a restart")
		secret = uuid.NewString()
	}
	c.TokenService = session.NewTokenService(secret, cfg.Session.TTL)

	// --- Domain services ---
	c.ChatService = chatsrv.NewService(
		c.Sessions,
		c.TokenService,
		c.FileSystem,
		processor,
		c.IndexService,
		c.Generator,
		cfg.Assistant.TopK,
	)
	c.ContentService = contentsrv.NewService(c.Generator, cfg.Assistant.InterviewQuestionCount)

	// --- Handlers ---
	c.ChatHandlers = chatapi.NewHandlers(c.ChatService, int64(cfg.Server.BodyLimitMB)<<20)
	c.ContentHandlers = contentapi.NewHandlers(c.ContentService, c.ChatService)
}

// Close releases stores and clients in reverse order of creation
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			logx.Warnf("Closing LLM client: %v", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Warnf("Closing redis: %v", err)
		}
	}
	if c.VectorStore != nil {
		if err := c.VectorStore.Close(); err != nil {
			logx.Warnf("Closing vector store: %v", err)
		}
	}
}

// VectorStoreHealthy pings the database behind the postgres store
func (c *Container) VectorStoreHealthy() bool {
	if c.DB == nil {
		return true
	}
	return c.DB.Ping() == nil
}
