// Package app is the composition root: it resolves configuration and
// wires driven adapters into the core services used by every transport.
package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/NovemberMoon/iac-generator-rag/internal/adapters/driven/ai"
	"github.com/NovemberMoon/iac-generator-rag/internal/adapters/driven/artifact"
	"github.com/NovemberMoon/iac-generator-rag/internal/adapters/driven/config/file"
	"github.com/NovemberMoon/iac-generator-rag/internal/adapters/driven/storage/sqlite"
	"github.com/NovemberMoon/iac-generator-rag/internal/adapters/driving/cli"
	"github.com/NovemberMoon/iac-generator-rag/internal/connectors/filesystem"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driven"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/services"
	"github.com/NovemberMoon/iac-generator-rag/internal/logger"
	"github.com/NovemberMoon/iac-generator-rag/internal/normalisers"
	"github.com/NovemberMoon/iac-generator-rag/internal/postprocessors"
	"github.com/NovemberMoon/iac-generator-rag/internal/validators"
)

// Options tweak how Build reads the environment. The zero value uses
// the process environment and ./.env.
type Options struct {
	// Getenv replaces os.Getenv.
	Getenv func(string) string

	// EnvFile is loaded before resolving config. Empty means ".env".
	EnvFile string

	// SkipEnvFile disables .env loading.
	SkipEnvFile bool
}

// Build wires the application for configDir. An empty configDir means
// ~/.iacgen.
func Build(configDir string, opts Options) (*cli.Services, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	if !opts.SkipEnvFile {
		if err := loadEnvFile(opts.EnvFile); err != nil {
			return nil, err
		}
	}

	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("locating config directory: %w", err)
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	cfg := services.ResolveConfig(configStore, getenv)

	for _, dir := range []string{cfg.Paths.DocsDir, cfg.Paths.StoreDir, cfg.Paths.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	store, err := sqlite.NewStore(cfg.Paths.StoreDir)
	if err != nil {
		return nil, fmt.Errorf("opening vector store: %w", err)
	}

	embedder := embeddingService(&cfg.Embedding)
	llm := llmService(&cfg.LLM)

	pipeline, err := postprocessors.NewChunkingPipeline(cfg.Chunking)
	if err != nil {
		return nil, fmt.Errorf("configuring chunker: %w", err)
	}

	prompts, err := file.NewPromptStore(filepath.Join(configDir, "prompts"))
	if err != nil {
		return nil, fmt.Errorf("opening prompts: %w", err)
	}

	loader := filesystem.NewLoader(cfg.Paths.DocsDir, cfg.Extensions, normalisers.Defaults()...)
	artifacts := artifact.NewWriter(cfg.Paths.OutputDir)
	retriever := services.NewRetrievalService(store, embedder, cfg.TopK)

	logger.Debug("config: dir=%s docs=%s store=%s llm=%s embedding=%s",
		configDir, cfg.Paths.DocsDir, cfg.Paths.StoreDir, cfg.LLM.Provider, cfg.Embedding.Provider)

	return &cli.Services{
		Generation: services.NewGenerationService(
			retriever,
			services.NewPromptAssembler(prompts),
			llm,
			validators.NewDefaultRegistry(cfg.FailOpenUnknownTool),
			artifacts,
			cfg.TopK,
		),
		Retrieval: retriever,
		Index:     services.NewIndexService(loader, pipeline, embedder, store, cfg.Embedding.BatchSize),
		Settings:  services.NewSettingsService(configStore, getenv, ai.NewConfigValidator()),
		Artifacts: artifacts,
	}, nil
}

// loadEnvFile loads path (default .env) into the process environment.
// A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	logger.Debug("config: loaded %s", path)
	return nil
}

// embeddingService builds the configured embedder, or one that reports why
// it could not be built on every call.
func embeddingService(settings *domain.EmbeddingSettings) driven.EmbeddingService {
	svc, err := ai.CreateEmbeddingService(settings)
	if err != nil {
		logger.Warn("embedding provider %q unavailable: %v", settings.Provider, err)
		return &unavailableEmbedder{provider: settings.Provider, err: err}
	}
	return svc
}

// llmService builds the configured model backend, or a stand-in that
// fails each call, so commands that never call the model still work.
func llmService(settings *domain.LLMSettings) driven.LLMService {
	svc, err := ai.CreateLLMService(settings)
	if err != nil {
		logger.Debug("llm provider %q unavailable: %v", settings.Provider, err)
		return &unavailableLLM{provider: settings.Provider, err: err}
	}
	return svc
}
