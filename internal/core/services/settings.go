package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driven"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyDocsDir             = "paths.docs_dir"
	keyStoreDir            = "paths.store_dir"
	keyOutputDir           = "paths.output_dir"
	keyChunkSize           = "chunking.chunk_size"
	keyChunkOverlap        = "chunking.chunk_overlap"
	keyTopK                = "retrieval.top_k"
	keyExtensions          = "loader.extensions"
	keyEmbedProvider       = "embedding.provider"
	keyEmbedModel          = "embedding.model"
	keyEmbedBaseURL        = "embedding.base_url"
	keyEmbedAPIKey         = "embedding.api_key"
	keyEmbedDimensions     = "embedding.dimensions"
	keyEmbedBatchSize      = "embedding.batch_size"
	keyEmbedRPS            = "embedding.requests_per_second"
	keyLLMProvider         = "llm.provider"
	keyLLMModel            = "llm.model"
	keyLLMBaseURL          = "llm.base_url"
	keyLLMAPIKey           = "llm.api_key"
	keyLLMInsecure         = "llm.insecure_skip_verify"
	keyLLMTimeout          = "llm.timeout_seconds"
	keyLLMMaxTokens        = "llm.max_tokens"
	keyLLMScope            = "llm.scope"
	keyFailOpenUnknownTool = "validation.fail_open_unknown_tool"
	keyServerAddr          = "server.addr"
)

// Environment overrides.
//
//nolint:gosec // G101: These are variable names, not credentials.
const (
	EnvLLMProvider       = "IACGEN_LLM_PROVIDER"
	EnvLLMModel          = "IACGEN_LLM_MODEL"
	EnvLLMBaseURL        = "IACGEN_LLM_BASE_URL"
	EnvLLMAPIKey         = "IACGEN_LLM_API_KEY"
	EnvLLMInsecure       = "IACGEN_LLM_INSECURE_SKIP_VERIFY"
	EnvEmbeddingProvider = "IACGEN_EMBEDDING_PROVIDER"
)

// Entry sources.
const (
	sourceEnv     = "env"
	sourceFile    = "file"
	sourceDefault = "default"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindFloat
	kindBool
	kindList
)

// configKey describes one known setting.
type configKey struct {
	name   string
	kind   valueKind
	def    any
	env    string
	secret bool
}

// knownKeys is every setting in display order.
var knownKeys = []configKey{
	{name: keyDocsDir, kind: kindString, def: "docs"},
	{name: keyStoreDir, kind: kindString, def: "vector_db"},
	{name: keyOutputDir, kind: kindString, def: "output"},
	{name: keyChunkSize, kind: kindInt, def: 2000},
	{name: keyChunkOverlap, kind: kindInt, def: 300},
	{name: keyTopK, kind: kindInt, def: DefaultTopK},
	{name: keyExtensions, kind: kindList, def: []string{".md"}},
	{name: keyEmbedProvider, kind: kindString, def: string(domain.AIProviderOllama), env: EnvEmbeddingProvider},
	{name: keyEmbedModel, kind: kindString, def: ""},
	{name: keyEmbedBaseURL, kind: kindString, def: ""},
	{name: keyEmbedAPIKey, kind: kindString, def: "", secret: true},
	{name: keyEmbedDimensions, kind: kindInt, def: 0},
	{name: keyEmbedBatchSize, kind: kindInt, def: DefaultBatchSize},
	{name: keyEmbedRPS, kind: kindFloat, def: 0.0},
	{name: keyLLMProvider, kind: kindString, def: string(domain.AIProviderGroq), env: EnvLLMProvider},
	{name: keyLLMModel, kind: kindString, def: "", env: EnvLLMModel},
	{name: keyLLMBaseURL, kind: kindString, def: "", env: EnvLLMBaseURL},
	{name: keyLLMAPIKey, kind: kindString, def: "", env: EnvLLMAPIKey, secret: true},
	{name: keyLLMInsecure, kind: kindBool, def: false, env: EnvLLMInsecure},
	{name: keyLLMTimeout, kind: kindInt, def: 60},
	{name: keyLLMMaxTokens, kind: kindInt, def: 2048},
	{name: keyLLMScope, kind: kindString, def: "GIGACHAT_API_PERS"},
	{name: keyFailOpenUnknownTool, kind: kindBool, def: true},
	{name: keyServerAddr, kind: kindString, def: "127.0.0.1:8080"},
}

func lookupKey(name string) (configKey, bool) {
	for _, k := range knownKeys {
		if k.name == name {
			return k, true
		}
	}
	return configKey{}, false
}

// resolver layers environment over file over defaults.
type resolver struct {
	store  driven.ConfigStore
	getenv func(string) string
}

// value returns the effective value of k and where it came from.
// extraEnv names further variables checked after the key's own.
func (r resolver) value(k configKey, extraEnv ...string) (any, string) {
	envs := append([]string{k.env}, extraEnv...)
	for _, name := range envs {
		if name == "" || r.getenv == nil {
			continue
		}
		if raw := strings.TrimSpace(r.getenv(name)); raw != "" {
			if v, err := parseValue(k.kind, raw); err == nil {
				return v, sourceEnv
			}
		}
	}

	if r.store != nil {
		if _, ok := r.store.Get(k.name); ok {
			if v, ok := r.fromStore(k); ok {
				return v, sourceFile
			}
		}
	}
	return k.def, sourceDefault
}

func (r resolver) fromStore(k configKey) (any, bool) {
	switch k.kind {
	case kindInt:
		return r.store.GetInt(k.name), true
	case kindFloat:
		return r.store.GetFloat(k.name), true
	case kindBool:
		return r.store.GetBool(k.name)
	case kindList:
		return r.store.GetStringSlice(k.name), true
	default:
		raw, _ := r.store.Get(k.name)
		if s, ok := raw.(string); ok {
			return s, true
		}
		return fmt.Sprint(raw), true
	}
}

func (r resolver) getString(name string, extraEnv ...string) string {
	k, _ := lookupKey(name)
	v, _ := r.value(k, extraEnv...)
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func (r resolver) getInt(name string) int {
	k, _ := lookupKey(name)
	v, _ := r.value(k)
	i, _ := v.(int)
	return i
}

func (r resolver) getFloat(name string) float64 {
	k, _ := lookupKey(name)
	v, _ := r.value(k)
	f, _ := v.(float64)
	return f
}

func (r resolver) getBool(name string) bool {
	k, _ := lookupKey(name)
	v, _ := r.value(k)
	b, _ := v.(bool)
	return b
}

func (r resolver) getList(name string) []string {
	k, _ := lookupKey(name)
	v, _ := r.value(k)
	l, _ := v.([]string)
	return l
}

// ResolveConfig builds the process configuration from the config store and
// the environment. It is called once at startup.
func ResolveConfig(store driven.ConfigStore, getenv func(string) string) domain.Config {
	r := resolver{store: store, getenv: getenv}

	llmProvider := domain.AIProvider(strings.ToLower(r.getString(keyLLMProvider)))
	embedProvider := domain.AIProvider(strings.ToLower(r.getString(keyEmbedProvider)))

	embedKeyEnv := ""
	if embedProvider == domain.AIProviderOpenAI {
		embedKeyEnv = embedProvider.KeyEnv()
	}

	return domain.Config{
		Paths: domain.PathSettings{
			DocsDir:   r.getString(keyDocsDir),
			StoreDir:  r.getString(keyStoreDir),
			OutputDir: r.getString(keyOutputDir),
		},
		Chunking: domain.ChunkingSettings{
			ChunkSize: r.getInt(keyChunkSize),
			Overlap:   r.getInt(keyChunkOverlap),
		},
		Embedding: domain.EmbeddingSettings{
			Provider:          embedProvider,
			Model:             r.getString(keyEmbedModel),
			BaseURL:           r.getString(keyEmbedBaseURL),
			APIKey:            r.getString(keyEmbedAPIKey, embedKeyEnv),
			Dimensions:        r.getInt(keyEmbedDimensions),
			BatchSize:         r.getInt(keyEmbedBatchSize),
			RequestsPerSecond: r.getFloat(keyEmbedRPS),
		},
		LLM: domain.LLMSettings{
			Provider:           llmProvider,
			Model:              r.getString(keyLLMModel),
			BaseURL:            r.getString(keyLLMBaseURL),
			APIKey:             r.getString(keyLLMAPIKey, llmProvider.KeyEnv()),
			Scope:              r.getString(keyLLMScope),
			InsecureSkipVerify: r.getBool(keyLLMInsecure),
			Timeout:            time.Duration(r.getInt(keyLLMTimeout)) * time.Second,
			MaxTokens:          r.getInt(keyLLMMaxTokens),
		},
		Extensions:          r.getList(keyExtensions),
		TopK:                r.getInt(keyTopK),
		FailOpenUnknownTool: r.getBool(keyFailOpenUnknownTool),
		ServerAddr:          r.getString(keyServerAddr),
	}
}

// SettingsService shows and edits the configuration file.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
	aiValidator driven.AIConfigValidator
	config      domain.Config
}

// NewSettingsService creates a new settings service.
// aiValidator may be nil, in which case connectivity checks are skipped.
func NewSettingsService(
	configStore driven.ConfigStore,
	getenv func(string) string,
	aiValidator driven.AIConfigValidator,
) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      getenv,
		aiValidator: aiValidator,
		config:      ResolveConfig(configStore, getenv),
	}
}

// Config returns the configuration resolved at construction.
func (s *SettingsService) Config() domain.Config {
	return s.config
}

// Entries lists every known key with its effective value.
func (s *SettingsService) Entries() []domain.ConfigEntry {
	r := resolver{store: s.configStore, getenv: s.getenv}
	entries := make([]domain.ConfigEntry, 0, len(knownKeys))

	for _, k := range knownKeys {
		var extra []string
		switch k.name {
		case keyLLMAPIKey:
			extra = []string{s.config.LLM.Provider.KeyEnv()}
		case keyEmbedAPIKey:
			if s.config.Embedding.Provider == domain.AIProviderOpenAI {
				extra = []string{s.config.Embedding.Provider.KeyEnv()}
			}
		}

		v, source := r.value(k, extra...)
		value := formatValue(v)
		if k.secret {
			value = maskSecret(value)
		}
		entries = append(entries, domain.ConfigEntry{Key: k.name, Value: value, Source: source})
	}
	return entries
}

// IsSecret returns true if the key holds a credential.
func (s *SettingsService) IsSecret(key string) bool {
	k, ok := lookupKey(key)
	return ok && k.secret
}

// Set validates and persists a single key.
func (s *SettingsService) Set(key, value string) error {
	k, ok := lookupKey(key)
	if !ok {
		return fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}

	v, err := parseValue(k.kind, value)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
	}
	if err := s.check(k.name, v); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
	}

	return s.configStore.Set(k.name, v)
}

// ValidateEmbeddingConfig pings the configured embedding provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	return s.aiValidator.ValidateEmbedding(&s.config.Embedding)
}

// ValidateLLMConfig pings the configured LLM provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	return s.aiValidator.ValidateLLM(&s.config.LLM)
}

// check applies per-key constraints to a parsed value.
func (s *SettingsService) check(key string, v any) error {
	r := resolver{store: s.configStore}

	switch key {
	case keyChunkSize:
		if size := v.(int); size <= 0 {
			return fmt.Errorf("must be positive")
		} else if overlap := r.getInt(keyChunkOverlap); overlap >= size {
			return fmt.Errorf("must exceed chunk_overlap (%d)", overlap)
		}
	case keyChunkOverlap:
		if overlap := v.(int); overlap < 0 {
			return fmt.Errorf("must not be negative")
		} else if size := r.getInt(keyChunkSize); overlap >= size {
			return fmt.Errorf("must be smaller than chunk_size (%d)", size)
		}
	case keyTopK, keyEmbedBatchSize, keyLLMTimeout, keyLLMMaxTokens:
		if v.(int) <= 0 {
			return fmt.Errorf("must be positive")
		}
	case keyEmbedDimensions:
		if v.(int) < 0 {
			return fmt.Errorf("must not be negative")
		}
	case keyEmbedRPS:
		if v.(float64) < 0 {
			return fmt.Errorf("must not be negative")
		}
	case keyEmbedProvider:
		switch domain.AIProvider(strings.ToLower(v.(string))) {
		case domain.AIProviderOllama, domain.AIProviderOpenAI, domain.AIProviderHash:
		default:
			return fmt.Errorf("%w: %q (use ollama, openai or hash)", domain.ErrUnsupportedProvider, v)
		}
	case keyLLMProvider:
		if strings.TrimSpace(v.(string)) == "" {
			return fmt.Errorf("must not be empty")
		}
	}
	return nil
}

func parseValue(kind valueKind, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch kind {
	case kindInt:
		return strconv.Atoi(raw)
	case kindFloat:
		return strconv.ParseFloat(raw, 64)
	case kindBool:
		return strconv.ParseBool(raw)
	case kindList:
		var out []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	default:
		return raw, nil
	}
}

func formatValue(v any) string {
	switch val := v.(type) {
	case []string:
		return strings.Join(val, ",")
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// maskSecret keeps the last four characters of long secrets.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}
