package openai

import "strings"

// Preset describes a named OpenAI-compatible provider.
type Preset struct {
	// BaseURL is the provider's /v1 root.
	BaseURL string

	// Model is used when no model is configured.
	Model string

	// KeyEnv is the environment variable conventionally holding the key.
	// Empty for servers that run without authentication.
	KeyEnv string
}

// presets maps provider names to OpenAI-compatible endpoints.
var presets = map[string]Preset{
	"groq":       {BaseURL: "https://api.groq.com/openai/v1", Model: "llama-3.3-70b-versatile", KeyEnv: "GROQ_API_KEY"},
	"openai":     {BaseURL: DefaultBaseURL, Model: DefaultLLMModel, KeyEnv: "OPENAI_API_KEY"},
	"openrouter": {BaseURL: "https://openrouter.ai/api/v1", Model: "meta-llama/llama-3.3-70b-instruct", KeyEnv: "OPENROUTER_API_KEY"},
	"together":   {BaseURL: "https://api.together.xyz/v1", Model: "meta-llama/Llama-3.3-70B-Instruct-Turbo", KeyEnv: "TOGETHER_API_KEY"},
	"mistral":    {BaseURL: "https://api.mistral.ai/v1", Model: "mistral-large-latest", KeyEnv: "MISTRAL_API_KEY"},
	"deepseek":   {BaseURL: "https://api.deepseek.com/v1", Model: "deepseek-chat", KeyEnv: "DEEPSEEK_API_KEY"},
	"fireworks":  {BaseURL: "https://api.fireworks.ai/inference/v1", Model: "accounts/fireworks/models/llama-v3p3-70b-instruct", KeyEnv: "FIREWORKS_API_KEY"},
	"lmstudio":   {BaseURL: "http://localhost:1234/v1", Model: "local-model"},
	"vllm":       {BaseURL: "http://localhost:8000/v1", Model: "default"},
}

// LookupPreset returns the preset registered under name.
func LookupPreset(name string) (Preset, bool) {
	p, ok := presets[strings.ToLower(name)]
	return p, ok
}

// PresetNames returns the registered provider names.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
