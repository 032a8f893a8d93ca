package driven

// PromptStore provides access to LLM prompt templates.
// Templates live as editable files with built-in defaults.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names.
const (
	// PromptSystem is the system instruction template for generation.
	// It is a text/template rendered with Tool, Grammar, Extension and Context.
	PromptSystem = "system"
)
