// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - DocumentLoader: Reads documentation files from the docs root
//   - PostProcessor / PostProcessorPipeline: Splits documents into chunks
//   - EmbeddingService: Maps text to vectors with one pinned model
//   - VectorStore: Builds, publishes and opens store generations
//   - LLMService: The model gateway (system + user in, text out)
//   - PromptStore: Editable prompt templates
//   - SyntaxValidator: Parses generated code for one tool
//   - ArtifactWriter: Persists generated code
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or postprocessor package
package driven
