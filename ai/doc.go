// Package ai defines the interfaces for the remote model services the
// pipeline depends on: text embedding and chat-completion answer generation.
//
// Concrete implementations live in subpackages:
//   - ai/openai: OpenAI-compatible services via langchaingo
//   - ai/mock: deterministic test doubles
//
// RetryEmbedder applies the ingestion retry policy on top of any Embedder.
package ai
