// Package openai provides ai.Embedder and ai.Generator implementations
// backed by OpenAI-compatible HTTP APIs via langchaingo.
package openai
