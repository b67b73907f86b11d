// Copyright 2026 Oratia Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the explicit application configuration: an optional
// YAML file overlaid with environment variables (environment wins). There
// are no ambient globals; the loaded Config is passed by reference into each
// client constructor.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Vector store backends.
const (
	BackendPinecone = "pinecone"
	BackendChromem  = "chromem"
	BackendPostgres = "postgres"
)

// OpenAIConfig configures the embedding and chat API client.
type OpenAIConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	EmbeddingModel string `yaml:"embedding_model"`
	ChatModel      string `yaml:"chat_model"`
}

// PineconeConfig contains connection details for a Pinecone index.
type PineconeConfig struct {
	APIKey    string `yaml:"api_key"`
	IndexHost string `yaml:"index_host"`
	Namespace string `yaml:"namespace"`
}

// ChromemConfig configures the embedded local vector store.
type ChromemConfig struct {
	Path       string `yaml:"path"`
	Collection string `yaml:"collection"`
}

// PostgresConfig contains connection details for a pgvector database.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// VectorStoreConfig selects and configures the vector store backend.
type VectorStoreConfig struct {
	Backend  string         `yaml:"backend"`
	Pinecone PineconeConfig `yaml:"pinecone"`
	Chromem  ChromemConfig  `yaml:"chromem"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// Config is the root application configuration.
type Config struct {
	ListenAddr     string            `yaml:"listen_addr"`
	DatasetPath    string            `yaml:"dataset_path"`
	CheckpointPath string            `yaml:"checkpoint_path"`
	OpenAI         OpenAIConfig      `yaml:"openai"`
	VectorStore    VectorStoreConfig `yaml:"vector_store"`
}

// Load builds the configuration: defaults, then the YAML file at path (if
// any; missing files are fine), then .env and process environment on top.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	// .env is a convenience for local development; absence is not an error.
	_ = godotenv.Load()
	applyEnv(cfg)

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		ListenAddr:     ":8080",
		CheckpointPath: "checkpoint.txt",
		OpenAI: OpenAIConfig{
			BaseURL:        "https://api.openai.com/v1",
			EmbeddingModel: "text-embedding-ada-002",
			ChatModel:      "gpt-4o-mini",
		},
		VectorStore: VectorStoreConfig{
			Backend: BackendChromem,
			Chromem: ChromemConfig{
				Path:       "talkbase.db",
				Collection: "transcripts",
			},
		},
	}
}

func applyEnv(cfg *Config) {
	setIfPresent(&cfg.ListenAddr, "TALKBASE_LISTEN_ADDR")
	setIfPresent(&cfg.DatasetPath, "TALKBASE_DATASET_PATH")
	setIfPresent(&cfg.CheckpointPath, "TALKBASE_CHECKPOINT_PATH")

	setIfPresent(&cfg.OpenAI.BaseURL, "OPENAI_BASE_URL")
	setIfPresent(&cfg.OpenAI.APIKey, "OPENAI_API_KEY")
	setIfPresent(&cfg.OpenAI.EmbeddingModel, "OPENAI_EMBEDDING_MODEL")
	setIfPresent(&cfg.OpenAI.ChatModel, "OPENAI_CHAT_MODEL")

	setIfPresent(&cfg.VectorStore.Backend, "TALKBASE_VECTOR_BACKEND")
	setIfPresent(&cfg.VectorStore.Pinecone.APIKey, "PINECONE_API_KEY")
	setIfPresent(&cfg.VectorStore.Pinecone.IndexHost, "PINECONE_INDEX_HOST")
	setIfPresent(&cfg.VectorStore.Pinecone.Namespace, "PINECONE_NAMESPACE")
	setIfPresent(&cfg.VectorStore.Chromem.Path, "TALKBASE_CHROMEM_PATH")
	setIfPresent(&cfg.VectorStore.Chromem.Collection, "TALKBASE_CHROMEM_COLLECTION")
	setIfPresent(&cfg.VectorStore.Postgres.DSN, "TALKBASE_POSTGRES_DSN")
}

func setIfPresent(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate fails fast on missing required credentials for the selected
// backend, so the process exits at startup rather than at first request.
func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("%w: OPENAI_API_KEY", ErrMissingCredential)
	}

	switch c.VectorStore.Backend {
	case BackendPinecone:
		if c.VectorStore.Pinecone.APIKey == "" {
			return fmt.Errorf("%w: PINECONE_API_KEY", ErrMissingCredential)
		}
		if c.VectorStore.Pinecone.IndexHost == "" {
			return fmt.Errorf("%w: PINECONE_INDEX_HOST", ErrMissingCredential)
		}
	case BackendChromem:
		if c.VectorStore.Chromem.Collection == "" {
			return fmt.Errorf("%w: chromem collection", ErrMissingCredential)
		}
	case BackendPostgres:
		if c.VectorStore.Postgres.DSN == "" {
			return fmt.Errorf("%w: TALKBASE_POSTGRES_DSN", ErrMissingCredential)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.VectorStore.Backend)
	}

	return nil
}
