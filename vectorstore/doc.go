// Package vectorstore defines the vector index abstraction used by the
// ingestion and query pipelines.
//
// Backends live in subpackages:
//   - vectorstore/pinecone: remote managed index over its HTTP API
//   - vectorstore/postgres: pgvector table via uptrace/bun
//   - vectorstore/chromem: embedded local index for development and tests
//
// All storage, indexing and similarity ranking is delegated to the backend;
// this package carries no index structure of its own.
package vectorstore
