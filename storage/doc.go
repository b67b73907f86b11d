// Package storage defines checkpoint persistence for the ingestion pipeline.
//
// Two implementations are provided:
//   - storage/file: a single text file holding the last-completed row index
//   - storage/badger: a BadgerDB-backed store for local deployments
package storage
