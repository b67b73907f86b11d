// Package query answers natural-language questions over the indexed
// transcripts by retrieval-augmented generation: embed the question, fetch
// the nearest chunks, prompt the chat model with them.
package query
