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

// Package ingest reads a transcript dataset row by row, chunks each record,
// embeds each chunk and upserts it into a vector store.
//
// Processing is strictly sequential: one chunk, one embedding call, one
// upsert at a time. Progress is persisted as a row checkpoint every few
// records, so an interrupted run can be re-started and will skip everything
// already indexed. Upserts are idempotent by vector id, which makes the
// re-run safe even when the crash happened mid-record.
package ingest
