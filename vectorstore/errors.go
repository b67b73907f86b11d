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


package vectorstore

import "errors"

var (
	// ErrUpsertFailed indicates a vector write exhausted its retries.
	ErrUpsertFailed = errors.New("vector upsert failed")

	// ErrRetrievalFailed indicates a similarity query errored.
	ErrRetrievalFailed = errors.New("vector query failed")

	// ErrEmptyResponse indicates the store answered an upsert with a
	// well-formed but empty response. Treated as a retryable failure, not a
	// silent success.
	ErrEmptyResponse = errors.New("empty upsert response")
)
