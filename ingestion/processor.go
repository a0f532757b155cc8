// Copyright 2025 Poiesic Systems
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

package ingestion

import (
	"context"

	"github.com/poiesic/marifa/core"
)

// batch is the outcome of one synchronous ingestion step handed to the
// asynchronous processors.
type batch struct {
	source   string
	analysis *core.AnalysisResult
	// nodeIDs maps entity ID to the knowledge node holding it.
	nodeIDs map[string]string
	// created lists the nodes created by this ingestion, in entity order.
	created []string
}

// processor is an internal interface for post-ingestion work.
type processor interface {
	// process handles one ingested batch.
	process(ctx context.Context, b *batch) error
}
