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
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/marifa/graph"
)

// verifyProcessor runs the verification pipeline on newly created nodes.
type verifyProcessor struct {
	graph  *graph.Integrator
	logger *slog.Logger
}

var _ processor = (*verifyProcessor)(nil)

func newVerifyProcessor(g *graph.Integrator, logger *slog.Logger) (processor, error) {
	if g == nil {
		return nil, ErrIntegratorRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &verifyProcessor{
		graph:  g,
		logger: logger.With("processor", "verify"),
	}, nil
}

// process verifies every created node. A failing node does not stop the rest.
func (vp *verifyProcessor) process(ctx context.Context, b *batch) error {
	var errs []error
	for _, id := range b.created {
		if err := ctx.Err(); err != nil {
			return err
		}
		results, err := vp.graph.VerifyNode(ctx, id)
		if err != nil {
			vp.logger.Warn("node verification failed", "node", id, "err", err)
			errs = append(errs, fmt.Errorf("verify %s: %w", id, err))
			continue
		}
		vp.logger.Debug("node verified", "node", id, "results", len(results))
	}
	return errors.Join(errs...)
}
