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

package reverify

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/poiesic/marifa/graph"
	"golang.org/x/sync/errgroup"
)

// BatchStats counts the outcome of one processed batch.
type BatchStats struct {
	Verified int
	Failed   int
}

// BatchProcessor verifies batches of nodes.
type BatchProcessor struct {
	graph          *graph.Integrator
	concurrency    int
	maxRetries     int
	retryBaseDelay time.Duration
	logger         *slog.Logger
}

// NewBatchProcessor creates a new batch processor.
// concurrency: nodes verified in parallel within a batch (minimum 1)
// maxRetries: maximum number of attempts per node
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(g *graph.Integrator, concurrency, maxRetries int, retryBaseDelay time.Duration, logger *slog.Logger) *BatchProcessor {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchProcessor{
		graph:          g,
		concurrency:    concurrency,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
		logger:         logger,
	}
}

// Process appends one round of verification results to every node in ids.
// A node that still fails after its retries is counted and logged; only
// context cancellation aborts the batch.
func (bp *BatchProcessor) Process(ctx context.Context, ids []string) (BatchStats, error) {
	var verified, failed atomic.Int64

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(bp.concurrency)
	for _, id := range ids {
		eg.Go(func() error {
			err := RetryWithBackoff(egctx, bp.logger, func() error {
				_, err := bp.graph.VerifyNode(egctx, id)
				return err
			}, bp.maxRetries, bp.retryBaseDelay)
			if err != nil {
				if ctxErr := egctx.Err(); ctxErr != nil {
					return ctxErr
				}
				bp.logger.Warn("node reverification failed", "node", id, "err", err)
				failed.Add(1)
				return nil
			}
			verified.Add(1)
			return nil
		})
	}

	err := eg.Wait()
	return BatchStats{Verified: int(verified.Load()), Failed: int(failed.Load())}, err
}
