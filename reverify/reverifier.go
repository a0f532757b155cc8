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
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/marifa/graph"
	"github.com/poiesic/marifa/storage"
)

// Config holds configuration for a reverification sweep.
type Config struct {
	// BatchSize is the number of nodes to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of nodes)
	ReportInterval int

	// Concurrency is how many nodes of a batch are verified in parallel
	Concurrency int

	// MaxRetries is the maximum number of attempts per node
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// Source restricts the sweep to nodes with this source tag when non-empty
	Source string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		Concurrency:    4,
		MaxRetries:     3,
		RetryDelay:     100 * time.Millisecond,
	}
}

// Summary reports the outcome of a sweep.
type Summary struct {
	Total    int
	Verified int
	Failed   int
	Elapsed  time.Duration
}

// Reverifier orchestrates the reverification of stored knowledge nodes.
type Reverifier struct {
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	iterator  *NodeIterator
	logger    *slog.Logger
}

// NewReverifier creates a new reverifier.
// progress: where to write progress output (typically os.Stderr)
func NewReverifier(nodes storage.NodeRepository, g *graph.Integrator, config *Config, progress io.Writer) (*Reverifier, error) {
	if nodes == nil {
		return nil, ErrNodeRepositoryRequired
	}
	if g == nil {
		return nil, ErrIntegratorRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if config.MaxRetries <= 0 {
		return nil, ErrInvalidMaxAttempts
	}
	if progress == nil {
		progress = io.Discard
	}

	logger := slog.Default().With("component", "reverify")
	return &Reverifier{
		config:    config,
		progress:  progress,
		processor: NewBatchProcessor(g, config.Concurrency, config.MaxRetries, config.RetryDelay, logger),
		iterator:  NewNodeIterator(nodes, config.BatchSize, config.Source),
		logger:    logger,
	}, nil
}

// Run appends one round of verification results to every node in scope.
// Progress is reported to the configured writer. Nodes that fail
// verification are counted in the summary; Run itself fails only when
// iteration fails or ctx is cancelled.
func (r *Reverifier) Run(ctx context.Context) (*Summary, error) {
	ids, err := r.iterator.IDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}

	total := len(ids)
	if total == 0 {
		fmt.Fprintf(r.progress, "No nodes found in database (0 nodes)\n")
		return &Summary{}, nil
	}

	fmt.Fprintf(r.progress, "Starting reverification of %d nodes (batch size: %d)\n",
		total, r.iterator.batchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	err = r.iterator.ForEach(ctx, func(batch []string) error {
		stats, err := r.processor.Process(ctx, batch)
		tracker.Record(stats)
		if err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}
		return nil
	})

	processed, failed := tracker.Processed()
	summary := &Summary{
		Total:    total,
		Verified: processed - failed,
		Failed:   failed,
		Elapsed:  tracker.Elapsed(),
	}
	if err != nil {
		return summary, err
	}

	tracker.Finish()
	fmt.Fprintf(r.progress, "Reverification complete. Processed %d nodes in %v (%d failed)\n",
		summary.Verified+summary.Failed, summary.Elapsed.Round(time.Millisecond), summary.Failed)
	r.logger.Info("reverification complete", "total", total, "verified", summary.Verified, "failed", summary.Failed)

	return summary, nil
}
