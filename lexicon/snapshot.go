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

package lexicon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/poiesic/marifa/core"
)

// SnapshotVersion is the lexicon snapshot format written by Export.
const SnapshotVersion = 1

// Snapshot is the JSON document produced by Export and read by Import.
type Snapshot struct {
	Version int                  `json:"version"`
	Entries []*core.LexiconEntry `json:"entries"`
}

// Export writes every entry to w as an indented JSON snapshot ordered by term.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	entries, err := s.Entries(ctx)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []*core.LexiconEntry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Snapshot{Version: SnapshotVersion, Entries: entries})
}

// Import reads a snapshot from r and stores its entries in one write,
// returning how many were stored. Existing entries for the same terms are replaced.
func (s *Service) Import(ctx context.Context, r io.Reader) (int, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return 0, fmt.Errorf("%w: decode lexicon snapshot: %w", core.ErrValidation, err)
	}
	if snap.Version != SnapshotVersion {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedSnapshot, snap.Version)
	}
	if len(snap.Entries) == 0 {
		return 0, nil
	}
	stored, err := s.Add(ctx, snap.Entries...)
	if err != nil {
		return 0, err
	}
	s.logger.Info("imported lexicon snapshot", "entries", len(stored))
	return len(stored), nil
}
