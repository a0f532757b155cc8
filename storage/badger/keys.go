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

package badger

import (
	"fmt"
	"strconv"

	"github.com/poiesic/marifa/core"
	"github.com/poiesic/marifa/storage"
)

// Key prefixes for different data types. Every prefix ends with ':' so no
// prefix is a prefix of another.
const (
	conceptRecordPrefix   = "conrec:"
	conceptTypeNamePrefix = "contyna:"
	nodeRecordPrefix      = "node:"
	nodeSourcePrefix      = "nodesrc:"
	lexiconRecordPrefix   = "lexrec:"
	lexiconTermPrefix     = "lexterm:"
	lexiconRootPrefix     = "lexroot:"
)

// keySep separates components of composite keys.
const keySep = "\x00"

// makeConceptKey generates a key for a concept by ID.
func makeConceptKey(id core.ID) []byte {
	return []byte(conceptRecordPrefix + padID(id))
}

// makeConceptTupleKey generates a composite key for concept lookup by (type, name).
// Format: prefix type sep name
func makeConceptTupleKey(name, conceptType string) []byte {
	return []byte(conceptTypeNamePrefix + conceptType + keySep + name)
}

// makeNodeKey generates a key for a knowledge node by ID.
func makeNodeKey(id string) []byte {
	return []byte(nodeRecordPrefix + id)
}

// makeNodeSourceKey generates a composite key for the source index.
// Format: prefix source sep nodeID
func makeNodeSourceKey(source, id string) []byte {
	return []byte(nodeSourcePrefix + source + keySep + id)
}

// makePartialNodeSourceKey generates a partial key for source queries.
func makePartialNodeSourceKey(source string) []byte {
	return []byte(nodeSourcePrefix + source + keySep)
}

// makeLexiconKey generates a key for a lexicon entry by ID.
func makeLexiconKey(id core.ID) []byte {
	return []byte(lexiconRecordPrefix + padID(id))
}

// makeLexiconTermKey generates a key for lexicon lookup by term.
func makeLexiconTermKey(term string) []byte {
	return []byte(lexiconTermPrefix + term)
}

// makeLexiconRootKey generates a composite key for the root index.
func makeLexiconRootKey(root string, id core.ID) []byte {
	return []byte(lexiconRootPrefix + root + keySep + padID(id))
}

// makePartialLexiconRootKey generates a partial key for root queries.
func makePartialLexiconRootKey(root string) []byte {
	return []byte(lexiconRootPrefix + root + keySep)
}

// parseKeyID reads an ID written by padID.
func parseKeyID(s []byte) (core.ID, error) {
	v, err := strconv.ParseUint(string(s), 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: key id %q: %w", storage.ErrSerializationFailed, s, err)
	}
	return core.ID(v), nil
}

// padID renders an ID as fixed-width hex so keys sort numerically.
func padID(id core.ID) string {
	s := id.String()
	for len(s) < 16 {
		s = "0" + s
	}
	return s
}
