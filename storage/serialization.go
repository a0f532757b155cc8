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

package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/poiesic/marifa/core"
)

// IDs and lexicon entries use their MUS codecs. Concepts and nodes carry
// attribute maps and are stored as JSON, which normalizes attribute values
// to JSON types: numbers decode as float64, arrays as []any and objects as
// map[string]any.

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, n, err := core.IDMUS.Unmarshal(data)
	if err == nil && n != len(data) {
		err = errTrailingBytes
	}
	if err != nil {
		return 0, fmt.Errorf("%w: id: %w", ErrSerializationFailed, err)
	}
	return id, nil
}

// MarshalConcept serializes a ConceptRecord to bytes.
func MarshalConcept(concept *core.ConceptRecord) ([]byte, error) {
	return marshal(concept)
}

// UnmarshalConcept deserializes a ConceptRecord from bytes.
func UnmarshalConcept(data []byte) (*core.ConceptRecord, error) {
	var concept core.ConceptRecord
	if err := unmarshal(data, &concept); err != nil {
		return nil, err
	}
	return &concept, nil
}

// MarshalNode serializes a KnowledgeNode to bytes.
func MarshalNode(node *core.KnowledgeNode) ([]byte, error) {
	return marshal(node)
}

// UnmarshalNode deserializes a KnowledgeNode from bytes.
func UnmarshalNode(data []byte) (*core.KnowledgeNode, error) {
	var node core.KnowledgeNode
	if err := unmarshal(data, &node); err != nil {
		return nil, err
	}
	if node.Attributes == nil {
		node.Attributes = map[string]any{}
	}
	if node.Relationships == nil {
		node.Relationships = map[string]core.Edge{}
	}
	if node.VerificationResults == nil {
		node.VerificationResults = []core.VerificationResult{}
	}
	return &node, nil
}

// MarshalLexiconEntry serializes a LexiconEntry to bytes.
func MarshalLexiconEntry(entry *core.LexiconEntry) ([]byte, error) {
	buf := make([]byte, core.LexiconEntryMUS.Size(*entry))
	core.LexiconEntryMUS.Marshal(*entry, buf)
	return buf, nil
}

// UnmarshalLexiconEntry deserializes a LexiconEntry from bytes.
func UnmarshalLexiconEntry(data []byte) (*core.LexiconEntry, error) {
	entry, n, err := core.LexiconEntryMUS.Unmarshal(data)
	if err == nil && n != len(data) {
		err = errTrailingBytes
	}
	if err != nil {
		return nil, fmt.Errorf("%w: lexicon entry: %w", ErrSerializationFailed, err)
	}
	return &entry, nil
}

var errTrailingBytes = errors.New("trailing bytes after record")

func marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

func unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return nil
}
