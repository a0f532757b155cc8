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

package core

import (
	"encoding/binary"
	"strconv"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored domain records.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// String returns the ID in lowercase hexadecimal.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 16)
}

// ContentKey builds a stable string identifier with the given prefix from
// the content parts, e.g. ContentKey("ent", "concept", "التقوى").
func ContentKey(prefix string, parts ...string) string {
	content := prefix
	for _, p := range parts {
		content += "\x1f" + p
	}
	return prefix + "-" + IDFromContent(content).String()
}

// PatternType tags the kind of structure a Pattern matched.
type PatternType string

const (
	PatternConditionalSequence PatternType = "conditional_sequence"
	PatternExclusivity         PatternType = "exclusivity"
	PatternAddress             PatternType = "address"
	PatternRepetition          PatternType = "repetition"
	PatternOath                PatternType = "oath"
	PatternProhibition         PatternType = "prohibition"
	PatternQuestionAnswer      PatternType = "question_answer"
	PatternThemeRepetition     PatternType = "theme_repetition"
)

// Pattern is a structurally or semantically recognizable text fragment.
// Offsets are character (rune) offsets into the analyzed text; End is exclusive.
type Pattern struct {
	ID         string         `json:"id"`
	Type       PatternType    `json:"type"`
	Text       string         `json:"text"`
	Start      int            `json:"start"`
	End        int            `json:"end"`
	Confidence float64        `json:"confidence"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// EntityType classifies an Entity.
type EntityType string

const (
	EntityPerson      EntityType = "person"
	EntityPlace       EntityType = "place"
	EntityConcept     EntityType = "concept"
	EntityEvent       EntityType = "event"
	EntityAttribute   EntityType = "attribute"
	EntityCommand     EntityType = "command"
	EntityProhibition EntityType = "prohibition"
)

// Reference is one occurrence of an entity in a source text.
type Reference struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
}

// Entity is a named, typed term recognized in text.
type Entity struct {
	ID         string         `json:"id"`
	Type       EntityType     `json:"type"`
	Name       string         `json:"name"`
	Attributes map[string]any `json:"attributes,omitempty"`
	References []Reference    `json:"references"`
}

// Category returns the entity's "category" attribute, or "" when unset.
func (e *Entity) Category() string {
	return StringAttribute(e.Attributes, "category")
}

// Evidence backs a Relationship with the signal that produced it.
type Evidence struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

// Relationship is a typed, confidence-scored directed link between two
// entities or knowledge items. The same shape serves discovery-time
// relationships and reasoning-time relations.
type Relationship struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	SourceID   string     `json:"sourceId"`
	TargetID   string     `json:"targetId"`
	Confidence float64    `json:"confidence"`
	Evidence   []Evidence `json:"evidence"`
}

// KnowledgeItem is a member of the reasoning engine's universe.
type KnowledgeItem struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Attributes  map[string]any `json:"attributes,omitempty"`
}

// Category returns the item's "category" attribute, or "" when unset.
func (k *KnowledgeItem) Category() string {
	return StringAttribute(k.Attributes, "category")
}

// ConceptTypeUnknown is assigned to concepts materialized during exploration.
const ConceptTypeUnknown = "unknown"

// ConceptRecord is a concept stored in the concept store.
type ConceptRecord struct {
	Id         ID             `json:"id"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Attributes map[string]any `json:"attributes,omitempty"`
	References []ID           `json:"references,omitempty"`
	InsertedAt time.Time      `json:"insertedAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// Tuple returns a string representation of the concept as "(Type,Name)".
// This is used for generating deterministic IDs.
func (c *ConceptRecord) Tuple() string {
	return "(" + c.Type + "," + c.Name + ")"
}

// ExplorationStatus tracks the lifecycle of an ExplorationRecord.
type ExplorationStatus string

const (
	ExplorationPending   ExplorationStatus = "pending"
	ExplorationCompleted ExplorationStatus = "completed"
	ExplorationFailed    ExplorationStatus = "failed"
)

// ExplorationRecord is the retained result of one exploration call.
// Results are in pre-order: a concept precedes the concepts discovered from it.
type ExplorationRecord struct {
	ID          string            `json:"id"`
	ConceptName string            `json:"conceptName"`
	Timestamp   time.Time         `json:"timestamp"`
	Status      ExplorationStatus `json:"status"`
	Results     []ConceptRecord   `json:"results"`
	Error       string            `json:"error,omitempty"`
}

// LexiconEntry is a vocabulary entry in the lexicon store.
type LexiconEntry struct {
	Id         ID        `json:"id"`
	Term       string    `json:"term"`
	Root       string    `json:"root,omitempty"`
	Type       string    `json:"type,omitempty"`
	Definition string    `json:"definition,omitempty"`
	Examples   []string  `json:"examples,omitempty"`
	Generated  bool      `json:"generated"`
	InsertedAt time.Time `json:"insertedAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// AnalysisMetadata describes one analysis pass.
type AnalysisMetadata struct {
	Timestamp  time.Time      `json:"timestamp"`
	DurationMs int64          `json:"durationMs"`
	Options    map[string]any `json:"options"`
}

// AnalysisResult is the combined output of one text-analysis pass.
type AnalysisResult struct {
	ID            string           `json:"id"`
	Text          string           `json:"text"`
	Entities      []Entity         `json:"entities"`
	Relationships []Relationship   `json:"relationships"`
	Patterns      []Pattern        `json:"patterns"`
	Metadata      AnalysisMetadata `json:"metadata"`
}

// StringAttribute returns attrs[key] when it holds a string, else "".
func StringAttribute(attrs map[string]any, key string) string {
	if v, ok := attrs[key].(string); ok {
		return v
	}
	return ""
}

// StringsAttribute returns attrs[key] as a string slice. Both []string and
// []any holding strings (the shape produced by JSON decoding) are accepted.
func StringsAttribute(attrs map[string]any, key string) []string {
	switch v := attrs[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{v}
	}
	return nil
}
