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
	"maps"
	"slices"
	"time"
)

const (
	// previousWeight and scoreWeight blend a node's prior confidence with
	// the normalized verification score on every verification append.
	previousWeight = 0.3
	scoreWeight    = 0.7
)

// Edge is the data of one directed edge, keyed by target node ID.
type Edge struct {
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

// VerificationResult is one entry in a node's verification history.
type VerificationResult struct {
	Timestamp  time.Time      `json:"timestamp"`
	Method     string         `json:"method"`
	Result     bool           `json:"result"`
	Confidence float64        `json:"confidence"`
	Details    map[string]any `json:"details,omitempty"`
}

// KnowledgeNode is a persisted, verifiable unit of knowledge.
// Relationships maps target node ID to edge data; at most one edge exists per
// (node, target) pair. Attributes hold JSON-typed values once persisted.
type KnowledgeNode struct {
	ID                  string               `json:"id"`
	Type                string               `json:"type"`
	Name                string               `json:"name"`
	Source              string               `json:"source"`
	Confidence          float64              `json:"confidence"`
	Attributes          map[string]any       `json:"attributes"`
	Relationships       map[string]Edge      `json:"relationships"`
	VerificationResults []VerificationResult `json:"verificationResults"`
	CreatedAt           time.Time            `json:"createdAt"`
	UpdatedAt           time.Time            `json:"updatedAt"`
}

// NewKnowledgeNode creates a node with full initial confidence.
func NewKnowledgeNode(id, nodeType, name, source string, attributes map[string]any) *KnowledgeNode {
	if attributes == nil {
		attributes = map[string]any{}
	}
	now := time.Now().UTC()
	return &KnowledgeNode{
		ID:                  id,
		Type:                nodeType,
		Name:                name,
		Source:              source,
		Confidence:          1.0,
		Attributes:          attributes,
		Relationships:       map[string]Edge{},
		VerificationResults: []VerificationResult{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// AddRelationship sets the edge to targetID, replacing any existing edge to it.
func (n *KnowledgeNode) AddRelationship(targetID, relType string, confidence float64) {
	if n.Relationships == nil {
		n.Relationships = map[string]Edge{}
	}
	n.Relationships[targetID] = Edge{Type: relType, Confidence: confidence}
	n.UpdatedAt = time.Now().UTC()
}

// HasRelationshipType reports whether any outgoing edge has the given type.
func (n *KnowledgeNode) HasRelationshipType(relType string) bool {
	for _, e := range n.Relationships {
		if e.Type == relType {
			return true
		}
	}
	return false
}

// AddVerificationResult appends a result and recomputes confidence as
// 0.3*previous + 0.7*VerificationScore().
func (n *KnowledgeNode) AddVerificationResult(method string, result bool, confidence float64, details map[string]any) {
	n.VerificationResults = append(n.VerificationResults, VerificationResult{
		Timestamp:  time.Now().UTC(),
		Method:     method,
		Result:     result,
		Confidence: confidence,
		Details:    details,
	})
	n.Confidence = Clamp01(previousWeight*n.Confidence + scoreWeight*n.VerificationScore())
	n.UpdatedAt = time.Now().UTC()
}

// VerificationScore maps the signed, confidence-weighted sum of the
// verification history into [0,1]. Passing results add their confidence,
// failing results subtract it. An empty or zero-weight history scores 0.5.
func (n *KnowledgeNode) VerificationScore() float64 {
	var sum, total float64
	for _, r := range n.VerificationResults {
		w := Clamp01(r.Confidence)
		total += w
		if r.Result {
			sum += w
		} else {
			sum -= w
		}
	}
	if total == 0 {
		return 0.5
	}
	return Clamp01((sum + total) / (2 * total))
}

// IsVerified reports whether the node has any verification history.
func (n *KnowledgeNode) IsVerified() bool {
	return len(n.VerificationResults) > 0
}

// Clone returns a deep copy of the node's maps and history. Attribute values
// themselves are shared.
func (n *KnowledgeNode) Clone() *KnowledgeNode {
	c := *n
	c.Attributes = maps.Clone(n.Attributes)
	c.Relationships = maps.Clone(n.Relationships)
	c.VerificationResults = slices.Clone(n.VerificationResults)
	if c.Attributes == nil {
		c.Attributes = map[string]any{}
	}
	if c.Relationships == nil {
		c.Relationships = map[string]Edge{}
	}
	return &c
}

// Clamp01 bounds v to [0,1].
func Clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
