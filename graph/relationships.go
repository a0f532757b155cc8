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

package graph

// reverseTypes maps an edge type to the type of its reverse edge.
var reverseTypes = map[string]string{
	"similar_to":      "similar_to",
	"opposite_of":     "opposite_of",
	"co_occurs_with":  "co_occurs_with",
	"related_to":      "related_to",
	"contrasts_with":  "contrasts_with",
	"associated_with": "associated_with",
	"leads_to":        "results_from",
	"results_from":    "leads_to",
	"implies":         "implied_by",
	"exemplifies":     "exemplified_by",
	"has_attribute":   "attribute_of",
	"located_in":      "location_of",
	"participated_in": "had_participant",
	"occurred_in":     "site_of",
	"practices":       "practiced_by",
	"cultivates":      "cultivated_by",
	"opposes":         "opposed_by",
	"part_of":         "has_part",
	"has_part":        "part_of",
	"parent_of":       "child_of",
	"child_of":        "parent_of",
}

// ReverseType returns the type of the reverse edge for relType, falling back
// to relType + "_by".
func ReverseType(relType string) string {
	if r, ok := reverseTypes[relType]; ok {
		return r
	}
	return relType + "_by"
}

// IsSymmetric reports whether relType is its own reverse, e.g. co_occurs_with.
func IsSymmetric(relType string) bool {
	return ReverseType(relType) == relType
}

// RelationshipOption configures CreateRelationship.
type RelationshipOption func(*relationshipConfig)

type relationshipConfig struct {
	confidence    float64
	bidirectional bool
}

// WithConfidence sets the edge confidence. Default 1.0.
func WithConfidence(confidence float64) RelationshipOption {
	return func(c *relationshipConfig) {
		c.confidence = confidence
	}
}

// Bidirectional also creates the reverse edge on the target.
func Bidirectional() RelationshipOption {
	return func(c *relationshipConfig) {
		c.bidirectional = true
	}
}
