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

// Package reasoning derives relations between knowledge items.
//
// The Engine holds a fixed universe of knowledge items and an ordered list
// of inference rules. DiscoverRelations compares two items by type and
// category, applies every rule and records explicit implications listed in
// the source item's attributes. InferKnowledge sweeps one item against the
// whole universe.
//
// Item attributes read by the engine:
//
//	category      string    shared categories raise similarity
//	polarity      string    "positive" or "negative"
//	opposite      string    name of the opposing item
//	leads_to      []string  names of items this one leads to
//	virtues       []string  names of items a person exemplifies
//	implications  []string  names of items this one implies
package reasoning
