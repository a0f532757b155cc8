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

// Package explore performs bounded, cycle-safe exploration of the concept store.
//
// An exploration starts from a concept name and walks depth-first: every
// stored concept whose name contains the query is emitted together with up
// to three related concepts, and each related concept is explored in turn
// at one less depth. A name is entered at most once per call. Names with no
// stored match are materialized as concepts of type "unknown", so
// exploration grows the store.
//
// Every call is retained as an ExplorationRecord that can be looked up later.
package explore
