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

// Package graph maintains the persistent knowledge graph and scores the
// trustworthiness of its nodes.
//
// The Integrator stores KnowledgeNodes through a storage.NodeRepository,
// links them with directed edges (a bidirectional link is two independent
// edges) and runs an ordered pipeline of verification methods against a
// node. Methods are dispatched concurrently on an ants worker pool and their
// outcomes are folded into the node in pipeline order, so the dampened
// confidence is reproducible:
//
//	confidence' = 0.3*confidence + 0.7*score(history)
//
// A failing or panicking method is logged and skipped; it never blocks the
// other methods or the node from being returned.
//
// Example:
//
//	integrator, err := graph.NewIntegrator(nodes, graph.WithPoolSize(4))
//	if err != nil {
//	    return err
//	}
//	defer integrator.Release()
//
//	a, _ := integrator.CreateNode(ctx, "concept", "التقوى", "quran", attrs, true)
//	b, _ := integrator.CreateNode(ctx, "concept", "الصبر", "quran", attrs, true)
//	ok, err := integrator.CreateRelationship(ctx, a.ID, b.ID, "similar_to", graph.Bidirectional())
package graph
