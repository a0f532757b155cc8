// Package ingestion feeds analyzed text into the knowledge graph.
//
// The Pipeline type manages the ingestion workflow for one source text:
//   - Analyzing the text for patterns, entities and relationships
//   - Storing one knowledge node per entity, reusing nodes the same source already holds
//   - Linking nodes with the discovered relationships
//   - Verifying the new nodes asynchronously
//   - Registering entities in the concept store asynchronously
//
// Processing is performed concurrently using worker pools to maximize throughput.
// Errors during async processing are logged but do not fail the ingestion operation.
package ingestion
