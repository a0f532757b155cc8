// Package reverify re-runs the verification pipeline over stored knowledge
// nodes.
//
// Node confidence is maintained incrementally as verification results are
// appended. A sweep appends one more round of results to every node (or to the
// nodes of one source), which lets confidence follow changed source
// reliability tables or verification methods. The package supports batch
// iteration, bounded concurrency within a batch, progress tracking and retry
// with exponential backoff for transient storage failures.
package reverify
