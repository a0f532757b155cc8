package ingestion

import "errors"

var (
	// ErrOrchestratorRequired is returned when an analysis orchestrator is not provided.
	ErrOrchestratorRequired = errors.New("analysis orchestrator required")

	// ErrIntegratorRequired is returned when a graph integrator is not provided.
	ErrIntegratorRequired = errors.New("graph integrator required")

	// ErrEmptySource is returned when ingesting without a source tag.
	ErrEmptySource = errors.New("source tag cannot be empty")
)
