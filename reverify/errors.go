package reverify

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrIntegratorRequired is returned when no graph integrator is provided.
	ErrIntegratorRequired = errors.New("graph integrator required")

	// ErrNodeRepositoryRequired is returned when no node repository is provided.
	ErrNodeRepositoryRequired = errors.New("node repository required")
)
