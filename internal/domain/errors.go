package domain

import "errors"

// Sentinel errors forming the taxonomy used across the engine. Callers
// compare with errors.Is; the orchestrator and CLI map these to exit codes.
var (
	ErrInvalidTag      = errors.New("invalid tag")
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrBookmarkExists  = errors.New("bookmark already exists")
	ErrDuplicateName   = errors.New("duplicate name")
	ErrStoreFailure    = errors.New("store failure")
	ErrExternalFailure = errors.New("external failure")
	ErrTemplateFailure = errors.New("template failure")
	ErrExecutionFailure = errors.New("execution failure")
)
