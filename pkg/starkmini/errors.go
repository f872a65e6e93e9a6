package starkmini

import (
	"errors"
	"fmt"

	"github.com/starkmini/starkmini/internal/starkmini/core"
	"github.com/starkmini/starkmini/internal/starkmini/protocols"
	"github.com/starkmini/starkmini/internal/starkmini/utils"
)

// ErrorCode represents a pipeline error code
type ErrorCode int

const (
	// ErrUnknown represents an unknown error
	ErrUnknown ErrorCode = iota

	// ErrInvalidConfig represents an invalid parameter configuration
	ErrInvalidConfig

	// ErrFieldCreation represents a field creation error
	ErrFieldCreation

	// ErrInvalidTrace represents a malformed trace matrix
	ErrInvalidTrace

	// ErrNoSubgroupOfOrder means the field has no multiplicative subgroup
	// of the requested domain size
	ErrNoSubgroupOfOrder

	// ErrInvalidTraceLength means the trace length disagrees with the
	// parameters
	ErrInvalidTraceLength

	// ErrConstraintArity means the constraint window does not fit the trace
	ErrConstraintArity

	// ErrDuplicatePoint represents an interpolation over repeated x values
	ErrDuplicatePoint

	// ErrDivisionByZero represents division by the zero element or the
	// zero polynomial
	ErrDivisionByZero

	// ErrProofGeneration represents a proof generation error
	ErrProofGeneration

	// ErrMalformedProof represents an undecodable proof encoding
	ErrMalformedProof
)

// PipelineError represents a pipeline error with its classification
type PipelineError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error returns the error message
func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("starkmini error [%d]: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("starkmini error [%d]: %s", e.Code, e.Message)
}

// Unwrap returns the cause of the error
func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error
func (e *PipelineError) Is(target error) bool {
	t, ok := target.(*PipelineError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// pipelineError wraps an internal error with the code its sentinel maps to
func pipelineError(message string, err error) *PipelineError {
	return &PipelineError{Code: classify(err), Message: message, Cause: err}
}

func classify(err error) ErrorCode {
	switch {
	case errors.Is(err, utils.ErrInvalidConfig):
		return ErrInvalidConfig
	case errors.Is(err, protocols.ErrNoSubgroupOfOrder):
		return ErrNoSubgroupOfOrder
	case errors.Is(err, protocols.ErrInvalidTraceLength):
		return ErrInvalidTraceLength
	case errors.Is(err, protocols.ErrConstraintArity):
		return ErrConstraintArity
	case errors.Is(err, core.ErrDuplicatePoint):
		return ErrDuplicatePoint
	case errors.Is(err, core.ErrDivisionByZero):
		return ErrDivisionByZero
	case errors.Is(err, protocols.ErrMalformedProof):
		return ErrMalformedProof
	default:
		return ErrProofGeneration
	}
}
