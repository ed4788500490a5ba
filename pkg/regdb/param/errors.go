package param

import "errors"

var (
	// ErrUnresolvedParameter reports a parameter reference whose identity is
	// not registered. The half-built-model fallback lives in
	// Value.ResolveOrDefault, not here.
	ErrUnresolvedParameter = errors.New("unresolved parameter reference")

	// ErrParameterCycle reports a chain of parameter references longer than
	// the resolver is willing to follow.
	ErrParameterCycle = errors.New("parameter reference cycle")

	// ErrBadValue reports a persisted value that could not be parsed as an
	// integer.
	ErrBadValue = errors.New("malformed parameter value")
)
