package sim

import "errors"

// Status is the outcome code reported to callers of a sampler.
type Status int

const (
	// StatusSuccess: a finalized configuration is returned.
	StatusSuccess Status = 0
	// StatusNoCoalescence: the exact sampler exhausted its horizon budget.
	// Callers may retry with a larger budget.
	StatusNoCoalescence Status = 1
	// StatusUnsupportedParameters: the parameters are valid for the model but
	// violate a precondition of the sampler (e.g. no dominating rate exists).
	StatusUnsupportedParameters Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNoCoalescence:
		return "no-coalescence"
	case StatusUnsupportedParameters:
		return "unsupported-parameters"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidParameters marks a configuration error: a parameter outside
	// its admissible range. Detected before any sampling begins.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrUnsupportedParameters marks parameters that are admissible for the
	// model but for which a sampler's mathematical precondition fails.
	ErrUnsupportedParameters = errors.New("unsupported parameters")
)
