package pricing

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameters is matched by every *InvalidParameterError.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrNumerical reports a non-finite result, typically overflow from
	// extreme inputs.
	ErrNumerical = errors.New("numerical error")
)

// InvalidParameterError names the field that violated its domain.
type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameters: %s %s (got %g)", e.Field, e.Reason, e.Value)
}

// Is makes errors.Is(err, ErrInvalidParameters) hold.
func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameters
}
