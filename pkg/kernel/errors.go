package kernel

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is returned when a shape is asked for with a
	// non-positive dimension or a segment count below the geometric minimum.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnsupported is returned by kernels that cannot build a shape.
	ErrUnsupported = errors.New("unsupported by kernel")

	// ErrMalformedMesh is returned by Mesh.Validate.
	ErrMalformedMesh = errors.New("malformed mesh")
)

// InvalidParameterError describes which parameter of which shape was rejected.
// It unwraps to ErrInvalidParameter.
type InvalidParameterError struct {
	Shape  string
	Param  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s: %s %s = %g: %s", ErrInvalidParameter, e.Shape, e.Param, e.Value, e.Reason)
}

func (e *InvalidParameterError) Unwrap() error {
	return ErrInvalidParameter
}

func invalid(shape, param string, value float64, reason string) error {
	return &InvalidParameterError{Shape: shape, Param: param, Value: value, Reason: reason}
}
