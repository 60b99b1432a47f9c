package ration

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is returned when a trip or layout parameter is outside its domain.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParameterError names the rejected parameter and its value.
// It unwraps to ErrInvalidParameter.
type ParameterError struct {
	Name  string
	Value int
}

// InvalidParameter builds a ParameterError for the named parameter.
func InvalidParameter(name string, value int) error {
	return &ParameterError{Name: name, Value: value}
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s must be a positive integer, got %d", e.Name, e.Value)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}
