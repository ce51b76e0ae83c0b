package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUserAlreadyExists = errors.New("user already exists")

// MissingParamError reports a required input that was empty or absent.
type MissingParamError struct {
	Param string
}

func NewMissingParamError(param string) *MissingParamError {
	return &MissingParamError{Param: param}
}

func (e *MissingParamError) Error() string {
	return "missing param: " + e.Param
}

// InvalidParamError reports an input that is present but malformed.
type InvalidParamError struct {
	Param string
}

func NewInvalidParamError(param string) *InvalidParamError {
	return &InvalidParamError{Param: param}
}

func (e *InvalidParamError) Error() string {
	return "invalid param: " + e.Param
}

// ConfigurationError is raised when a component was built without one or
// more of the collaborators it needs.
type ConfigurationError struct {
	Component string
	Missing   []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s misconfigured: missing %s", e.Component, strings.Join(e.Missing, ", "))
}

// IsValidationError reports whether err is a client input error.
func IsValidationError(err error) bool {
	var missing *MissingParamError
	var invalid *InvalidParamError

	return errors.As(err, &missing) || errors.As(err, &invalid)
}

func IsConfigurationError(err error) bool {
	var cfg *ConfigurationError
	return errors.As(err, &cfg)
}
