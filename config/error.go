package config

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrKeyNotSet is returned when a required key has no value
// from flags, environment or file
type ErrKeyNotSet struct {
	Key string
}

func (e ErrKeyNotSet) Error() string {
	return fmt.Sprintf("configuration key needs to be set %s", e.Key)
}

// ErrInvalidValue is returned when a key is set to a value outside
// of the accepted ones
type ErrInvalidValue struct {
	Key          string
	InvalidValue string
	Values       []string
}

func (e ErrInvalidValue) Error() string {
	return fmt.Sprintf("configuration key %s set to invalid value %s. "+
		"Accepted values are: %s.", e.Key, e.InvalidValue, strings.Join(e.Values, ", "))
}

type ErrParseFlags struct {
	Cause error
}

func (e ErrParseFlags) Error() string {
	return fmt.Sprintf("failed to parse flags %s", e.Cause.Error())
}

func (e ErrParseFlags) Unwrap() error {
	return e.Cause
}

var (
	ErrAlreadyParsed = errors.New("arguments already parsed")
)
