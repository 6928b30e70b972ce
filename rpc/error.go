package rpc

import "github.com/oasislabs/sui-gateway/errors"

// Error is the response returned by the server when it fails
// to satisfy a request
type Error struct {
	// ErrorCode is a unique identifier for the error that can be used to identify
	// the particular type of error encountered
	ErrorCode int `json:"errorCode"`

	// Category tells apart errors caused by the input from errors
	// caused by the system
	Category string `json:"category"`

	// Description is a human readable description of the error that occurred
	// to aid the client in debugging
	Description string `json:"description"`
}

// NewError creates the response for err. Generic internal errors
// do not expose their cause.
func NewError(err errors.Error) Error {
	description := err.Message()
	if err.ErrorCode() == errors.ErrInternalError {
		description = err.ErrorCode().Desc()
	}

	return Error{
		ErrorCode:   err.ErrorCode().Code(),
		Category:    string(err.ErrorCode().Category()),
		Description: description,
	}
}

// Error is the implementation of go's error interface for Error
func (e Error) Error() string {
	return e.Description
}
