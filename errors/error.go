package errors

import (
	"fmt"

	"github.com/oasislabs/sui-gateway/log"
)

// Err is the error type returned by the components of the gateway. It
// carries an ErrorCode so that callers can branch on the category of
// the error without matching strings
type Err interface {
	error
	log.Loggable

	// ErrorCode returns the code that identifies the error
	ErrorCode() ErrorCode

	// Cause returns the underlying cause, if any
	Cause() error
}

var (
	ErrInternalError = ErrorCode{
		category: InternalError,
		code:     1000,
		desc:     "Internal Error. Please check the status of the service.",
	}

	ErrSubmitTransaction = ErrorCode{
		category: InternalError,
		code:     1001,
		desc:     "submission failed",
	}

	ErrDecodeRawEffects = ErrorCode{
		category: InternalError,
		code:     1002,
		desc:     "bad raw effects",
	}

	ErrDecodeRawTransaction = ErrorCode{
		category: InternalError,
		code:     1003,
		desc:     "bad raw transaction",
	}

	ErrMissingEvents = ErrorCode{
		category: InternalError,
		code:     1004,
		desc:     "missing events facet",
	}

	ErrMissingBalanceChanges = ErrorCode{
		category: InternalError,
		code:     1005,
		desc:     "missing balance-changes facet",
	}

	ErrDecodeEvent = ErrorCode{
		category: InternalError,
		code:     1006,
		desc:     "bad event",
	}

	ErrDecodeBalanceChange = ErrorCode{
		category: InternalError,
		code:     1007,
		desc:     "bad balance change",
	}

	ErrPrometheusPushError = ErrorCode{
		category: InternalError,
		code:     1008,
		desc:     "Failed to push metrics to prometheus.",
	}

	ErrBadBase64TxBytes = ErrorCode{
		category: ClientError,
		code:     2001,
		desc:     "bad base64 for transaction bytes",
	}

	ErrBadBinaryTxData = ErrorCode{
		category: ClientError,
		code:     2002,
		desc:     "bad binary encoding for transaction data",
	}

	ErrBadBase64Signature = ErrorCode{
		category: ClientError,
		code:     2003,
		desc:     "bad base64 for signature",
	}

	ErrBadSignature = ErrorCode{
		category: ClientError,
		code:     2004,
		desc:     "bad signature",
	}

	ErrHttpContentLengthMissing = ErrorCode{
		category: ClientError,
		code:     2005,
		desc:     "Content-length header missing from request.",
	}

	ErrHttpContentLengthLimit = ErrorCode{
		category: ClientError,
		code:     2006,
		desc:     "Content-length exceeds request limit.",
	}

	ErrHttpContentTypeApplicationJson = ErrorCode{
		category: ClientError,
		code:     2007,
		desc:     "Content-type should be application/json.",
	}

	ErrDeserializeJSON = ErrorCode{
		category: ClientError,
		code:     2008,
		desc:     "Failed to deserialize body as JSON.",
	}

	ErrEmptyInput = ErrorCode{
		category: ClientError,
		code:     2009,
		desc:     "Input cannot be empty.",
	}
)

// Category defines error categories that logically group them. Callers
// use the category to tell apart "the input was bad" from "the system
// failed to process valid input"
type Category string

const (
	// InternalError refers to failures of the gateway or of the execution
	// backend, including backend responses that violate their contract.
	// The only action a user can take out of an InternalError is reach out
	// to the operator
	InternalError Category = "InternalError"

	// ClientError refers to errors that are returned because the input
	// provided by the caller is incorrect, malformed or could not be parsed.
	// They are always detected before any request reaches the backend
	ClientError Category = "ClientError"
)

// Error is the implementation of an error for this package. It contains
// an instance of an ErrorCode which provides information about the error
// and a cause which might be nil if there's no underlying cause for
// the error
type Error struct {
	cause     error
	errorCode ErrorCode
}

// Error is the implementation of error for Error
func (e Error) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("[%d] error code %s with desc %s",
			e.errorCode.Code(), e.errorCode.Category(), e.errorCode.Desc())
	}

	return fmt.Sprintf("[%d] error code %s with desc %s with cause %s",
		e.errorCode.Code(), e.errorCode.Category(), e.errorCode.Desc(), e.cause.Error())
}

// Message returns the description followed by the cause, which
// is the human readable message reported to callers
func (e Error) Message() string {
	if e.cause == nil {
		return e.errorCode.Desc()
	}

	return e.errorCode.Desc() + ": " + e.cause.Error()
}

// ErrorCode is the implementation of Err for Error
func (e Error) ErrorCode() ErrorCode {
	return e.errorCode
}

// Cause is the implementation of Err for Error
func (e Error) Cause() error {
	return e.cause
}

// Unwrap allows errors.Is and errors.As to inspect the cause
func (e Error) Unwrap() error {
	return e.cause
}

// Log implementation of log.Loggable
func (e Error) Log(fields log.Fields) {
	fields.Add("err", e.errorCode.Desc())
	fields.Add("errorCode", e.errorCode.Code())
	fields.Add("errorCategory", string(e.errorCode.Category()))

	if e.cause != nil {
		fields.Add("cause", e.cause.Error())
	}
}

// New creates a new instance of an error
func New(errorCode ErrorCode, cause error) Error {
	return Error{cause: cause, errorCode: errorCode}
}

// IsClientError returns true if err was caused by malformed
// caller input
func IsClientError(err error) bool {
	return hasCategory(err, ClientError)
}

// IsInternalError returns true if err was caused by a failure of
// the gateway or the backend
func IsInternalError(err error) bool {
	return hasCategory(err, InternalError)
}

func hasCategory(err error, category Category) bool {
	e, ok := err.(Err)
	if !ok {
		return false
	}

	return e.ErrorCode().Category() == category
}

// ErrorCode holds the necessary information to uniquely identify an error
// and make sure that a valuable response is returned to the user
// in case of encountering an error
type ErrorCode struct {
	// category is the type of the error
	category Category

	// code is a unique identifier for the error that can be used to identify
	// the particular type of error encountered
	code int

	// desc is a human readable description of the error that occurred
	// to aid the client in debugging
	desc string
}

// Category getter for category
func (e ErrorCode) Category() Category {
	return e.category
}

// Code getter for code
func (e ErrorCode) Code() int {
	return e.code
}

// Desc getter for desc
func (e ErrorCode) Desc() string {
	return e.desc
}
