package common

import "errors"

var (

	// repository specific errors
	ErrorNotFound = errors.New("not found")

	// service specific errors
	ErrorInternal = errors.New("internal error")

	// validation errors for user-entered events
	ErrorInvalidEvent = errors.New("invalid event")

	// ErrorAlreadyExists = errors.New("already exists")
	// ErrorValidation    = errors.New("validation error")
)
