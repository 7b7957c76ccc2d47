package api

import "errors"

var (
	// ErrUnavailable means the backend could not be reached (DNS, refused
	// connection, timeout).
	ErrUnavailable = errors.New("backend unavailable")

	// ErrRejected means the backend answered and refused the request.
	ErrRejected = errors.New("backend rejected request")

	// ErrBadResponse means the backend answered 2xx with a body the client
	// could not parse.
	ErrBadResponse = errors.New("malformed backend response")
)
