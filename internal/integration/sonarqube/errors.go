package sonarqube

import "errors"

var (
	// ErrRequestRejected is returned when the server reports the request as invalid (HTTP 4xx).
	ErrRequestRejected = errors.New("request rejected by server")
	// ErrServiceUnavailable is returned when the server cannot be reached or fails (HTTP 5xx).
	ErrServiceUnavailable = errors.New("service unavailable")
	// ErrMalformedResponse is returned when a response cannot be decoded or lacks an expected field.
	ErrMalformedResponse = errors.New("malformed response")

	errInvalidServerURL = errors.New("invalid server url")
)
