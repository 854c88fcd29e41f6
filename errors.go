package scribe

import (
	"errors"

	"github.com/farcloser/scribe/internal/integration/sonarqube"
)

var (
	// ErrConfiguration is returned before any remote call when required settings are missing or invalid.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrRequestRejected is returned when the server reports a request as malformed.
	ErrRequestRejected = sonarqube.ErrRequestRejected
	// ErrServiceUnavailable is returned when the server cannot be reached.
	ErrServiceUnavailable = sonarqube.ErrServiceUnavailable
	// ErrMalformedResponse is returned when a payload lacks an expected field.
	ErrMalformedResponse = sonarqube.ErrMalformedResponse
)
