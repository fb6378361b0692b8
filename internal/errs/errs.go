package errs

import "errors"

var (
	ErrNoCredentials    = errors.New("no account credentials loaded")
	ErrMalformedAuth    = errors.New("auth string has no user payload")
	ErrMissingField     = errors.New("response is missing an expected field")
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrAdNotCounted     = errors.New("ad interaction was not counted properly")
)
