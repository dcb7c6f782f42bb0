package newsapi

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork matches every *NetworkError.
	ErrNetwork = errors.New("newsapi: network error")
	// ErrDecode matches every *DecodeError.
	ErrDecode = errors.New("newsapi: decode error")
)

// NetworkError means the request never produced a response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("newsapi fetch: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// DecodeError means the response body did not have the expected shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("newsapi decode: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// APIError is a non-2xx answer. Code and Message are filled when the body
// is a NewsAPI error object, e.g. {"status":"error","code":"apiKeyInvalid"}.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("newsapi: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("newsapi: status %d: %s: %s", e.StatusCode, e.Code, e.Message)
}
