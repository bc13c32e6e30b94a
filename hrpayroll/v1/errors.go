package v1

import (
	"errors"
	"fmt"
	"strconv"
)

// APIError is a response the backend answered with a status the operation does not accept,
// or an accepted status whose body could not be decoded (Message is empty then).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return strconv.Itoa(e.StatusCode)
}

// TransportError means no response arrived: network failure, cancelled context,
// or a request that could not be built.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

func IsTransportError(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}

// StatusCode returns the HTTP status carried by err, or 0 when there is none.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// ErrorMessage is the text shown to an operator for a failed call: the server's
// error text, else the numeric status, else the transport error text.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return tErr.Error()
	}
	return fmt.Sprint(err)
}
