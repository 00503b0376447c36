package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation       = errors.New("input rejected")
	ErrCreditExhausted  = errors.New("no credits remaining")
	ErrNetwork          = errors.New("network error")
	ErrServer           = errors.New("server error")
	ErrDecode           = errors.New("unexpected response shape")
	ErrNoResult         = errors.New("no result returned")
	ErrSignInRequired   = errors.New("sign in required")
	ErrSuperseded       = errors.New("request superseded by a newer submission")
	ErrToolNotFound     = errors.New("tool not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSecretNotFound   = errors.New("secret not found")
	ErrNotTextual       = errors.New("result has no text representation")
	ErrResponseTooLarge = errors.New("response body too large")
)

// GenericFailureMessage is shown when the backend gave no usable reason.
const GenericFailureMessage = "Something went wrong while generating. Please try again."

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "contains prohibited content"
	}

	return fmt.Sprintf("%s: field %q %s", ErrValidation, e.Field, reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrNetwork, e.Op, e.Err)
}

func (e *NetworkError) Unwrap() []error {
	return []error{ErrNetwork, e.Err}
}

type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", ErrServer, e.Status)
	}

	return fmt.Sprintf("%s: status %d: %s", ErrServer, e.Status, e.Message)
}

func (e *ServerError) Unwrap() error {
	return ErrServer
}

type DecodeError struct {
	Shape Shape
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: expected %s", ErrDecode, e.Shape)
	}

	return fmt.Sprintf("%s: expected %s: %v", ErrDecode, e.Shape, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return ErrDecode
}

// UserMessage picks the text shown to the user for a failed backend call.
func UserMessage(err error) string {
	var serverErr *ServerError
	if errors.As(err, &serverErr) && serverErr.Message != "" {
		return serverErr.Message
	}

	return GenericFailureMessage
}
