package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeAuth represents authentication/authorization errors
	ErrorTypeAuth ErrorType = "auth"
	// ErrorTypeStore represents graph database errors
	ErrorTypeStore ErrorType = "store"
	// ErrorTypeNotify represents reminder delivery errors
	ErrorTypeNotify ErrorType = "notify"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Auth errors

// ErrInvalidCredentials is returned when email/password verification fails
var ErrInvalidCredentials = NewBaseError(ErrorTypeAuth, "invalid credentials", nil)

// ErrMissingToken is returned when a request carries no bearer token
var ErrMissingToken = NewBaseError(ErrorTypeAuth, "missing bearer token", nil)

// ErrTokenInvalid is returned when a bearer token fails verification
type ErrTokenInvalid struct {
	*BaseError
	Reason string
}

func NewTokenInvalid(reason string, err error) *ErrTokenInvalid {
	return &ErrTokenInvalid{
		BaseError: NewBaseError(ErrorTypeAuth, fmt.Sprintf("invalid token: %s", reason), err),
		Reason:    reason,
	}
}

// ErrEmailTaken is returned when registering an email that already exists
type ErrEmailTaken struct {
	*BaseError
	Email string
}

func NewEmailTaken(email string) *ErrEmailTaken {
	return &ErrEmailTaken{
		BaseError: NewBaseError(ErrorTypeAuth, fmt.Sprintf("email already registered: %s", email), nil),
		Email:     email,
	}
}

// Store errors

// ErrStoreConnectionFailed is returned when the Neo4j connection fails
type ErrStoreConnectionFailed struct {
	*BaseError
	URI string
}

func NewStoreConnectionFailed(uri string, err error) *ErrStoreConnectionFailed {
	return &ErrStoreConnectionFailed{
		BaseError: NewBaseError(ErrorTypeStore, fmt.Sprintf("failed to connect to Neo4j: %s", uri), err),
		URI:       uri,
	}
}

// Notify errors

// ErrNotifyFailed is returned when a reminder cannot be delivered
type ErrNotifyFailed struct {
	*BaseError
	Channel   string
	Recipient string
}

func NewNotifyFailed(channel, recipient string, err error) *ErrNotifyFailed {
	return &ErrNotifyFailed{
		BaseError: NewBaseError(ErrorTypeNotify, fmt.Sprintf("failed to deliver via %s", channel), err),
		Channel:   channel,
		Recipient: recipient,
	}
}

// ErrNoDeliveryChannel is returned when a user has no linked delivery channel
type ErrNoDeliveryChannel struct {
	*BaseError
	UserID string
}

func NewNoDeliveryChannel(userID string) *ErrNoDeliveryChannel {
	return &ErrNoDeliveryChannel{
		BaseError: NewBaseError(ErrorTypeNotify, fmt.Sprintf("user has no delivery channel: %s", userID), nil),
		UserID:    userID,
	}
}

// Config errors

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

func (e *BaseError) errorType() ErrorType { return e.Type }

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	for err != nil {
		if typed, ok := err.(interface{ errorType() ErrorType }); ok {
			return typed.errorType() == errType
		}
		wrapped, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = wrapped.Unwrap()
	}
	return false
}
