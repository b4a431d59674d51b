package model

import (
	"fmt"
	"time"
)

// ErrorCode represents a structured API error code.
type ErrorCode string

const (
	ErrValidation        ErrorCode = "VALIDATION_ERROR"
	ErrNotFound          ErrorCode = "NOT_FOUND"
	ErrOracleUnavailable ErrorCode = "ORACLE_UNAVAILABLE"
	ErrMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
	ErrInvalidPayload    ErrorCode = "INVALID_HEALTH_PAYLOAD"
	ErrUnknownJob        ErrorCode = "UNKNOWN_JOB"
	ErrJobFailed         ErrorCode = "JOB_EXECUTION_FAILED"
	ErrInternal          ErrorCode = "INTERNAL_ERROR"
)

// APIError is a structured error returned by the kborch API.
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAPIError creates an APIError with the given code and message.
func NewAPIError(code ErrorCode, msg string) *APIError {
	return &APIError{Code: code, Message: msg}
}

// Response is the standard API response envelope.
type Response struct {
	Status    string    `json:"status"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Error     *APIError `json:"error"`
}
