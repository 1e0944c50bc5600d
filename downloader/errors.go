package downloader

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of bulk download errors
type ErrorType int

const (
	// ErrorServerValidation is a 2xx response that is not binary data (an HTML error page)
	ErrorServerValidation ErrorType = iota
	// ErrorHTTPStatus is a non-2xx response status
	ErrorHTTPStatus
	// ErrorTransientTransport covers connection, DNS and timeout failures before a response arrives
	ErrorTransientTransport
	// ErrorResponseBody is a failure while streaming an accepted response body
	ErrorResponseBody
	// ErrorLocalWrite is a failure creating or writing the destination file
	ErrorLocalWrite
	// ErrorInvalidRequest is a request that cannot be built from the configuration
	ErrorInvalidRequest
	// ErrorCancelled is a run stopped by its context
	ErrorCancelled
	// ErrorUnknown is any failure outside the categories above
	ErrorUnknown
)

// String returns the string representation of the error type
func (et ErrorType) String() string {
	switch et {
	case ErrorServerValidation:
		return "server_validation"
	case ErrorHTTPStatus:
		return "http_status"
	case ErrorTransientTransport:
		return "transient_transport"
	case ErrorResponseBody:
		return "response_body"
	case ErrorLocalWrite:
		return "local_write"
	case ErrorInvalidRequest:
		return "invalid_request"
	case ErrorCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Fatal reports whether errors of this type must stop the run
func (et ErrorType) Fatal() bool {
	return et != ErrorTransientTransport
}

// Local reports whether errors of this type come from persisting a response
// and must terminate the process rather than end the run normally
func (et ErrorType) Local() bool {
	return et == ErrorLocalWrite || et == ErrorResponseBody
}

// DownloadError represents a structured error that occurred during a bulk download
type DownloadError struct {
	Type    ErrorType              `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"cause,omitempty"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (de *DownloadError) Error() string {
	if de.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", de.Type.String(), de.Message, de.Cause)
	}
	return fmt.Sprintf("%s: %s", de.Type.String(), de.Message)
}

// Unwrap returns the underlying cause error
func (de *DownloadError) Unwrap() error {
	return de.Cause
}

// NewDownloadError creates a new DownloadError with the specified type and message
func NewDownloadError(errorType ErrorType, message string) *DownloadError {
	return &DownloadError{
		Type:    errorType,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// NewDownloadErrorWithCause creates a new DownloadError with a cause
func NewDownloadErrorWithCause(errorType ErrorType, message string, cause error) *DownloadError {
	return &DownloadError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// WithContext adds context information to the error
func (de *DownloadError) WithContext(key string, value interface{}) *DownloadError {
	if de.Context == nil {
		de.Context = make(map[string]interface{})
	}
	de.Context[key] = value
	return de
}

// IsType checks if the error is of a specific type
func (de *DownloadError) IsType(errorType ErrorType) bool {
	return de.Type == errorType
}

// IsDownloadError checks if an error is, or wraps, a DownloadError and optionally of a specific type
func IsDownloadError(err error, errorType ...ErrorType) bool {
	var de *DownloadError
	if !errors.As(err, &de) {
		return false
	}
	if len(errorType) == 0 {
		return true
	}
	for _, et := range errorType {
		if de.Type == et {
			return true
		}
	}
	return false
}
