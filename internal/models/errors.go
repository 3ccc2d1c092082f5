package models

import (
	"fmt"
	"net/http"

	"github.com/Column-org/Column-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	// Validation errors
	ErrorCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	ErrorCodeMissingField   ErrorCode = "MISSING_FIELD"
	ErrorCodeInvalidKey     ErrorCode = "INVALID_PUBLIC_KEY"
	ErrorCodeMalformedJSON  ErrorCode = "MALFORMED_JSON"
	ErrorCodeNoFaucet       ErrorCode = "NO_FAUCET"

	// Lookup errors
	ErrorCodeNotFound ErrorCode = "NOT_FOUND"

	// Rate limiting errors
	ErrorCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"

	// Upstream/dependency errors
	ErrorCodeRPCUnavailable ErrorCode = "RPC_UNAVAILABLE"
	ErrorCodeFaucetFailure  ErrorCode = "FAUCET_FAILURE"
	ErrorCodeEmailFailure   ErrorCode = "EMAIL_FAILURE"
	ErrorCodeInternalError  ErrorCode = "INTERNAL_ERROR"
)

// HTTPStatusCode returns the appropriate HTTP status code for each error type
func (e ErrorCode) HTTPStatusCode() int {
	switch e {
	case ErrorCodeInvalidRequest, ErrorCodeMissingField, ErrorCodeInvalidKey,
		ErrorCodeMalformedJSON, ErrorCodeNoFaucet:
		return http.StatusBadRequest
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// AppError represents an application error with context
type AppError struct {
	Code       ErrorCode
	Message    string
	Details    string
	Cause      error
	StatusCode int
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: code.HTTPStatusCode(),
	}
}

// NewAppErrorWithCause creates a new application error with underlying cause
func NewAppErrorWithCause(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Cause:      cause,
		StatusCode: code.HTTPStatusCode(),
	}
}

// NewValidationError creates a client input error naming the offending field
func NewValidationError(message string) *AppError {
	return NewAppError(ErrorCodeMissingField, message)
}

// NewNotFoundError creates a not-found error
func NewNotFoundError(message string) *AppError {
	return NewAppError(ErrorCodeNotFound, message)
}

// NewUpstreamError wraps a dependency failure behind a generic message;
// the cause is logged server-side and never surfaced to the caller.
func NewUpstreamError(code ErrorCode, message string, cause error) *AppError {
	return NewAppErrorWithCause(code, message, cause)
}

// production controls whether error details leak into HTTP responses.
var production bool

// SetProductionMode configures response detail suppression once at startup.
func SetProductionMode(p bool) {
	production = p
}

// HandleError converts an error into the JSON error response shape
// {"error": message, "details": ...} and logs it. Details are included
// only outside production, and only for server-side failures.
func HandleError(c *gin.Context, err error, log *logger.Logger) {
	appErr, ok := err.(*AppError)
	if !ok {
		appErr = NewAppErrorWithCause(ErrorCodeInternalError, "Internal server error", err)
	}

	logFields := []zap.Field{
		zap.String("error_code", string(appErr.Code)),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("client_ip", c.ClientIP()),
	}
	if appErr.Cause != nil {
		logFields = append(logFields, zap.Error(appErr.Cause))
	}

	if appErr.StatusCode >= 500 {
		log.Error(appErr.Message, logFields...)
	} else {
		log.Warn(appErr.Message, logFields...)
	}

	body := gin.H{"error": appErr.Message}
	if !production {
		details := appErr.Details
		if details == "" && appErr.Cause != nil {
			details = appErr.Cause.Error()
		}
		if details != "" {
			body["details"] = details
		}
	}

	c.JSON(appErr.StatusCode, body)
}
