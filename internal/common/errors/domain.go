package commonerrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCategory string

const (
	CategoryValidation   ErrorCategory = "VALIDATION"
	CategoryNotFound     ErrorCategory = "NOT_FOUND"
	CategoryUnauthorized ErrorCategory = "UNAUTHORIZED"
	CategoryInternal     ErrorCategory = "INTERNAL"
	CategoryExternal     ErrorCategory = "EXTERNAL"
)

type DomainError interface {
	error
	Code() string
	Category() ErrorCategory
	HTTPStatus() int
	Message() string
	TraceID() string
	Unwrap() error
	Is(target error) bool
	WithCause(cause error) DomainError
	WithTraceID(traceID string) DomainError
}

type domainError struct {
	code     string
	category ErrorCategory
	status   int
	message  string
	traceID  string
	cause    error
}

func (e *domainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *domainError) Code() string {
	return e.code
}

func (e *domainError) Category() ErrorCategory {
	return e.category
}

func (e *domainError) HTTPStatus() int {
	return e.status
}

func (e *domainError) Message() string {
	return e.message
}

func (e *domainError) TraceID() string {
	return e.traceID
}

func (e *domainError) Unwrap() error {
	return e.cause
}

// Is matches any domain error carrying the same code, so sentinels still
// match after WithCause or WithTraceID produced a copy.
func (e *domainError) Is(target error) bool {
	var de DomainError
	if !errors.As(target, &de) {
		return false
	}
	return de.Code() == e.code
}

func (e *domainError) WithCause(cause error) DomainError {
	cp := *e
	cp.cause = cause
	return &cp
}

func (e *domainError) WithTraceID(traceID string) DomainError {
	cp := *e
	cp.traceID = traceID
	return &cp
}

func NewDomainError(code string, category ErrorCategory, status int, message string) DomainError {
	return &domainError{
		code:     code,
		category: category,
		status:   status,
		message:  message,
	}
}

func IsDomainError(err error) bool {
	var de DomainError
	return errors.As(err, &de)
}

func AsDomainError(err error) (DomainError, bool) {
	var de DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

var (
	ErrMissingRequiredEnv = NewDomainError(
		"MISSING_REQUIRED_ENV",
		CategoryValidation,
		http.StatusInternalServerError,
		"missing required environment variable",
	)

	ErrInvalidJWTSecret = NewDomainError(
		"INVALID_JWT_SECRET",
		CategoryValidation,
		http.StatusInternalServerError,
		"JWT_SECRET must be at least 32 bytes",
	)

	ErrInvalidConfig = NewDomainError(
		"INVALID_CONFIG",
		CategoryValidation,
		http.StatusInternalServerError,
		"invalid configuration value",
	)

	ErrCircuitOpen = NewDomainError(
		"CIRCUIT_OPEN",
		CategoryExternal,
		http.StatusServiceUnavailable,
		"circuit breaker is open",
	)

	ErrInvalidToken = NewDomainError(
		"INVALID_TOKEN",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"token is not valid",
	)

	ErrInvalidTokenSigningMethod = NewDomainError(
		"INVALID_TOKEN_SIGNING_METHOD",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid token signing method",
	)

	ErrInvalidTokenClaims = NewDomainError(
		"INVALID_TOKEN_CLAIMS",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid token claims",
	)

	ErrMissingTokenClaims = NewDomainError(
		"MISSING_TOKEN_CLAIMS",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"missing required token claims",
	)

	ErrSessionInvalid = NewDomainError(
		"SESSION_INVALID",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"session is not valid",
	)

	ErrUserNotFound = NewDomainError(
		"USER_NOT_FOUND",
		CategoryNotFound,
		http.StatusNotFound,
		"user not found",
	)

	ErrUserGetFailed = NewDomainError(
		"USER_GET_FAILED",
		CategoryInternal,
		http.StatusInternalServerError,
		"failed to get user",
	)

	ErrRecipeListFailed = NewDomainError(
		"RECIPE_LIST_FAILED",
		CategoryInternal,
		http.StatusInternalServerError,
		"failed to list recipes",
	)

	ErrServiceUnavailable = NewDomainError(
		"SERVICE_UNAVAILABLE",
		CategoryExternal,
		http.StatusServiceUnavailable,
		"service temporarily unavailable",
	)

	ErrInvalidFixtures = NewDomainError(
		"INVALID_FIXTURES",
		CategoryValidation,
		http.StatusInternalServerError,
		"invalid fixtures",
	)

	ErrInternalError = NewDomainError(
		"INTERNAL_ERROR",
		CategoryInternal,
		http.StatusInternalServerError,
		"internal server error",
	)

	ErrDatabaseError = NewDomainError(
		"DATABASE_ERROR",
		CategoryInternal,
		http.StatusInternalServerError,
		"database operation failed",
	)
)
