package commonerrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCategory string

const (
	CategoryValidation   ErrorCategory = "VALIDATION"
	CategoryAuth         ErrorCategory = "AUTH"
	CategoryNotFound     ErrorCategory = "NOT_FOUND"
	CategoryConflict     ErrorCategory = "CONFLICT"
	CategoryUnauthorized ErrorCategory = "UNAUTHORIZED"
	CategoryStore        ErrorCategory = "STORE"
	CategoryInternal     ErrorCategory = "INTERNAL"
)

// DomainError is the single error currency between layers. Repositories and
// services return these; only the HTTP layer turns them into responses.
type DomainError interface {
	error
	Code() string
	Category() ErrorCategory
	HTTPStatus() int
	Message() string
	Unwrap() error
	WithCause(cause error) DomainError
}

type domainError struct {
	code     string
	category ErrorCategory
	status   int
	message  string
	cause    error
}

func (e *domainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *domainError) Code() string             { return e.code }
func (e *domainError) Category() ErrorCategory  { return e.category }
func (e *domainError) HTTPStatus() int          { return e.status }
func (e *domainError) Message() string          { return e.message }
func (e *domainError) Unwrap() error            { return e.cause }

func (e *domainError) WithCause(cause error) DomainError {
	return &domainError{
		code:     e.code,
		category: e.category,
		status:   e.status,
		message:  e.message,
		cause:    cause,
	}
}

// Is lets errors.Is match a derived error (one carrying a cause) against its
// sentinel by code.
func (e *domainError) Is(target error) bool {
	var de *domainError
	if !errors.As(target, &de) {
		return false
	}
	return e.code == de.code
}

func NewDomainError(code string, category ErrorCategory, status int, message string) DomainError {
	return &domainError{
		code:     code,
		category: category,
		status:   status,
		message:  message,
	}
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

	ErrNoteNotFound = NewDomainError(
		"NOTE_NOT_FOUND",
		CategoryNotFound,
		http.StatusNotFound,
		"note not found",
	)

	// The public contract reports a duplicate title as a bad request, so the
	// status stays 400 even though the category is CONFLICT.
	ErrDuplicateTitle = NewDomainError(
		"DUPLICATE_TITLE",
		CategoryConflict,
		http.StatusBadRequest,
		"note with that title already exists",
	)

	ErrUserNotFound = NewDomainError(
		"USER_NOT_FOUND",
		CategoryNotFound,
		http.StatusNotFound,
		"user not found",
	)

	ErrEmailAlreadyExists = NewDomainError(
		"EMAIL_ALREADY_EXISTS",
		CategoryConflict,
		http.StatusConflict,
		"user with that email already exists",
	)

	ErrInvalidCredentials = NewDomainError(
		"INVALID_CREDENTIALS",
		CategoryAuth,
		http.StatusBadRequest,
		"invalid email or password",
	)

	// Same client-facing message as ErrInvalidCredentials; which part of the
	// credentials was wrong is never revealed.
	ErrPasswordMismatch = NewDomainError(
		"PASSWORD_MISMATCH",
		CategoryConflict,
		http.StatusConflict,
		"invalid email or password",
	)

	ErrMissingToken = NewDomainError(
		"MISSING_TOKEN",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"missing authentication token",
	)

	ErrInvalidToken = NewDomainError(
		"INVALID_TOKEN",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"token is invalid or expired",
	)

	ErrValidation = NewDomainError(
		"VALIDATION_FAILED",
		CategoryValidation,
		http.StatusBadRequest,
		"validation failed",
	)

	ErrStoreFailure = NewDomainError(
		"STORE_FAILURE",
		CategoryStore,
		http.StatusInternalServerError,
		"database operation failed",
	)

	ErrInternal = NewDomainError(
		"INTERNAL_ERROR",
		CategoryInternal,
		http.StatusInternalServerError,
		"internal server error",
	)
)
