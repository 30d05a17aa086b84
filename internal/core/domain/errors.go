package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured error code.
type DomainError struct {
	Code    string // Error code (e.g., "AC-SESS-4010")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
// Two DomainErrors compare equal when their codes match.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Authentication errors (AUTH)
// ============================================================================

var (
	// ErrAuthFailed indicates the backend rejected the login credentials.
	// The backend's own message travels in Details; session state is
	// never mutated by a failed login.
	ErrAuthFailed = NewDomainError("AC-AUTH-4010", "authentication failed")

	// ErrNotAuthenticated indicates an operation requires an active session.
	ErrNotAuthenticated = NewDomainError("AC-AUTH-4011", "not authenticated")

	// ErrForbidden indicates the current role does not satisfy a
	// required role.
	ErrForbidden = NewDomainError("AC-AUTH-4030", "insufficient role")
)

// ============================================================================
// Session errors (SESS)
// ============================================================================

var (
	// ErrSessionDecode indicates a token or persisted identity could not
	// be decoded. Always recovered locally: the session is treated as
	// empty and persisted state is purged, never surfaced to the user.
	ErrSessionDecode = NewDomainError("AC-SESS-4220", "session record cannot be decoded")

	// ErrSessionExpired indicates the identity's expiry has passed.
	ErrSessionExpired = NewDomainError("AC-SESS-4410", "session expired")
)

// ============================================================================
// Metrics errors (METR)
// ============================================================================

var (
	// ErrInputType indicates a metrics payload was not textual.
	ErrInputType = NewDomainError("AC-METR-4150", "metrics payload is not text")
)

// ============================================================================
// Network errors (NET)
// ============================================================================

var (
	// ErrNetwork indicates a backend fetch failed. Surfaced as a
	// retry-capable error; not retried automatically beyond the fetch
	// layer's own policy.
	ErrNetwork = NewDomainError("AC-NET-5020", "backend request failed")
)
