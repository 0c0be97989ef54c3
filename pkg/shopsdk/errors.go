package shopsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/storefront/pkg/httpx"
)

// ============================================================================
// APIError
// ============================================================================

// APIError is a {"message": ...} error response. The server writes them with
// WriteError and the client decodes failed responses back into them.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// WriteError writes e as the response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteMessage(w, e.StatusCode, e.Message)
}

func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message}
}

// Messages the web client matches on.
var (
	ErrInvalidBody = &APIError{StatusCode: http.StatusBadRequest, Message: "Invalid request body"}
	ErrServerError = &APIError{StatusCode: http.StatusInternalServerError, Message: "Internal server error"}

	// ErrSignInFailed is the single answer to every failed sign-in.
	ErrSignInFailed = &APIError{StatusCode: http.StatusUnauthorized, Message: "Invalid email, password or code"}

	ErrUserNotFound        = &APIError{StatusCode: http.StatusNotFound, Message: "User Not Found"}
	ErrEmailTaken          = &APIError{StatusCode: http.StatusConflict, Message: "Email already registered"}
	ErrPasswordsDoNotMatch = &APIError{StatusCode: http.StatusBadRequest, Message: "Passwords do not match"}

	ErrCategoryNotFound = &APIError{StatusCode: http.StatusNotFound, Message: "Category Not Found"}
	ErrCategoryExists   = &APIError{StatusCode: http.StatusConflict, Message: "Category Already Exists"}
	ErrCategoryName     = &APIError{StatusCode: http.StatusBadRequest, Message: "Category name is required"}

	ErrNoFileUploaded = &APIError{StatusCode: http.StatusBadRequest, Message: "No file uploaded"}
	ErrUploadTooLarge = &APIError{StatusCode: http.StatusRequestEntityTooLarge, Message: "File too large"}
	ErrInvalidFile    = &APIError{StatusCode: http.StatusBadRequest, Message: "Invalid file name"}

	ErrTwoFactorAlreadyEnabled = &APIError{StatusCode: http.StatusConflict, Message: "Two-factor authentication already enabled"}
	ErrTwoFactorNotEnabled     = &APIError{StatusCode: http.StatusBadRequest, Message: "Two-factor authentication not enabled"}
	ErrTwoFactorNotEnrolled    = &APIError{StatusCode: http.StatusBadRequest, Message: "Two-factor enrolment not started"}
	ErrInvalidCode             = &APIError{StatusCode: http.StatusBadRequest, Message: "Invalid code"}

	ErrBootstrapDisabled     = &APIError{StatusCode: http.StatusNotFound, Message: "Bootstrap not enabled"}
	ErrBootstrapUnauthorized = &APIError{StatusCode: http.StatusUnauthorized, Message: "Invalid bootstrap token"}
	ErrBootstrapAlready      = &APIError{StatusCode: http.StatusConflict, Message: "System already bootstrapped"}
)

// parseErrorResponse turns an unexpected response into an *APIError, falling
// back to the status text when the body is not a message. Callers only reach
// it on a status mismatch, so a 2xx is an error here too.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: errResp.Message}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}

// ============================================================================
// Sign-in Controller Errors
// ============================================================================

var (
	// ErrSubmissionInFlight is returned when a submit arrives while the
	// previous request is still outstanding.
	ErrSubmissionInFlight = errors.New("shopsdk: a submission is already in flight")

	// ErrInvalidTransition is returned when an action is not allowed in the
	// controller's current state.
	ErrInvalidTransition = errors.New("shopsdk: invalid sign-in state transition")
)

// Stage identifies which round of the sign-in exchange failed.
type Stage string

const (
	StagePrimary   Stage = "primary"
	StageChallenge Stage = "challenge"
)

// ValidationError reports a required field left empty. No request was made.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " is required"
}

// AuthError means the server rejected the credentials or the code. The
// message never says which check failed.
type AuthError struct {
	Stage Stage
	Err   error
}

func (e *AuthError) Error() string {
	if e.Stage == StageChallenge {
		return "invalid code"
	}
	return "sign-in failed"
}

func (e *AuthError) Unwrap() error { return e.Err }

// TransportError covers network failures, timeouts, unexpected statuses and
// unreadable responses.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// classify sorts an Authority error into AuthError or TransportError.
func classify(stage Stage, err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		return &AuthError{Stage: stage, Err: err}
	}
	return &TransportError{Err: err}
}
