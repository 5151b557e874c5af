package apperr

import (
	"errors"
	"net/http"
)

// Sentinel errors for every failure class the pipeline can produce. Each is
// mapped to a user-facing status and message exactly once, at the handler
// boundary; anything wrapped underneath is for logs only.
var (
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrAccountNotFound     = errors.New("account_not_found")
	ErrNoFile              = errors.New("no_file")
	ErrInsufficientCredits = errors.New("insufficient_credits")
	ErrUnprocessableImage  = errors.New("unprocessable_image")
	ErrQuotaExceeded       = errors.New("quota_exceeded")
	ErrUpstreamFault       = errors.New("upstream_fault")
	ErrInferenceFailed     = errors.New("inference_failed")
	ErrStorageFailure      = errors.New("storage_failure")
	ErrLedgerConflict      = errors.New("ledger_conflict")
	ErrIndexNotReady       = errors.New("index_not_ready")
	ErrRateLimited         = errors.New("rate_limited")
)

// Status returns the HTTP status code for err.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNoFile), errors.Is(err, ErrUnprocessableImage):
		return http.StatusBadRequest
	// A ledger conflict is a lost race on the balance check; the client sees
	// the same response as the optimistic pre-check failure.
	case errors.Is(err, ErrInsufficientCredits), errors.Is(err, ErrLedgerConflict):
		return http.StatusForbidden
	case errors.Is(err, ErrQuotaExceeded), errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the user-facing message for err. Internal detail stays in
// the logs.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return "No token provided or invalid format"
	case errors.Is(err, ErrAccountNotFound):
		return "User document does not exist"
	case errors.Is(err, ErrNoFile):
		return "No file uploaded"
	case errors.Is(err, ErrInsufficientCredits), errors.Is(err, ErrLedgerConflict):
		return "You do not have enough credits to process this image."
	case errors.Is(err, ErrUnprocessableImage):
		return "Error processing image data"
	case errors.Is(err, ErrQuotaExceeded):
		return "API quota exceeded. Please try again later or consider upgrading to a premium plan for higher limits."
	case errors.Is(err, ErrUpstreamFault):
		return "An internal server error occurred. Please try again later."
	case errors.Is(err, ErrRateLimited):
		return "Too many requests, please try again later."
	case errors.Is(err, ErrIndexNotReady):
		return "The database is not yet ready. Please try again in a few minutes."
	default:
		return "An error occurred while processing the image"
	}
}
