package handlers

// Error codes carried in ErrorResponse.Code. Clients branch on these, so
// values are stable once released.
//
// Input problems on POST /chat are not in this list: they answer with the
// chat prompt body instead of an error envelope.
const (
	ErrCodeNotFound         = "not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeUnavailable      = "unavailable"
	ErrCodeTooLarge         = "payload_too_large"
	ErrCodeInternal         = "internal_error"

	// Written by middleware (which cannot import this package); listed so the
	// taxonomy is complete in one place.
	ErrCodeRateLimited = "too_many_requests"

	// Interaction log
	ErrCodeLogFailed  = "log_failed"
	ErrCodeListFailed = "list_failed"
)
