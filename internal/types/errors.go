package types

// Machine-readable error kinds carried next to the human-readable message
// in every error response body.
const (
	KindValidation        = "validation_error"
	KindUnauthorized      = "unauthorized"
	KindDuplicateIdentity = "duplicate_identity"
	KindNotFound          = "not_found"
	KindInternal          = "internal_error"
	KindRateLimited       = "rate_limited"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}
