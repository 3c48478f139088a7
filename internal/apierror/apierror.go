// Package apierror defines the JSON bodies the storefront returns on 4xx and
// 5xx responses. Handlers never hand a raw service or database error to a
// client; everything passes through these envelopes so the shape stays
// uniform and internals stay hidden.
package apierror

// APIError is the single-message envelope used by most error responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError carries one message per offending request field alongside
// the summary line, so clients can annotate individual form inputs.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Validation failed", Fields: fields}
}
