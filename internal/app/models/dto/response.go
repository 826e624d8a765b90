package dto

// ErrorResponse is the opaque failure envelope. Every failed request maps to a
// 500 with a fixed per-endpoint message; the underlying error is only logged.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse acknowledges mutations that return no record (delete, apply).
type SuccessResponse struct {
	Success bool `json:"success"`
}

// NewErrorResponse wraps a static message in the failure envelope.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}
