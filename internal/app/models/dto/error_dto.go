package dto

// ErrorResponse is the wire shape of every error the API returns. Error
// carries debug detail and is only populated outside production mode.
type ErrorResponse struct {
	Message string `json:"message" example:"Not found"`
	Error   string `json:"error,omitempty"`
}

// NewErrorResponse creates an error body with just a message
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Message: message}
}

// WithDebug attaches debug detail to the error body
func (e ErrorResponse) WithDebug(detail string) ErrorResponse {
	e.Error = detail
	return e
}
