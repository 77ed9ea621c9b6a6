package dto

// ErrorResponseDTO unifies the error response shape across all routes.
type ErrorResponseDTO struct {
	Error string `json:"error" example:"post not found"`
}

// MessageResponseDTO unifies plain message responses.
type MessageResponseDTO struct {
	Message string `json:"message" example:"ok"`
}
