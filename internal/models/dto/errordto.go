package dto

type ErrorResponseDTO struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponseDTO struct {
	Status string `json:"status"`
}
