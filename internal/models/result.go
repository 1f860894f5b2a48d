package models

type ClassifyRequest struct {
	UserInput string `json:"user_input" validate:"required,min=1,max=500"`
}

type HealthResponse struct {
	Status          string `json:"status"`
	Message         string `json:"message"`
	Entries         int    `json:"entries,omitempty"`
	EmbeddingsReady bool   `json:"embeddings_ready"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

type HistoryListResponse struct {
	Classifications []ClassificationRecord `json:"classifications"`
	Count           int                    `json:"count"`
}
