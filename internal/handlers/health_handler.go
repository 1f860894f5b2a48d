package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/occupation-classifier/internal/models"
	"alfredoptarigan/occupation-classifier/internal/services"
)

type HealthHandler struct {
	classifier services.Classifier
}

func NewHealthHandler(classifier services.Classifier) *HealthHandler {
	return &HealthHandler{classifier: classifier}
}

// HandleRoot handles GET /
func (h *HealthHandler) HandleRoot(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status:  "ok",
		Message: "職業分類判定API - POST /api/classify で判定できます",
	})
}

// HandleHealth handles GET /api/health
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	if h.classifier == nil {
		return errorJSON(c, fiber.StatusServiceUnavailable, "Classifier is not initialized")
	}

	status := h.classifier.Status()
	if !status.Initialized {
		return errorJSON(c, fiber.StatusServiceUnavailable, "Classifier is not initialized")
	}

	return c.JSON(models.HealthResponse{
		Status:          "healthy",
		Message:         fmt.Sprintf("職業分類データ %d 件をロード済み", status.Entries),
		Entries:         status.Entries,
		EmbeddingsReady: status.EmbeddingsReady,
	})
}
