package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/occupation-classifier/internal/models"
	"alfredoptarigan/occupation-classifier/internal/repositories"
)

type HistoryHandler struct {
	repo repositories.ClassificationRepository
}

func NewHistoryHandler(repo repositories.ClassificationRepository) *HistoryHandler {
	return &HistoryHandler{repo: repo}
}

// HandleGetClassification handles GET /api/classifications/:id
func (h *HistoryHandler) HandleGetClassification(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid classification ID format")
	}

	record, err := h.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrClassificationNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Classification not found")
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to load classification")
	}

	return c.JSON(record)
}

// HandleListClassifications handles GET /api/classifications?limit=N
func (h *HistoryHandler) HandleListClassifications(c *fiber.Ctx) error {
	limit := repositories.ClampLimit(c.QueryInt("limit", 20))

	records, err := h.repo.FindRecent(limit)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to load classifications")
	}
	if records == nil {
		records = []models.ClassificationRecord{}
	}

	return c.JSON(models.HistoryListResponse{
		Classifications: records,
		Count:           len(records),
	})
}
