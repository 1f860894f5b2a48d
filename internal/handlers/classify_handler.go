package handlers

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/occupation-classifier/internal/models"
	"alfredoptarigan/occupation-classifier/internal/services"
)

type ClassifyHandler struct {
	classifier     services.Classifier
	history        services.HistoryRecorder
	maxInputLength int
	logger         *zap.Logger
}

// NewClassifyHandler builds the classify endpoint. history may be nil.
func NewClassifyHandler(
	classifier services.Classifier,
	history services.HistoryRecorder,
	maxInputLength int,
	logger *zap.Logger,
) *ClassifyHandler {
	return &ClassifyHandler{
		classifier:     classifier,
		history:        history,
		maxInputLength: maxInputLength,
		logger:         logger,
	}
}

// HandleClassify handles POST /api/classify
func (h *ClassifyHandler) HandleClassify(c *fiber.Ctx) error {
	if h.classifier == nil || !h.classifier.Status().Initialized {
		return errorJSON(c, fiber.StatusServiceUnavailable, "Classifier is not initialized")
	}

	var req models.ClassifyRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	if strings.TrimSpace(req.UserInput) == "" {
		return errorJSON(c, fiber.StatusBadRequest, "user_input is required")
	}

	if h.maxInputLength > 0 && utf8.RuneCountInString(req.UserInput) > h.maxInputLength {
		return errorJSON(c, fiber.StatusBadRequest,
			fmt.Sprintf("user_input must be at most %d characters", h.maxInputLength))
	}

	h.logger.Info("📥 Classification request", zap.String("user_input", preview(req.UserInput, 50)))

	result, err := h.classifier.Classify(c.UserContext(), req.UserInput)
	if err != nil {
		status := StatusForError(err)
		h.logger.Error("❌ Classification failed", zap.Int("status", status), zap.Error(err))
		return errorJSON(c, status, publicMessage(status, err))
	}

	if h.history != nil {
		h.history.Record(result)
	}

	return c.JSON(result)
}

// StatusForError maps classification error kinds to HTTP status codes.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrNotInitialized):
		return fiber.StatusServiceUnavailable
	case services.IsProviderError(err):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func publicMessage(status int, err error) string {
	switch status {
	case fiber.StatusBadRequest:
		return err.Error()
	case fiber.StatusServiceUnavailable:
		return "Classifier is not initialized"
	case fiber.StatusBadGateway:
		return "Embedding provider is unavailable, please retry"
	default:
		return fmt.Sprintf("判定処理中にエラーが発生しました: %v", err)
	}
}

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Error: message,
		Code:  status,
	})
}

func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
