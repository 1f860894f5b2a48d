package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/occupation-classifier/internal/models"
)

var ErrClassificationNotFound = errors.New("classification not found")

const maxListLimit = 100

type ClassificationRepository interface {
	Create(record *models.ClassificationRecord) error
	FindByID(id uuid.UUID) (*models.ClassificationRecord, error)
	FindRecent(limit int) ([]models.ClassificationRecord, error)
}

type classificationRepository struct {
	db *gorm.DB
}

func NewClassificationRepository(db *gorm.DB) ClassificationRepository {
	return &classificationRepository{db: db}
}

func (r *classificationRepository) Create(record *models.ClassificationRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create classification: %w", err)
	}
	return nil
}

func (r *classificationRepository) FindByID(id uuid.UUID) (*models.ClassificationRecord, error) {
	var record models.ClassificationRecord
	if err := r.db.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassificationNotFound
		}
		return nil, fmt.Errorf("failed to find classification: %w", err)
	}
	return &record, nil
}

// FindRecent returns the newest records first. limit is clamped to 1..100.
func (r *classificationRepository) FindRecent(limit int) ([]models.ClassificationRecord, error) {
	limit = ClampLimit(limit)

	var records []models.ClassificationRecord
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find classifications: %w", err)
	}

	return records, nil
}

func ClampLimit(limit int) int {
	if limit < 1 {
		return 20
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
