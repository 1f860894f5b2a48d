package models

import (
	"time"

	"github.com/google/uuid"
)

// ClassificationRecord is the persisted history row for a ClassificationResult.
type ClassificationRecord struct {
	ID           uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserInput    string      `gorm:"type:text;not null" json:"user_input"`
	Code         string      `gorm:"type:text;index" json:"code"`
	Name         string      `gorm:"type:text" json:"name"`
	Reason       string      `gorm:"type:text" json:"reason"`
	InCandidates bool        `gorm:"not null" json:"in_candidates"`
	Candidates   []Candidate `gorm:"type:jsonb;serializer:json" json:"candidates"`
	CreatedAt    time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (ClassificationRecord) TableName() string {
	return "classifications"
}

func NewClassificationRecord(result *ClassificationResult) *ClassificationRecord {
	return &ClassificationRecord{
		ID:           result.ID,
		UserInput:    result.UserInput,
		Code:         result.Code,
		Name:         result.Name,
		Reason:       result.Reason,
		InCandidates: result.InCandidates,
		Candidates:   result.Candidates,
		CreatedAt:    result.ClassifiedAt,
	}
}
