package models

import (
	"time"

	"github.com/google/uuid"
)

// OccupationEntry is one row of the occupation catalog. Code identifies the entry.
type OccupationEntry struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// EmbeddingText is the text embedded for the entry in document mode.
func (e OccupationEntry) EmbeddingText() string {
	return e.Name + ": " + e.Description
}

type Candidate struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Similarity  float64 `json:"similarity"`
}

// ClassificationResult is the outcome of one classification request.
// InCandidates reports whether Code was among the offered candidates.
type ClassificationResult struct {
	ID           uuid.UUID   `json:"id"`
	Code         string      `json:"code"`
	Name         string      `json:"name"`
	Reason       string      `json:"reason"`
	Candidates   []Candidate `json:"candidates"`
	UserInput    string      `json:"user_input"`
	InCandidates bool        `json:"in_candidates"`
	ClassifiedAt time.Time   `json:"classified_at"`
}
