package services

import (
	"errors"
	"fmt"
)

// Error kinds. Stages wrap these together with the underlying cause, so callers
// can test both with errors.Is.
var (
	ErrDataLoad       = errors.New("data load error")
	ErrEmbedding      = errors.New("embedding error")
	ErrRetrieval      = errors.New("retrieval error")
	ErrAdjudication   = errors.New("adjudication error")
	ErrValidation     = errors.New("validation error")
	ErrNotInitialized = errors.New("classifier not initialized")
)

type ClassificationStage string

const (
	StageValidation   ClassificationStage = "validation"
	StageRetrieval    ClassificationStage = "retrieval"
	StageAdjudication ClassificationStage = "adjudication"
)

// ClassificationError is returned by Classify for every failure. The wrapped
// error still carries the specific kind.
type ClassificationError struct {
	Stage ClassificationStage
	Err   error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classification failed at %s: %v", e.Stage, e.Err)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// IsClientError reports whether err was caused by bad caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsProviderError reports whether err came from the embedding provider and is
// worth retrying by the caller.
func IsProviderError(err error) bool {
	return errors.Is(err, ErrEmbedding) || errors.Is(err, ErrRetrieval)
}
