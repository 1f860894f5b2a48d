package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/occupation-classifier/internal/models"
)

// DefaultTemperature keeps code/name stable while letting the reason vary slightly.
const DefaultTemperature float32 = 0.3

// Decision is the adjudicator's pick. InCandidates is false when the model
// returned a code that was not offered; the decision is still returned.
type Decision struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Reason       string `json:"reason"`
	InCandidates bool   `json:"-"`
}

type DecisionAdjudicator struct {
	generator     Generator
	temperature   float32
	promptBuilder *PromptBuilder
	logger        *zap.Logger
}

func NewDecisionAdjudicator(generator Generator, temperature float32, logger *zap.Logger) *DecisionAdjudicator {
	if temperature < 0 {
		temperature = DefaultTemperature
	}
	return &DecisionAdjudicator{
		generator:     generator,
		temperature:   temperature,
		promptBuilder: NewPromptBuilder(),
		logger:        logger,
	}
}

// Decide asks the model to pick one candidate and parses its JSON answer.
func (a *DecisionAdjudicator) Decide(ctx context.Context, query string, candidates []models.Candidate) (*Decision, error) {
	prompt := a.promptBuilder.BuildClassificationPrompt(query, candidates)

	response, err := a.generator.GenerateJSON(ctx, prompt, DecisionSchema(), a.temperature)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate decision: %w", ErrAdjudication, err)
	}

	decision, err := parseDecision(response)
	if err != nil {
		return nil, err
	}

	for _, c := range candidates {
		if c.Code == decision.Code {
			decision.InCandidates = true
			break
		}
	}
	if !decision.InCandidates {
		a.logger.Warn("⚠️ Adjudicated code is not among the candidates",
			zap.String("code", decision.Code),
			zap.Int("candidates", len(candidates)))
	}

	return decision, nil
}

type rawDecision struct {
	Code   *string `json:"code"`
	Name   *string `json:"name"`
	Reason *string `json:"reason"`
}

func parseDecision(response string) (*Decision, error) {
	var raw rawDecision
	if err := json.Unmarshal([]byte(stripCodeFence(response)), &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal JSON: %w", ErrAdjudication, err)
	}

	missing := make([]string, 0, 3)
	if raw.Code == nil || strings.TrimSpace(*raw.Code) == "" {
		missing = append(missing, "code")
	}
	if raw.Name == nil || strings.TrimSpace(*raw.Name) == "" {
		missing = append(missing, "name")
	}
	if raw.Reason == nil || strings.TrimSpace(*raw.Reason) == "" {
		missing = append(missing, "reason")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: response is missing %s", ErrAdjudication, strings.Join(missing, ", "))
	}

	return &Decision{
		Code:   strings.TrimSpace(*raw.Code),
		Name:   strings.TrimSpace(*raw.Name),
		Reason: strings.TrimSpace(*raw.Reason),
	}, nil
}

// stripCodeFence removes a surrounding markdown code fence, if any.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
