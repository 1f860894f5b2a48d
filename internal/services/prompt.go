package services

import (
	"fmt"
	"strings"

	"google.golang.org/genai"

	"alfredoptarigan/occupation-classifier/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildClassificationPrompt creates the adjudication prompt for one query and its candidates
func (pb *PromptBuilder) BuildClassificationPrompt(userInput string, candidates []models.Candidate) string {
	return fmt.Sprintf(`あなたは職業分類の専門家です。
ユーザーの入力と、候補となる職業分類リストを比較し、最も適切な職業分類を1つ選択してください。

【ユーザーの入力】
%s

【候補となる職業分類】
%s

上記の候補から最も適切な職業分類を1つ選択し、必ず以下のJSON形式で回答してください：
{
  "code": "職業コード",
  "name": "職業名",
  "reason": "この職業を選択した理由（日本語で簡潔に）"
}`, userInput, FormatCandidates(candidates))
}

// FormatCandidates renders one "code / name / description" line per candidate.
func FormatCandidates(candidates []models.Candidate) string {
	if len(candidates) == 0 {
		return "（候補なし）"
	}

	lines := make([]string, 0, len(candidates))
	for _, c := range candidates {
		lines = append(lines, fmt.Sprintf("- コード: %s, 名称: %s, 説明: %s",
			c.Code, c.Name, strings.TrimSpace(c.Description)))
	}

	return strings.Join(lines, "\n")
}

// DecisionSchema is the response schema for the adjudicator's JSON output.
func DecisionSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"code":   {Type: genai.TypeString, Description: "職業コード"},
			"name":   {Type: genai.TypeString, Description: "職業名"},
			"reason": {Type: genai.TypeString, Description: "この職業を選択した理由"},
		},
		Required:         []string{"code", "name", "reason"},
		PropertyOrdering: []string{"code", "name", "reason"},
	}
}
