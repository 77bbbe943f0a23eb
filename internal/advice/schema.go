package advice

import "github.com/abhisek/careerpath/internal/llm"

// AdviceSchema defines the JSON schema requested in structured mode.
var AdviceSchema = &llm.Schema{
	Name:        "career-advice",
	Description: "Career roles, skills to learn, career paths and industry insights for a skill set",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"careerRoles": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Job titles that fit the current skills",
			},
			"skillsToLearn": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Skills to learn next",
			},
			"careerPaths": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title":       map[string]any{"type": "string"},
						"description": map[string]any{"type": "string"},
						"steps": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
					},
					"required":             []any{"title", "description", "steps"},
					"additionalProperties": false,
				},
			},
			"industryInsights": map[string]any{
				"type":        "string",
				"description": "Short paragraph on demand and trends",
			},
		},
		"required":             []any{"careerRoles", "skillsToLearn", "careerPaths", "industryInsights"},
		"additionalProperties": false,
	},
}
