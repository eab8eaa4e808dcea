package converter

import (
	"gastronomia/pkg/schema"
)

// Flatten converts nested DPO pairs into flat rows for columnar formats.
// The system prompt and question are pulled from the two-message prompt.
func Flatten(pairs []schema.DPOPair) []schema.FlatPair {
	rows := make([]schema.FlatPair, 0, len(pairs))
	for _, pair := range pairs {
		var systemPrompt, question string
		for _, msg := range pair.Messages {
			switch msg.Role {
			case "system":
				systemPrompt = msg.Content
			case "user":
				question = msg.Content
			}
		}

		rows = append(rows, schema.FlatPair{
			SystemPrompt:    systemPrompt,
			Question:        question,
			Chosen:          pair.Chosen,
			Rejected:        pair.Rejected,
			RecipeID:        int32(pair.Metadata.RecipeID),
			RecipeName:      pair.Metadata.RecipeName,
			Category:        pair.Metadata.Category,
			DifficultyLevel: pair.Metadata.DifficultyLevel,
		})
	}
	return rows
}
