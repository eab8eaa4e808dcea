package schema

import (
	"encoding/json"
	"fmt"
	"os"
)

// Message is a single chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// PairMetadata carries provenance for a DPO pair.
type PairMetadata struct {
	RecipeID        int    `json:"recipe_id"`
	RecipeName      string `json:"recipe_name"`
	Category        string `json:"category"`
	Context         string `json:"context"`
	DifficultyLevel string `json:"difficulty_level"`
	RecipeCategory  string `json:"recipe_category"`
	RecipeCountry   string `json:"recipe_country"`
}

// DPOPair is one preference-tuning example: a two-message prompt plus a
// preferred and a dispreferred completion.
type DPOPair struct {
	Messages []Message    `json:"messages"`
	Chosen   string       `json:"chosen"`
	Rejected string       `json:"rejected"`
	Metadata PairMetadata `json:"metadata"`
}

// LoadPairs reads a finalized dataset (JSON array of DPO pairs).
func LoadPairs(path string) ([]DPOPair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	var pairs []DPOPair
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}

	return pairs, nil
}

// SavePairs writes DPO pairs as an indented JSON array.
func SavePairs(path string, pairs []DPOPair) error {
	data, err := json.MarshalIndent(pairs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	return nil
}
