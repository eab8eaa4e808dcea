package session

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// NewProgress builds a checkpoint for the current position in the batch.
func NewProgress(cfg Config, recipeIdx, totalRecipes, questionIdx, totalQuestions int, recipeName string) Progress {
	var pct float64
	if totalRecipes > 0 && totalQuestions > 0 {
		pct = float64(recipeIdx*totalQuestions+questionIdx) / float64(totalRecipes*totalQuestions) * 100
	}

	return Progress{
		SessionID:            cfg.SessionID,
		Timestamp:            time.Now().Format(time.RFC3339),
		CurrentRecipeIdx:     recipeIdx,
		TotalRecipes:         totalRecipes,
		CurrentQuestionIdx:   questionIdx,
		TotalQuestions:       totalQuestions,
		CurrentRecipeName:    recipeName,
		CompletionPercentage: pct,
	}
}

// SaveProgress overwrites the progress file atomically via a temp file
// and rename.
func SaveProgress(cfg Config, p Progress) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}

	tempPath := cfg.ProgressPath() + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write progress: %w", err)
	}

	if err := os.Rename(tempPath, cfg.ProgressPath()); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename progress file: %w", err)
	}

	return nil
}

// LoadProgress reads the progress file. ok is false when no progress file
// exists or it cannot be parsed.
func LoadProgress(cfg Config) (Progress, bool) {
	data, err := os.ReadFile(cfg.ProgressPath())
	if err != nil {
		return Progress{}, false
	}

	var p Progress
	if err := json.Unmarshal(data, &p); err != nil {
		return Progress{}, false
	}

	return p, true
}

// ClearProgress removes the progress file after a completed run.
func ClearProgress(cfg Config) error {
	err := os.Remove(cfg.ProgressPath())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove progress file: %w", err)
	}
	return nil
}
