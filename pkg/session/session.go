package session

import (
	"fmt"
	"path/filepath"
	"time"

	"gastronomia/pkg/schema"
)

// Record is one line of a session JSONL log: a DPO pair plus session
// bookkeeping that is stripped at finalize time.
type Record struct {
	Messages  []schema.Message    `json:"messages"`
	Chosen    string              `json:"chosen"`
	Rejected  string              `json:"rejected"`
	Metadata  schema.PairMetadata `json:"metadata"`
	Timestamp string              `json:"timestamp"`
	SessionID string              `json:"session_id"`
}

// Progress is the resume checkpoint, overwritten in place after every
// question.
type Progress struct {
	SessionID            string  `json:"session_id"`
	Timestamp            string  `json:"timestamp"`
	CurrentRecipeIdx     int     `json:"current_recipe_idx"`
	TotalRecipes         int     `json:"total_recipes"`
	CurrentQuestionIdx   int     `json:"current_question_idx"`
	TotalQuestions       int     `json:"total_questions"`
	CurrentRecipeName    string  `json:"current_recipe_name"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// Config identifies a generation session and where its files live.
type Config struct {
	OutputDir string
	SessionID string
}

// NewConfig starts a fresh session identified by the current timestamp.
func NewConfig(outputDir string) Config {
	return Config{
		OutputDir: outputDir,
		SessionID: time.Now().Format("20060102_150405"),
	}
}

// LogPath returns the JSONL session log path.
func (c Config) LogPath() string {
	return filepath.Join(c.OutputDir, fmt.Sprintf("session_%s.jsonl", c.SessionID))
}

// ProgressPath returns the progress file path. The progress file is shared
// across sessions in the same output directory.
func (c Config) ProgressPath() string {
	return filepath.Join(c.OutputDir, "progress.json")
}

// DatasetPath returns the finalized dataset path for a session id.
func (c Config) DatasetPath(sessionID string) string {
	return filepath.Join(c.OutputDir, fmt.Sprintf("recipes_dpo_%s.json", sessionID))
}

// NewRecord stamps a DPO pair with the session id and current time.
func NewRecord(pair schema.DPOPair, sessionID string) Record {
	return Record{
		Messages:  pair.Messages,
		Chosen:    pair.Chosen,
		Rejected:  pair.Rejected,
		Metadata:  pair.Metadata,
		Timestamp: time.Now().Format(time.RFC3339),
		SessionID: sessionID,
	}
}
