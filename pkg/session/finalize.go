package session

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"gastronomia/pkg/schema"
)

// Finalize converts a session JSONL log into the final dataset: a single
// indented JSON array with the session bookkeeping fields stripped.
func Finalize(cfg Config, sessionID string) (string, error) {
	if sessionID == "" {
		sessionID = cfg.SessionID
	}

	logPath := Config{OutputDir: cfg.OutputDir, SessionID: sessionID}.LogPath()
	records, err := ReadRecords(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}

	pairs := make([]schema.DPOPair, 0, len(records))
	for _, record := range records {
		pairs = append(pairs, schema.DPOPair{
			Messages: record.Messages,
			Chosen:   record.Chosen,
			Rejected: record.Rejected,
			Metadata: record.Metadata,
		})
	}

	outputPath := cfg.DatasetPath(sessionID)
	data, err := json.MarshalIndent(pairs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal dataset: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write dataset: %w", err)
	}

	log.Printf("📄 Converted %d pairs to final dataset: %s", len(pairs), outputPath)
	return outputPath, nil
}

// SessionStats summarizes one session's output.
type SessionStats struct {
	SessionID        string         `json:"session_id"`
	TotalPairs       int            `json:"total_pairs"`
	Categories       map[string]int `json:"categories"`
	Recipes          map[string]int `json:"recipes"`
	UniqueRecipes    int            `json:"unique_recipes"`
	UniqueCategories int            `json:"unique_categories"`
}

// Stats computes per-category and per-recipe pair counts for a session.
// A missing or empty log yields zero stats, not an error.
func Stats(cfg Config, sessionID string) SessionStats {
	if sessionID == "" {
		sessionID = cfg.SessionID
	}

	stats := SessionStats{
		SessionID:  sessionID,
		Categories: make(map[string]int),
		Recipes:    make(map[string]int),
	}

	logPath := Config{OutputDir: cfg.OutputDir, SessionID: sessionID}.LogPath()
	records, err := ReadRecords(logPath)
	if err != nil {
		return stats
	}

	for _, record := range records {
		category := record.Metadata.Category
		if category == "" {
			category = "unknown"
		}
		recipe := record.Metadata.RecipeName
		if recipe == "" {
			recipe = "unknown"
		}
		stats.Categories[category]++
		stats.Recipes[recipe]++
	}

	stats.TotalPairs = len(records)
	stats.UniqueRecipes = len(stats.Recipes)
	stats.UniqueCategories = len(stats.Categories)
	return stats
}

// ListSessions returns all session ids found in the output directory,
// newest first.
func ListSessions(outputDir string) ([]string, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list output directory: %w", err)
	}

	var sessions []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, "session_") && strings.HasSuffix(name, ".jsonl") {
			sessions = append(sessions, strings.TrimSuffix(strings.TrimPrefix(name, "session_"), ".jsonl"))
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(sessions)))
	return sessions, nil
}
