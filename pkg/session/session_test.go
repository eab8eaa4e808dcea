package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gastronomia/pkg/schema"
)

func testPair(recipeID int, category string) schema.DPOPair {
	return schema.DPOPair{
		Messages: []schema.Message{
			{Role: "system", Content: "Eres un chef experto."},
			{Role: "user", Content: "¿Cómo se prepara?"},
		},
		Chosen:   "Se prepara dorando los ingredientes y cocinando a fuego lento durante una hora.",
		Rejected: "Se cocina todo junto hasta que esté listo.",
		Metadata: schema.PairMetadata{
			RecipeID:   recipeID,
			RecipeName: "Receta " + category,
			Category:   category,
			Context:    "conceptual",
		},
	}
}

func TestLogAppendAndRead(t *testing.T) {
	cfg := Config{OutputDir: t.TempDir(), SessionID: "20260101_100000"}

	sessionLog, err := OpenLog(cfg)
	if err != nil {
		t.Fatalf("OpenLog failed: %v", err)
	}

	for i := 1; i <= 3; i++ {
		if err := sessionLog.Append(NewRecord(testPair(i, "basic_recipe"), cfg.SessionID)); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	records, err := ReadRecords(cfg.LogPath())
	if err != nil {
		t.Fatalf("ReadRecords failed: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, record := range records {
		if record.Metadata.RecipeID != i+1 {
			t.Errorf("record %d: expected recipe id %d, got %d", i, i+1, record.Metadata.RecipeID)
		}
		if record.SessionID != cfg.SessionID {
			t.Errorf("record %d missing session id", i)
		}
		if record.Timestamp == "" {
			t.Errorf("record %d missing timestamp", i)
		}
	}
}

func TestOpenLogCreatesFile(t *testing.T) {
	cfg := Config{OutputDir: filepath.Join(t.TempDir(), "out"), SessionID: "20260101_100007"}

	sessionLog, err := OpenLog(cfg)
	if err != nil {
		t.Fatalf("OpenLog failed: %v", err)
	}

	// The log exists from session start, before any pair is appended.
	if _, err := os.Stat(sessionLog.Path()); err != nil {
		t.Fatalf("expected log file to exist after OpenLog: %v", err)
	}

	records, err := ReadRecords(cfg.LogPath())
	if err != nil {
		t.Fatalf("ReadRecords on empty log failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records in fresh log, got %d", len(records))
	}
}

func TestReadRecordsMissingLog(t *testing.T) {
	if _, err := ReadRecords(filepath.Join(t.TempDir(), "session_none.jsonl")); err == nil {
		t.Error("expected error for missing session log")
	}
}

func TestProgressRoundTrip(t *testing.T) {
	cfg := Config{OutputDir: t.TempDir(), SessionID: "20260101_100001"}

	p := NewProgress(cfg, 2, 10, 5, 15, "Locro de papa")
	if err := SaveProgress(cfg, p); err != nil {
		t.Fatalf("SaveProgress failed: %v", err)
	}

	loaded, ok := LoadProgress(cfg)
	if !ok {
		t.Fatal("expected progress to load")
	}
	if loaded.CurrentRecipeIdx != 2 || loaded.CurrentQuestionIdx != 5 {
		t.Errorf("unexpected progress position: %+v", loaded)
	}
	if loaded.CurrentRecipeName != "Locro de papa" {
		t.Errorf("unexpected recipe name: %q", loaded.CurrentRecipeName)
	}

	// 2 recipes * 15 questions + 5 = 35 of 150.
	expected := float64(2*15+5) / float64(10*15) * 100
	if loaded.CompletionPercentage != expected {
		t.Errorf("completion percentage = %.2f, want %.2f", loaded.CompletionPercentage, expected)
	}

	if err := ClearProgress(cfg); err != nil {
		t.Fatalf("ClearProgress failed: %v", err)
	}
	if _, ok := LoadProgress(cfg); ok {
		t.Error("expected no progress after clear")
	}
	// Clearing twice is fine.
	if err := ClearProgress(cfg); err != nil {
		t.Errorf("second ClearProgress should be a no-op: %v", err)
	}
}

func TestLoadProgressCorruptFile(t *testing.T) {
	cfg := Config{OutputDir: t.TempDir(), SessionID: "20260101_100002"}
	if err := os.WriteFile(cfg.ProgressPath(), []byte("{broken"), 0644); err != nil {
		t.Fatalf("failed to write corrupt progress: %v", err)
	}
	if _, ok := LoadProgress(cfg); ok {
		t.Error("expected corrupt progress file to be rejected")
	}
}

func TestFinalizeStripsSessionFields(t *testing.T) {
	cfg := Config{OutputDir: t.TempDir(), SessionID: "20260101_100003"}

	sessionLog, err := OpenLog(cfg)
	if err != nil {
		t.Fatalf("OpenLog failed: %v", err)
	}
	for i := 1; i <= 2; i++ {
		if err := sessionLog.Append(NewRecord(testPair(i, "ingredients"), cfg.SessionID)); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	outputPath, err := Finalize(cfg, "")
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if filepath.Base(outputPath) != "recipes_dpo_20260101_100003.json" {
		t.Errorf("unexpected dataset file name: %s", outputPath)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("failed to read dataset: %v", err)
	}

	var pairs []schema.DPOPair
	if err := json.Unmarshal(data, &pairs); err != nil {
		t.Fatalf("dataset is not a JSON pair array: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}

	if strings.Contains(string(data), "session_id") || strings.Contains(string(data), "timestamp") {
		t.Error("finalized dataset should not carry session bookkeeping fields")
	}
}

func TestFinalizeMissingSession(t *testing.T) {
	cfg := Config{OutputDir: t.TempDir(), SessionID: "20260101_100004"}
	if _, err := Finalize(cfg, "19990101_000000"); err == nil {
		t.Error("expected error finalizing a session with no log")
	}
}

func TestStats(t *testing.T) {
	cfg := Config{OutputDir: t.TempDir(), SessionID: "20260101_100005"}

	sessionLog, err := OpenLog(cfg)
	if err != nil {
		t.Fatalf("OpenLog failed: %v", err)
	}
	for _, category := range []string{"basic_recipe", "basic_recipe", "ingredients"} {
		if err := sessionLog.Append(NewRecord(testPair(1, category), cfg.SessionID)); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	stats := Stats(cfg, "")
	if stats.TotalPairs != 3 {
		t.Errorf("expected 3 pairs, got %d", stats.TotalPairs)
	}
	if stats.Categories["basic_recipe"] != 2 || stats.Categories["ingredients"] != 1 {
		t.Errorf("unexpected category counts: %+v", stats.Categories)
	}
	if stats.UniqueCategories != 2 {
		t.Errorf("expected 2 unique categories, got %d", stats.UniqueCategories)
	}
}

func TestStatsMissingSession(t *testing.T) {
	cfg := Config{OutputDir: t.TempDir(), SessionID: "20260101_100006"}
	stats := Stats(cfg, "19990101_000000")
	if stats.TotalPairs != 0 {
		t.Errorf("missing session should yield zero stats, got %+v", stats)
	}
}

func TestListSessions(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"session_20260101_100000.jsonl",
		"session_20260102_090000.jsonl",
		"progress.json",
		"recipes_dpo_20260101_100000.json",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}\n"), 0644); err != nil {
			t.Fatalf("failed to seed %s: %v", name, err)
		}
	}

	sessions, err := ListSessions(dir)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}

	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d: %v", len(sessions), sessions)
	}
	// Newest first.
	if sessions[0] != "20260102_090000" || sessions[1] != "20260101_100000" {
		t.Errorf("sessions not in reverse order: %v", sessions)
	}
}
