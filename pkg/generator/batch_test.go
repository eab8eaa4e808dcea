package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"gastronomia/pkg/questions"
	"gastronomia/pkg/schema"
	"gastronomia/pkg/session"
)

func writeQuestionsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write questions file: %v", err)
	}
	return path
}

func TestRunBatch(t *testing.T) {
	bankPath := writeQuestionsFile(t, `[
		{"recipe_id": 42, "recipe_name": "Seco de pollo", "questions": "¿Cómo se hace el seco de pollo?", "questions_category": "General", "question_type": "conceptual"},
		{"recipe_id": 42, "recipe_name": "Seco de pollo", "questions": "¿Qué lleva el seco de pollo?", "questions_category": "Ingredientes y preparación", "question_type": "factual"}
	]`)
	bank, err := questions.LoadBank(bankPath)
	if err != nil {
		t.Fatalf("LoadBank failed: %v", err)
	}

	client := &fakeChat{
		chosen:   longChosen,
		rejected: "Es un guiso de pollo que se cocina a fuego lento con cerveza.",
	}
	svc := New(client)

	cfg := session.Config{OutputDir: t.TempDir(), SessionID: "20260101_120000"}
	summary, err := svc.RunBatch(context.Background(), []schema.Recipe{testRecipe()}, bank, cfg, BatchOptions{})
	if err != nil {
		t.Fatalf("RunBatch failed: %v", err)
	}

	if summary.Successful != 2 {
		t.Errorf("expected 2 successful pairs, got %d", summary.Successful)
	}
	if summary.Dropped != 0 || summary.Degraded != 0 || summary.Failed != 0 {
		t.Errorf("unexpected failure counters: %+v", summary)
	}

	records, err := session.ReadRecords(cfg.LogPath())
	if err != nil {
		t.Fatalf("failed to read session log: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 logged records, got %d", len(records))
	}
	if records[0].SessionID != cfg.SessionID {
		t.Errorf("record missing session id: %+v", records[0])
	}
	if records[0].Timestamp == "" {
		t.Error("record missing timestamp")
	}
}

func TestRunBatchDropsFailedChosen(t *testing.T) {
	bankPath := writeQuestionsFile(t, `[
		{"recipe_id": 42, "recipe_name": "Seco de pollo", "questions": "¿Cómo se hace?", "questions_category": "General", "question_type": "conceptual"}
	]`)
	bank, err := questions.LoadBank(bankPath)
	if err != nil {
		t.Fatalf("LoadBank failed: %v", err)
	}

	client := &fakeChat{
		chosenErr: fmt.Errorf("api down"),
		rejected:  "Es un plato tradicional que se sirve con arroz.",
	}
	svc := New(client)

	cfg := session.Config{OutputDir: t.TempDir(), SessionID: "20260101_120001"}
	summary, err := svc.RunBatch(context.Background(), []schema.Recipe{testRecipe()}, bank, cfg, BatchOptions{})
	if err != nil {
		t.Fatalf("RunBatch failed: %v", err)
	}

	if summary.Dropped != 1 || summary.Successful != 0 {
		t.Errorf("expected 1 dropped pair, got %+v", summary)
	}
	if _, err := os.Stat(cfg.LogPath()); err != nil {
		t.Fatalf("session log should exist even when empty: %v", err)
	}
}

func TestRunBatchResume(t *testing.T) {
	bankPath := writeQuestionsFile(t, `[
		{"recipe_id": 42, "recipe_name": "Seco de pollo", "questions": "¿Cómo se hace?", "questions_category": "General", "question_type": "conceptual"},
		{"recipe_id": 43, "recipe_name": "Encebollado", "questions": "¿Qué pescado lleva?", "questions_category": "Ingredientes y preparación", "question_type": "factual"}
	]`)
	bank, err := questions.LoadBank(bankPath)
	if err != nil {
		t.Fatalf("LoadBank failed: %v", err)
	}

	recipes := []schema.Recipe{testRecipe(), {ID: 43, Nombre: "Encebollado"}}
	cfg := session.Config{OutputDir: t.TempDir(), SessionID: "20260101_120002"}

	// Simulate a prior run that stopped at the second recipe.
	if err := session.SaveProgress(cfg, session.NewProgress(cfg, 1, 2, 0, 1, "Encebollado")); err != nil {
		t.Fatalf("failed to seed progress: %v", err)
	}

	client := &fakeChat{
		chosen:   longChosen,
		rejected: "Es una sopa de pescado con yuca que se sirve caliente.",
	}
	svc := New(client)

	confirmed := false
	summary, err := svc.RunBatch(context.Background(), recipes, bank, cfg, BatchOptions{
		Resume: true,
		Confirm: func(p session.Progress) bool {
			confirmed = true
			return true
		},
	})
	if err != nil {
		t.Fatalf("RunBatch failed: %v", err)
	}

	if !confirmed {
		t.Error("expected resume confirmation callback")
	}
	if summary.Successful != 1 {
		t.Errorf("expected only the second recipe's question, got %d pairs", summary.Successful)
	}

	records, err := session.ReadRecords(cfg.LogPath())
	if err != nil {
		t.Fatalf("failed to read session log: %v", err)
	}
	if len(records) != 1 || records[0].Metadata.RecipeID != 43 {
		t.Errorf("expected one pair for recipe 43, got %+v", records)
	}
}

func TestEstimatePairs(t *testing.T) {
	bankPath := writeQuestionsFile(t, `[
		{"recipe_id": 1, "recipe_name": "A", "questions": "¿Uno?"},
		{"recipe_id": 1, "recipe_name": "A", "questions": "¿Dos?"},
		{"recipe_id": 2, "recipe_name": "B", "questions": "¿Tres?"}
	]`)
	bank, err := questions.LoadBank(bankPath)
	if err != nil {
		t.Fatalf("LoadBank failed: %v", err)
	}

	recipes := []schema.Recipe{{ID: 1, Nombre: "A"}, {ID: 2, Nombre: "B"}, {ID: 3, Nombre: "C"}}
	if got := EstimatePairs(recipes, bank); got != 3 {
		t.Errorf("EstimatePairs = %d, want 3", got)
	}
}
