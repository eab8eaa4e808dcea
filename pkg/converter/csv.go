package converter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"gastronomia/pkg/schema"
)

var csvHeader = []string{
	"system_prompt", "question", "chosen", "rejected",
	"recipe_id", "recipe_name", "category", "difficulty_level",
}

// WriteCSV writes flat rows to a CSV file with a header row.
func WriteCSV(rows []schema.FlatPair, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.SystemPrompt, row.Question, row.Chosen, row.Rejected,
			strconv.Itoa(int(row.RecipeID)), row.RecipeName, row.Category, row.DifficultyLevel,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	log.Printf("✅ Wrote %d rows to %s", len(rows), outputPath)
	return nil
}

// ReadCSV reads flat rows from a CSV file written by WriteCSV.
func ReadCSV(inputPath string) ([]schema.FlatPair, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	rows := make([]schema.FlatPair, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(csvHeader) {
			return nil, fmt.Errorf("CSV row %d has %d fields, expected %d", i+2, len(record), len(csvHeader))
		}
		recipeID, err := strconv.Atoi(record[4])
		if err != nil {
			return nil, fmt.Errorf("CSV row %d has invalid recipe_id %q", i+2, record[4])
		}
		rows = append(rows, schema.FlatPair{
			SystemPrompt:    record[0],
			Question:        record[1],
			Chosen:          record[2],
			Rejected:        record[3],
			RecipeID:        int32(recipeID),
			RecipeName:      record[5],
			Category:        record[6],
			DifficultyLevel: record[7],
		})
	}

	return rows, nil
}

// JSONToCSV flattens a dataset JSON file into a CSV file.
func JSONToCSV(inputPath, outputPath string) error {
	pairs, err := schema.LoadPairs(inputPath)
	if err != nil {
		return err
	}
	return WriteCSV(Flatten(pairs), outputPath)
}

// CSVToJSON reads flat rows from CSV and writes them as an indented JSON
// array.
func CSVToJSON(inputPath, outputPath string) error {
	rows, err := ReadCSV(inputPath)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rows: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}

	log.Printf("✅ Wrote %d rows to %s", len(rows), outputPath)
	return nil
}
