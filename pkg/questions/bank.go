package questions

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"gastronomia/pkg/schema"
)

// Entry is one row of the question bank file.
type Entry struct {
	RecipeID     int    `json:"recipe_id"`
	RecipeName   string `json:"recipe_name"`
	Question     string `json:"questions"`
	Category     string `json:"questions_category"`
	QuestionType string `json:"question_type"`
}

// BankQuestion is an entry resolved against a recipe, with the Spanish
// category label mapped to the internal category.
type BankQuestion struct {
	Text     string
	Category string
	Type     string
}

// Bank holds pre-defined questions grouped by recipe id. File order is
// preserved within each recipe.
type Bank struct {
	byRecipe map[int][]Entry
}

// categoryMapping maps the bank's Spanish category labels to the internal
// category enum used for persona and difficulty selection.
var categoryMapping = map[string]string{
	"General":                     "basic_recipe",
	"Ingredientes y preparación":  "ingredients",
	"Técnicas":                    "cooking_techniques",
	"Tiempo y planificación":      "time_and_planning",
	"Información nutricional":     "nutritional_info",
	"Porciones":                   "scaling_portions",
	"Solución de problemas":       "troubleshooting",
	"Contexto cultural":           "cultural_context",
	"Opción múltiple":             "multiple_choice",
}

// MapCategory resolves a Spanish category label to the internal category.
// Unknown labels fall back to basic_recipe.
func MapCategory(label string) string {
	if mapped, ok := categoryMapping[label]; ok {
		return mapped
	}
	return "basic_recipe"
}

// LoadBank reads a question bank JSON array and groups entries by recipe id.
// Entries without a recipe id are logged and skipped.
func LoadBank(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read questions file: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("invalid JSON in questions file: %w", err)
	}

	log.Printf("📄 Loaded %d question entries from %s", len(entries), path)

	byRecipe := make(map[int][]Entry)
	for i, entry := range entries {
		if entry.RecipeID == 0 {
			log.Printf("⚠️  Question entry %d missing recipe_id, skipping", i)
			continue
		}
		byRecipe[entry.RecipeID] = append(byRecipe[entry.RecipeID], entry)
	}

	total := 0
	for _, qs := range byRecipe {
		total += len(qs)
	}
	log.Printf("✅ Organized %d questions for %d recipes", total, len(byRecipe))

	return &Bank{byRecipe: byRecipe}, nil
}

// Recipes returns the number of recipes with at least one question.
func (b *Bank) Recipes() int {
	return len(b.byRecipe)
}

// ForRecipe returns all bank questions for a recipe in file order. Empty
// questions are skipped; a recipe with no questions yields an empty slice
// with a warning, never an error.
func (b *Bank) ForRecipe(recipe schema.Recipe) []BankQuestion {
	if recipe.ID == 0 {
		log.Printf("⚠️  Recipe has no ID: %s", recipe.Nombre)
		return nil
	}

	entries := b.byRecipe[recipe.ID]
	if len(entries) == 0 {
		log.Printf("❌ No questions found for recipe ID %d: %s", recipe.ID, recipe.Nombre)
		return nil
	}

	questions := make([]BankQuestion, 0, len(entries))
	for _, entry := range entries {
		if entry.Question == "" {
			log.Printf("⚠️  Empty question found for recipe ID %d", recipe.ID)
			continue
		}

		category := entry.Category
		if category == "" {
			category = "General"
		}
		questionType := entry.QuestionType
		if questionType == "" {
			questionType = "contextual"
		}

		questions = append(questions, BankQuestion{
			Text:     entry.Question,
			Category: MapCategory(category),
			Type:     questionType,
		})
	}

	return questions
}
