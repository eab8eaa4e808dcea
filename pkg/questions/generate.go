package questions

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gastronomia/pkg/cohere"
	"gastronomia/pkg/schema"
)

// generationSystemPrompt instructs the model to produce a question bank as
// a bare JSON array.
const generationSystemPrompt = `Eres un experto chef instructor que debe crear un banco de preguntas educativas en español para ayudar a las personas a aprender a preparar recetas.

INSTRUCCIONES PARA GENERAR PREGUNTAS:
Crea minino 15 o mas preguntas necesarias que sirvan para que una persona pueda aprender la receta. Cada pregunta debe:
1. Incluir el nombre de la receta en la formulación
2. Ser educativa y práctica
3. La primera preguntar en primera persona sobre pedir la receta puedes usar estos contextos: cocina informal, cocinar para invitados, cena familiar, cocina de fin de semana, comida rápida, ocasión especial, aprender a cocinar.
4. Ayudar a entender técnicas, ingredientes, pasos, tips, porciones, tiempos y significado cultural.

Haz que la pregunta suene natural y conversacional, como una persona real preguntaría. Varía la estructura de la pregunta y no siempre empieces con "¿Cómo...?" o "¿Cuál...?". Incluye el contexto naturalmente.

FORMATO DE RESPUESTA:
Responde ÚNICAMENTE con un array JSON válido. NO uses markdown, NO uses ` + "```json" + `, NO agregues explicaciones adicionales.
Usa esta estructura exacta para cada pregunta:
[
  {
    "question": "¿Pregunta aquí incluyendo el nombre de la receta?",
    "category": "Ingredientes y preparación",
    "question_type": "conceptual"
  }
]

IMPORTANTE: Responde SOLO con el JSON, sin texto adicional ni formato markdown.`

// GeneratedQuestion is one question as returned by the model.
type GeneratedQuestion struct {
	Question     string `json:"question"`
	Category     string `json:"category"`
	QuestionType string `json:"question_type"`
}

// ChatClient is the completion surface the generator needs.
type ChatClient interface {
	Chat(ctx context.Context, req cohere.ChatRequest) (string, error)
}

// Generator produces per-recipe question banks via an LLM.
type Generator struct {
	client ChatClient
}

// NewGenerator creates a question generator over the given chat client.
func NewGenerator(client ChatClient) *Generator {
	return &Generator{client: client}
}

func buildUserPrompt(recipe schema.Recipe) string {
	return fmt.Sprintf(`INFORMACIÓN DE LA RECETA:
- Nombre: %s
- Dificultad: %s
- Tiempo: %s
- Porciones: %s
- Categoría: %s
- Ingredientes: %s
- Pasos: %s

Genera las 15 preguntas para la receta "%s" en formato JSON:`,
		recipe.Nombre, recipe.Dificultad, recipe.Tiempo, recipe.Racion,
		recipe.Categoria, strings.Join(recipe.Ingredientes, ", "),
		strings.Join(recipe.Pasos, " "), recipe.Nombre)
}

// CleanResponse strips markdown code fences from a model response so the
// remainder parses as JSON.
func CleanResponse(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = text[len("```json"):]
	} else if strings.HasPrefix(text, "```") {
		text = text[len("```"):]
	}

	if strings.HasSuffix(text, "```") {
		text = text[:len(text)-len("```")]
	}

	return strings.TrimSpace(text)
}

// fillDefaults drops questions without text and fills missing category and
// question_type fields.
func fillDefaults(questions []GeneratedQuestion) []GeneratedQuestion {
	fixed := make([]GeneratedQuestion, 0, len(questions))
	for _, q := range questions {
		if q.Question == "" {
			continue
		}
		if q.Category == "" {
			q.Category = "General"
		}
		if q.QuestionType == "" {
			q.QuestionType = "conceptual"
		}
		fixed = append(fixed, q)
	}
	return fixed
}

// parseQuestions parses a cleaned model response, recovering a partial
// array via the first-'['/last-']' slice when the full text does not parse.
func parseQuestions(cleaned string) ([]GeneratedQuestion, error) {
	var questions []GeneratedQuestion
	if err := json.Unmarshal([]byte(cleaned), &questions); err == nil {
		return fillDefaults(questions), nil
	}

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start != -1 && end != -1 && end > start {
		partial := cleaned[start : end+1]
		if err := json.Unmarshal([]byte(partial), &questions); err == nil {
			log.Printf("🔧 Recovered %d questions from partial JSON", len(questions))
			return fillDefaults(questions), nil
		}
	}

	return nil, fmt.Errorf("response is not a JSON question array")
}

// ForRecipe generates the question bank entries for a single recipe.
func (g *Generator) ForRecipe(ctx context.Context, recipe schema.Recipe) ([]GeneratedQuestion, error) {
	text, err := g.client.Chat(ctx, cohere.ChatRequest{
		Messages: []schema.Message{
			{Role: "system", Content: generationSystemPrompt},
			{Role: "user", Content: buildUserPrompt(recipe)},
		},
		MaxTokens:   4096,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("question generation failed for recipe %d: %w", recipe.ID, err)
	}

	questions, err := parseQuestions(CleanResponse(text))
	if err != nil {
		return nil, fmt.Errorf("recipe %d: %w", recipe.ID, err)
	}

	return questions, nil
}

// FormatEntries converts generated questions into bank entries for a recipe.
func FormatEntries(recipe schema.Recipe, generated []GeneratedQuestion) []Entry {
	entries := make([]Entry, 0, len(generated))
	for _, q := range generated {
		entries = append(entries, Entry{
			RecipeID:     recipe.ID,
			RecipeName:   recipe.Nombre,
			Question:     q.Question,
			Category:     q.Category,
			QuestionType: q.QuestionType,
		})
	}
	return entries
}

// GenerateAll generates question banks for every recipe, pacing API calls
// by delay. Per-recipe failures are logged and skipped.
func (g *Generator) GenerateAll(ctx context.Context, recipes []schema.Recipe, delay time.Duration) []Entry {
	var all []Entry

	for i, recipe := range recipes {
		log.Printf("📖 Processing recipe %d/%d: %s", i+1, len(recipes), recipe.Nombre)

		generated, err := g.ForRecipe(ctx, recipe)
		if err != nil {
			log.Printf("⚠️  %v", err)
			continue
		}

		entries := FormatEntries(recipe, generated)
		all = append(all, entries...)
		log.Printf("✅ Generated %d questions for recipe %d", len(entries), recipe.ID)

		if i < len(recipes)-1 && delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return all
			}
		}
	}

	return all
}

// SaveEntries writes question bank entries as an indented JSON array.
func SaveEntries(path string, entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal questions: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write questions: %w", err)
	}
	return nil
}
