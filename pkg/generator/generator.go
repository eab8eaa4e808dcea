package generator

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"gastronomia/pkg/cohere"
	"gastronomia/pkg/schema"
)

// Fallback completions used when the chat API fails after retries. A pair
// whose chosen side is the apology fallback is always dropped; the rejected
// fallback passes the length check, so those pairs are kept but surfaced
// through OutcomeDegraded.
const (
	chosenFallback   = "Lo siento, no puedo proporcionar esa información en este momento."
	rejectedFallback = "Es un plato tradicional. Sigue las instrucciones básicas de cocina."

	degradedSystemPrompt = "Responde brevemente sobre cocina, pero no profundices demasiado en los detalles técnicos o culturales."
)

// PairOutcome classifies the result of generating one pair.
type PairOutcome int

const (
	// OutcomeOK: both responses generated, pair valid.
	OutcomeOK PairOutcome = iota
	// OutcomeDegraded: a fallback response was used but the pair still
	// passed validation.
	OutcomeDegraded
	// OutcomeDropped: the pair failed validation and was not written.
	OutcomeDropped
)

// ChatClient is the completion surface the generator needs.
type ChatClient interface {
	Chat(ctx context.Context, req cohere.ChatRequest) (string, error)
}

// Service generates chosen/rejected response pairs for recipe questions.
type Service struct {
	client ChatClient
}

// New creates a pair generator over the given chat client.
func New(client ChatClient) *Service {
	return &Service{client: client}
}

func recipeInfo(recipe schema.Recipe) string {
	nutrition := recipe.ValorNutricional
	if nutrition == "" {
		nutrition = "N/A"
	}
	return fmt.Sprintf(`Información de la receta:
- Nombre: %s
- Ingredientes: %s
- Tiempo: %s
- Dificultad: %s
- Raciones: %s
- Valor nutricional: %s

Pasos de preparación: %s`,
		recipe.Nombre, strings.Join(recipe.Ingredientes, ", "), recipe.Tiempo,
		recipe.Dificultad, recipe.Racion, nutrition,
		strings.Join(recipe.Pasos, " "))
}

func chosenPrompt(question string, recipe schema.Recipe) string {
	return fmt.Sprintf(`Responde la siguiente pregunta sobre la receta "%s" de manera completa, precisa y culturalmente auténtica.

Pregunta: %s

%s

Proporciona una respuesta que sea:
1. Técnicamente precisa y completa
2. Culturalmente auténtica para el origen de la receta
3. Práctica y útil para cocinar
4. Clara y en español natural
5. Específica para esta receta`, recipe.Nombre, question, recipeInfo(recipe))
}

func rejectedPrompt(question string, recipe schema.Recipe) string {
	return fmt.Sprintf(`Responde la pregunta sobre %s de manera básica.

Pregunta: %s

%s

Proporciona una respuesta que sea:
1. Correcta pero incompleta o mal formada
2. General, no específica el origen
3. Breve y con detalles técnicos pero sin profundidad
4. Sin contexto cultural específico`, recipe.Nombre, question, recipeInfo(recipe))
}

// GenerateChosen produces the high-quality response for a question. On API
// failure it returns the fixed apology string and degraded=true.
func (s *Service) GenerateChosen(ctx context.Context, question string, recipe schema.Recipe, category string) (string, bool) {
	text, err := s.client.Chat(ctx, cohere.ChatRequest{
		Messages: []schema.Message{
			{Role: "system", Content: SystemMessage(category)},
			{Role: "user", Content: chosenPrompt(question, recipe)},
		},
		MaxTokens:   8192,
		Temperature: 0.7,
	})
	if err != nil {
		log.Printf("Error generating chosen response: %v", err)
		return chosenFallback, true
	}
	return text, false
}

// GenerateRejected produces the plausible-but-inferior response. On API
// failure it returns the fixed generic string and degraded=true.
func (s *Service) GenerateRejected(ctx context.Context, question string, recipe schema.Recipe, category string) (string, bool) {
	text, err := s.client.Chat(ctx, cohere.ChatRequest{
		Messages: []schema.Message{
			{Role: "system", Content: degradedSystemPrompt},
			{Role: "user", Content: rejectedPrompt(question, recipe)},
		},
		MaxTokens:   2048,
		Temperature: 0.9,
	})
	if err != nil {
		log.Printf("Error generating rejected response: %v", err)
		return rejectedFallback, true
	}
	return text, false
}

// GeneratePair builds a complete DPO pair for one recipe question. The
// prompt carries only the persona and the bare question; the recipe detail
// lives in the generation prompts, not in the dataset.
func (s *Service) GeneratePair(ctx context.Context, recipe schema.Recipe, question, category, questionType string) (schema.DPOPair, PairOutcome) {
	chosen, chosenDegraded := s.GenerateChosen(ctx, question, recipe, category)
	rejected, rejectedDegraded := s.GenerateRejected(ctx, question, recipe, category)

	country := recipe.Pais
	if country == "" {
		country = "Ecuador"
	}
	recipeCategory := recipe.Categoria
	if recipeCategory == "" {
		recipeCategory = "N/A"
	}

	pair := schema.DPOPair{
		Messages: []schema.Message{
			{Role: "system", Content: SystemMessage(category)},
			{Role: "user", Content: question},
		},
		Chosen:   chosen,
		Rejected: rejected,
		Metadata: schema.PairMetadata{
			RecipeID:        recipe.ID,
			RecipeName:      recipe.Nombre,
			Category:        category,
			Context:         questionType,
			DifficultyLevel: Difficulty(category),
			RecipeCategory:  recipeCategory,
			RecipeCountry:   country,
		},
	}

	// A chosen-side failure means the pair carries no preference signal;
	// it is dropped even when the apology text would satisfy the length
	// check.
	if chosenDegraded || !Validate(pair) {
		return pair, OutcomeDropped
	}
	if rejectedDegraded {
		return pair, OutcomeDegraded
	}
	return pair, OutcomeOK
}

// Validate checks a pair against the dataset quality invariant: both
// responses present and distinct, chosen at least 50 characters, rejected
// at least 20, exactly a system+user prompt, and complete metadata.
func Validate(pair schema.DPOPair) bool {
	if pair.Chosen == "" || pair.Rejected == "" {
		return false
	}

	if len(pair.Messages) != 2 || pair.Messages[0].Role != "system" || pair.Messages[1].Role != "user" {
		return false
	}

	if utf8.RuneCountInString(pair.Chosen) < 50 || utf8.RuneCountInString(pair.Rejected) < 20 {
		return false
	}

	if pair.Chosen == pair.Rejected {
		return false
	}

	meta := pair.Metadata
	if meta.RecipeID == 0 || meta.RecipeName == "" || meta.Category == "" || meta.Context == "" {
		return false
	}

	return true
}
