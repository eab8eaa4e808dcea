package generator

// systemMessages holds the specialized personas used as system prompts for
// chosen responses. Keys are persona names, not question categories.
var systemMessages = map[string]string{
	"recipe_instructions": "Eres un chef instructor especializado en técnicas culinarias internacionales. Explicas métodos paso a paso con precisión y claridad didáctica, adaptándote a diferentes tradiciones gastronómicas del mundo.",

	"ingredient_knowledge": "Eres un experto en ingredientes de cocina internacional, conoces sus propiedades, usos tradicionales y sustituciones apropiadas en diferentes culturas gastronómicas del mundo.",

	"technique_questions": "Eres un maestro culinario especializado en técnicas de cocción internacionales, con expertise en tiempos, temperaturas y métodos tradicionales de diversas culturas gastronómicas.",

	"cultural_context": "Eres un historiador gastronómico internacional que conoces el origen, evolución y significado cultural de platos tradicionales de diferentes países y regiones del mundo.",

	"troubleshooting": "Eres un chef experto especializado en solucionar errores comunes en la cocina internacional y optimizar resultados culinarios para recetas de diferentes tradiciones gastronómicas.",

	"nutritional_expert": "Eres un nutricionista especializado en cocina internacional, conoces los valores nutricionales y beneficios de ingredientes de diferentes culturas y tradiciones gastronómicas del mundo.",

	"multiple_choice_expert": "Eres un chef educador especializado en gastronomía internacional. Respondes preguntas de opción múltiple con explicaciones detalladas sobre por qué cada opción es correcta o incorrecta, considerando diferentes tradiciones culinarias.",

	"base_expert": "Eres un chef experto especializado en cocina internacional con más de 20 años de experiencia. Tienes conocimiento profundo sobre ingredientes globales, técnicas tradicionales de diferentes culturas y la evolución de la gastronomía mundial.",
}

// personaByCategory maps question categories to persona names. Unknown
// categories fall back to base_expert.
var personaByCategory = map[string]string{
	"basic_recipe":       "recipe_instructions",
	"ingredients":        "ingredient_knowledge",
	"cooking_techniques": "technique_questions",
	"cultural_context":   "cultural_context",
	"troubleshooting":    "troubleshooting",
	"nutritional_info":   "nutritional_expert",
	"time_and_planning":  "recipe_instructions",
	"scaling_portions":   "recipe_instructions",
	"multiple_choice":    "multiple_choice_expert",
}

// difficultyByCategory maps question categories to difficulty levels.
// Unknown categories default to intermediate.
var difficultyByCategory = map[string]string{
	"basic_recipe":       "beginner",
	"ingredients":        "beginner",
	"cooking_techniques": "intermediate",
	"cultural_context":   "advanced",
	"troubleshooting":    "intermediate",
	"nutritional_info":   "intermediate",
	"time_and_planning":  "beginner",
	"scaling_portions":   "intermediate",
	"multiple_choice":    "intermediate",
}

// SystemMessage returns the persona system prompt for a question category.
func SystemMessage(category string) string {
	persona, ok := personaByCategory[category]
	if !ok {
		persona = "base_expert"
	}
	return systemMessages[persona]
}

// Difficulty returns the difficulty level for a question category.
func Difficulty(category string) string {
	if level, ok := difficultyByCategory[category]; ok {
		return level
	}
	return "intermediate"
}
