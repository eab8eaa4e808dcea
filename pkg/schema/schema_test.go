package schema

import (
	"path/filepath"
	"testing"
)

func TestRecipeRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.json")

	recipes := []Recipe{
		{
			ID:           1,
			Nombre:       "Locro de papa",
			Ingredientes: []string{"papa", "queso"},
			Pasos:        []string{"Pelar las papas.", "Cocinar."},
			Dificultad:   "Fácil",
			Tiempo:       "45 minutos",
			Racion:       "4 personas",
			Categoria:    "Sopas",
			Pais:         "Ecuador",
		},
	}

	if err := SaveRecipes(path, recipes); err != nil {
		t.Fatalf("SaveRecipes failed: %v", err)
	}

	loaded, err := LoadRecipes(path)
	if err != nil {
		t.Fatalf("LoadRecipes failed: %v", err)
	}

	if len(loaded) != 1 {
		t.Fatalf("expected 1 recipe, got %d", len(loaded))
	}
	if loaded[0].Nombre != "Locro de papa" || loaded[0].ID != 1 {
		t.Errorf("recipe not preserved: %+v", loaded[0])
	}
	if len(loaded[0].Ingredientes) != 2 {
		t.Errorf("ingredients not preserved: %v", loaded[0].Ingredientes)
	}
}

func TestLoadRecipesMissingFile(t *testing.T) {
	if _, err := LoadRecipes(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing recipe file")
	}
}

func TestLoadScrapedRecipesMissingFileStartsFresh(t *testing.T) {
	recipes, err := LoadScrapedRecipes(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("missing scraped file should not be an error: %v", err)
	}
	if recipes != nil {
		t.Errorf("expected nil recipes, got %v", recipes)
	}
}

func TestScrapedRecipeRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scraped.json")

	recipes := []ScrapedRecipe{
		{
			Title:       "Bolón de verde",
			URL:         "https://example.com/bolon/",
			Ingredients: []string{"plátano verde", "queso"},
			Votos:       15,
		},
	}

	if err := SaveScrapedRecipes(path, recipes); err != nil {
		t.Fatalf("SaveScrapedRecipes failed: %v", err)
	}

	loaded, err := LoadScrapedRecipes(path)
	if err != nil {
		t.Fatalf("LoadScrapedRecipes failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Title != "Bolón de verde" || loaded[0].Votos != 15 {
		t.Errorf("scraped recipe not preserved: %+v", loaded)
	}
}

func TestPairRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.json")

	pairs := []DPOPair{
		{
			Messages: []Message{
				{Role: "system", Content: "Eres un chef."},
				{Role: "user", Content: "¿Cómo se hace?"},
			},
			Chosen:   "Con cuidado y buenos ingredientes.",
			Rejected: "Normal.",
			Metadata: PairMetadata{RecipeID: 1, RecipeName: "Locro", Category: "basic_recipe", Context: "conceptual"},
		},
	}

	if err := SavePairs(path, pairs); err != nil {
		t.Fatalf("SavePairs failed: %v", err)
	}

	loaded, err := LoadPairs(path)
	if err != nil {
		t.Fatalf("LoadPairs failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Metadata.RecipeID != 1 {
		t.Errorf("pair not preserved: %+v", loaded)
	}
	if len(loaded[0].Messages) != 2 {
		t.Errorf("messages not preserved: %+v", loaded[0].Messages)
	}
}
