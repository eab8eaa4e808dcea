package schema

import (
	"encoding/json"
	"fmt"
	"os"
)

// Recipe is one entry of the curated recipe collection that feeds the
// question bank and the DPO generator. Field names follow the dataset's
// Spanish JSON keys.
type Recipe struct {
	ID               int      `json:"id"`
	Nombre           string   `json:"nombre"`
	Ingredientes     []string `json:"ingredientes"`
	Pasos            []string `json:"pasos"`
	Dificultad       string   `json:"dificultad"`
	Tiempo           string   `json:"tiempo"`
	Racion           string   `json:"racion"`
	ValorNutricional string   `json:"valor_nutricional,omitempty"`
	Categoria        string   `json:"categoria,omitempty"`
	Pais             string   `json:"pais,omitempty"`
	YouTubeURL       string   `json:"youtube_url,omitempty"`
	Votos            int      `json:"votos,omitempty"`
}

// ScrapedRecipe is the raw shape produced by the blog scraper, before
// curation into a Recipe.
type ScrapedRecipe struct {
	Title             string   `json:"title"`
	URL               string   `json:"url"`
	ImageURL          string   `json:"image_url"`
	YouTubeURL        string   `json:"youtube_url"`
	Ingredients       []string `json:"ingredients"`
	Instructions      string   `json:"instructions"`
	FullContent       string   `json:"full_content"`
	YouTubeTranscript string   `json:"youtube_transcript"`
	Votos             int      `json:"votos,omitempty"`
}

// LoadRecipes reads a JSON array of recipes from disk.
func LoadRecipes(path string) ([]Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe file: %w", err)
	}

	var recipes []Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("failed to parse recipe file: %w", err)
	}

	return recipes, nil
}

// LoadScrapedRecipes reads a JSON array of scraped recipes. A missing file
// is not an error: the scraper starts fresh in that case.
func LoadScrapedRecipes(path string) ([]ScrapedRecipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read scraped recipes: %w", err)
	}

	var recipes []ScrapedRecipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("failed to parse scraped recipes: %w", err)
	}

	return recipes, nil
}

// SaveScrapedRecipes writes scraped recipes as an indented JSON array.
func SaveScrapedRecipes(path string, recipes []ScrapedRecipe) error {
	data, err := json.MarshalIndent(recipes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scraped recipes: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write scraped recipes: %w", err)
	}
	return nil
}

// SaveRecipes writes curated recipes as an indented JSON array.
func SaveRecipes(path string, recipes []Recipe) error {
	data, err := json.MarshalIndent(recipes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal recipes: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write recipes: %w", err)
	}
	return nil
}
