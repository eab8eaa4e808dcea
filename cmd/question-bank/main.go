package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"gastronomia/pkg/cohere"
	"gastronomia/pkg/config"
	"gastronomia/pkg/questions"
	"gastronomia/pkg/schema"
)

// Config holds the application configuration
type Config struct {
	InputFile  string
	OutputFile string
	Delay      time.Duration
}

func main() {
	config.LoadEnv()

	cfg := parseFlags()

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("Question generation failed: %v", err)
	}
}

func parseFlags() *Config {
	cfg := &Config{}

	defaultOutput := fmt.Sprintf("recipe_questions_%s.json", time.Now().Format("20060102_150405"))

	flag.StringVar(&cfg.InputFile, "input", config.Getenv("RECIPES_FILE", "recipes.json"), "Input recipe JSON file")
	flag.StringVar(&cfg.OutputFile, "output", defaultOutput, "Output question bank JSON file")
	flag.DurationVar(&cfg.Delay, "delay", time.Second, "Delay between API calls")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Question Bank Generator - Build per-recipe question banks via LLM\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nRequires COHERE_API_KEY in the environment or a .env file.\n")
	}

	flag.Parse()

	return cfg
}

func validateConfig(cfg *Config) error {
	if _, err := os.Stat(cfg.InputFile); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", cfg.InputFile)
	}
	if config.CohereAPIKey() == "" {
		return fmt.Errorf("COHERE_API_KEY is not set")
	}
	return nil
}

func run(cfg *Config) error {
	recipes, err := schema.LoadRecipes(cfg.InputFile)
	if err != nil {
		return err
	}
	log.Printf("✅ Loaded %d recipes", len(recipes))

	client := cohere.NewClient(config.CohereAPIKey(), config.CohereBaseURL(), config.CohereModel())
	gen := questions.NewGenerator(client)

	entries := gen.GenerateAll(context.Background(), recipes, cfg.Delay)

	if err := questions.SaveEntries(cfg.OutputFile, entries); err != nil {
		return err
	}

	log.Printf("🎉 Generated %d total questions", len(entries))
	log.Printf("📁 Results saved to: %s", cfg.OutputFile)

	printSummary(entries)
	return nil
}

func printSummary(entries []questions.Entry) {
	if len(entries) == 0 {
		return
	}

	categories := make(map[string]int)
	types := make(map[string]int)
	recipes := make(map[int]bool)
	for _, entry := range entries {
		categories[entry.Category]++
		types[entry.QuestionType]++
		recipes[entry.RecipeID] = true
	}

	log.Printf("📊 Unique recipes processed: %d", len(recipes))
	log.Printf("📊 Questions by category:")
	for _, category := range sortedKeys(categories) {
		log.Printf("   %s: %d", category, categories[category])
	}
	log.Printf("📊 Questions by type:")
	for _, t := range sortedKeys(types) {
		log.Printf("   %s: %d", t, types[t])
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
