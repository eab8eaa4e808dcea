package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gastronomia/pkg/cohere"
	"gastronomia/pkg/config"
	"gastronomia/pkg/generator"
	"gastronomia/pkg/questions"
	"gastronomia/pkg/schema"
	"gastronomia/pkg/session"
)

// Config holds the application configuration
type Config struct {
	RecipesFile   string
	QuestionsFile string
	OutputDir     string
	Resume        bool
	AssumeYes     bool
	Pace          time.Duration
	StatsSession  string
	ListSessions  bool
}

func main() {
	config.LoadEnv()

	cfg := parseFlags()

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("Generation failed: %v", err)
	}
}

func parseFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.RecipesFile, "recipes", config.Getenv("RECIPES_FILE", "recipes.json"), "Input recipe JSON file")
	flag.StringVar(&cfg.QuestionsFile, "questions", config.Getenv("QUESTIONS_FILE", "recipe_questions.json"), "Pre-defined question bank JSON file")
	flag.StringVar(&cfg.OutputDir, "output", config.Getenv("DPO_OUTPUT_DIR", "dpo_output"), "Output directory for session files")
	flag.BoolVar(&cfg.Resume, "resume", true, "Offer to resume from a saved progress file")
	flag.BoolVar(&cfg.AssumeYes, "yes", false, "Resume without prompting (non-interactive runs)")
	flag.DurationVar(&cfg.Pace, "pace", 500*time.Millisecond, "Pause between questions to avoid rate limiting")
	flag.StringVar(&cfg.StatsSession, "stats", "", "Print statistics for a session id and exit")
	flag.BoolVar(&cfg.ListSessions, "list", false, "List available session ids and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "DPO Generator - Build chosen/rejected preference pairs for recipe questions\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nRequires COHERE_API_KEY in the environment or a .env file.\n")
	}

	flag.Parse()

	return cfg
}

func validateConfig(cfg *Config) error {
	if cfg.ListSessions || cfg.StatsSession != "" {
		return nil
	}

	if _, err := os.Stat(cfg.RecipesFile); os.IsNotExist(err) {
		return fmt.Errorf("recipe file does not exist: %s", cfg.RecipesFile)
	}
	if _, err := os.Stat(cfg.QuestionsFile); os.IsNotExist(err) {
		return fmt.Errorf("questions file does not exist: %s", cfg.QuestionsFile)
	}
	if config.CohereAPIKey() == "" {
		return fmt.Errorf("COHERE_API_KEY is not set")
	}

	return nil
}

func run(cfg *Config) error {
	if cfg.ListSessions {
		sessions, err := session.ListSessions(cfg.OutputDir)
		if err != nil {
			return err
		}
		for _, id := range sessions {
			fmt.Println(id)
		}
		return nil
	}

	sessionCfg := session.NewConfig(cfg.OutputDir)

	if cfg.StatsSession != "" {
		printStats(session.Stats(sessionCfg, cfg.StatsSession))
		return nil
	}

	recipes, err := schema.LoadRecipes(cfg.RecipesFile)
	if err != nil {
		return err
	}
	log.Printf("✅ Loaded %d recipes", len(recipes))

	bank, err := questions.LoadBank(cfg.QuestionsFile)
	if err != nil {
		return err
	}

	client := cohere.NewClient(config.CohereAPIKey(), config.CohereBaseURL(), config.CohereModel())
	svc := generator.New(client)

	log.Printf("📊 Question bank covers %d recipes", bank.Recipes())
	log.Printf("📊 %d recipes loaded with ~%d pre-defined questions", len(recipes), generator.EstimatePairs(recipes, bank))

	opts := generator.BatchOptions{
		Resume: cfg.Resume,
		Pace:   cfg.Pace,
	}
	if !cfg.AssumeYes {
		opts.Confirm = confirmResume
	}

	summary, err := svc.RunBatch(context.Background(), recipes, bank, sessionCfg, opts)
	if err != nil {
		return err
	}

	if summary.Successful+summary.Degraded == 0 {
		log.Printf("⚠️  No pairs generated, skipping finalization")
		return nil
	}

	datasetPath, err := session.Finalize(sessionCfg, "")
	if err != nil {
		return err
	}

	printStats(session.Stats(sessionCfg, ""))

	if err := session.ClearProgress(sessionCfg); err != nil {
		log.Printf("⚠️  %v", err)
	}

	log.Printf("🎉 Complete dataset ready: %s", datasetPath)
	return nil
}

// confirmResume asks interactively whether to restart at the checkpoint.
func confirmResume(p session.Progress) bool {
	fmt.Printf("Resume from %.1f%%? (y/n): ", p.CompletionPercentage)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.ToLower(strings.TrimSpace(answer)) == "y"
}

func printStats(stats session.SessionStats) {
	log.Printf("📈 Session Statistics:")
	log.Printf("   Session: %s", stats.SessionID)
	log.Printf("   Total pairs: %d", stats.TotalPairs)
	log.Printf("   Unique recipes: %d", stats.UniqueRecipes)
	log.Printf("   Unique categories: %d", stats.UniqueCategories)
	for category, count := range stats.Categories {
		log.Printf("   %s: %d", category, count)
	}
}
