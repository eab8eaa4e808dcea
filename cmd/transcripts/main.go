package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"gastronomia/pkg/config"
	"gastronomia/pkg/schema"
	"gastronomia/pkg/transcript"
)

// Config holds the application configuration
type Config struct {
	InputFile        string
	OutputFile       string
	SummarySentences int
	FetchLikes       bool
	Delay            time.Duration
}

func main() {
	config.LoadEnv()

	cfg := parseFlags()

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("Transcript enrichment failed: %v", err)
	}
}

func parseFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.InputFile, "input", "recipes.json", "Input scraped recipe JSON file")
	flag.StringVar(&cfg.OutputFile, "output", "", "Output JSON file (default: overwrite input)")
	flag.IntVar(&cfg.SummarySentences, "summary", 0, "Summarize transcripts to N sentences (0 = keep full text)")
	flag.BoolVar(&cfg.FetchLikes, "likes", false, "Fetch video like counts into the vote field")
	flag.DurationVar(&cfg.Delay, "delay", 1500*time.Millisecond, "Delay between video requests")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Transcript Enricher - Attach YouTube transcripts and like counts to recipes\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if cfg.OutputFile == "" {
		cfg.OutputFile = cfg.InputFile
	}

	return cfg
}

func validateConfig(cfg *Config) error {
	if _, err := os.Stat(cfg.InputFile); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", cfg.InputFile)
	}
	if cfg.SummarySentences < 0 {
		return fmt.Errorf("summary sentence count must not be negative")
	}
	return nil
}

func run(cfg *Config) error {
	recipes, err := schema.LoadScrapedRecipes(cfg.InputFile)
	if err != nil {
		return err
	}
	if len(recipes) == 0 {
		return fmt.Errorf("no recipes found in %s", cfg.InputFile)
	}
	log.Printf("✅ Loaded %d recipes", len(recipes))

	client := transcript.NewClient()
	summary := client.Enrich(context.Background(), recipes, transcript.EnrichOptions{
		SummarySentences: cfg.SummarySentences,
		Likes:            cfg.FetchLikes,
		Delay:            cfg.Delay,
	})

	if err := schema.SaveScrapedRecipes(cfg.OutputFile, recipes); err != nil {
		return err
	}

	log.Printf("📊 Processed %d videos, %d transcripts retrieved", summary.Processed, summary.Transcripts)
	if cfg.FetchLikes {
		log.Printf("📊 Like counts fetched for %d videos", summary.Likes)
	}
	log.Printf("🎉 Enriched recipes saved to: %s", cfg.OutputFile)
	return nil
}
