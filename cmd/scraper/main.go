package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"gastronomia/pkg/config"
	"gastronomia/pkg/scraper"
)

// Config holds the application configuration
type Config struct {
	IndexURL     string
	Output       string
	CheckpointDB string
	Delay        time.Duration
	MaxRecipes   int
	StartIndex   int
	Threads      int
}

func main() {
	config.LoadEnv()

	cfg := parseFlags()

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("Scraping failed: %v", err)
	}
}

func parseFlags() *Config {
	cfg := &Config{}

	defaultIndex := config.Getenv("RECIPE_INDEX_URL", "https://www.recetasdesbieta.com/todas-las-recetas-por-orden-alfabetico/")

	flag.StringVar(&cfg.IndexURL, "index", defaultIndex, "Alphabetical recipe index page URL")
	flag.StringVar(&cfg.Output, "output", "recipes.json", "Output JSON file")
	flag.StringVar(&cfg.CheckpointDB, "checkpoint-db", "scraper.db", "Seen-URL checkpoint database (empty to disable)")
	flag.DurationVar(&cfg.Delay, "delay", 2*time.Second, "Delay between requests")
	flag.IntVar(&cfg.MaxRecipes, "max-recipes", 0, "Maximum number of recipes to scrape (0 = all)")
	flag.IntVar(&cfg.StartIndex, "start-index", 0, "Start from specific recipe index")
	flag.IntVar(&cfg.Threads, "threads", 1, "Number of concurrent workers")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Recipe Scraper - Harvest recipe pages into a JSON collection\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	return cfg
}

func validateConfig(cfg *Config) error {
	if cfg.IndexURL == "" {
		return fmt.Errorf("index URL must not be empty")
	}
	if cfg.Threads < 1 {
		return fmt.Errorf("threads must be at least 1")
	}
	if cfg.StartIndex < 0 {
		return fmt.Errorf("start index must not be negative")
	}
	return nil
}

func run(cfg *Config) error {
	log.Println("🚀 Starting recipe scraper")

	s := scraper.New(cfg.IndexURL)
	return s.Run(context.Background(), scraper.RunConfig{
		Output:       cfg.Output,
		CheckpointDB: cfg.CheckpointDB,
		Delay:        cfg.Delay,
		MaxRecipes:   cfg.MaxRecipes,
		StartIndex:   cfg.StartIndex,
		Threads:      cfg.Threads,
	})
}
