package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gastronomia/pkg/analyzer"
	"gastronomia/pkg/config"
	"gastronomia/pkg/converter"
	"gastronomia/pkg/schema"
)

// Config holds the application configuration
type Config struct {
	InputFile      string
	MaxTokens      int
	FilteredOutput string
	CSVOutput      string
}

func main() {
	config.LoadEnv()

	cfg := parseFlags()

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}
}

func parseFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.InputFile, "input", "recipes_dpo.json", "Input DPO dataset JSON file")
	flag.IntVar(&cfg.MaxTokens, "max-tokens", 2048, "Token limit for chosen and rejected sides")
	flag.StringVar(&cfg.FilteredOutput, "filtered-output", "", "Write pairs within the limit to this JSON file")
	flag.StringVar(&cfg.CSVOutput, "csv", "", "Also write the filtered pairs as flattened CSV")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Dataset Analyzer - Audit token lengths of a DPO dataset\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	return cfg
}

func validateConfig(cfg *Config) error {
	if _, err := os.Stat(cfg.InputFile); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", cfg.InputFile)
	}
	if cfg.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive")
	}
	if cfg.CSVOutput != "" && cfg.FilteredOutput == "" {
		return fmt.Errorf("-csv requires -filtered-output")
	}
	return nil
}

func run(cfg *Config) error {
	pairs, err := schema.LoadPairs(cfg.InputFile)
	if err != nil {
		return err
	}
	log.Printf("✅ Loaded %d examples from %s", len(pairs), cfg.InputFile)

	tokenizer, err := analyzer.NewTokenizer()
	if err != nil {
		return err
	}

	report := analyzer.Audit(pairs, cfg.MaxTokens, tokenizer)
	report.Print(len(pairs), cfg.MaxTokens)

	if cfg.FilteredOutput == "" {
		return nil
	}

	filtered, retention := analyzer.Filter(pairs, cfg.MaxTokens, tokenizer)
	log.Printf("📊 Retained %d of %d examples (%.2f%%)", len(filtered), len(pairs), retention)

	if err := schema.SavePairs(cfg.FilteredOutput, filtered); err != nil {
		return err
	}
	log.Printf("🎉 Filtered dataset saved to: %s", cfg.FilteredOutput)

	if cfg.CSVOutput != "" {
		if err := converter.WriteCSV(converter.Flatten(filtered), cfg.CSVOutput); err != nil {
			return err
		}
	}

	return nil
}
