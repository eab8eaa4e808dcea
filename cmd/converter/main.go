package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gastronomia/pkg/config"
	"gastronomia/pkg/converter"
)

// Config holds the application configuration
type Config struct {
	Mode       string
	InputFile  string
	OutputFile string
	ChunkSize  int
	NumWorkers int
}

var modes = []string{"json2parquet", "parquet2json", "json2csv", "csv2json", "json2arrow"}

func main() {
	config.LoadEnv()

	cfg := parseFlags()

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("Conversion failed: %v", err)
	}
}

func parseFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.Mode, "mode", "json2parquet", "Conversion mode: json2parquet, parquet2json, json2csv, csv2json, json2arrow")
	flag.StringVar(&cfg.InputFile, "input", "", "Input file")
	flag.StringVar(&cfg.OutputFile, "output", "", "Output file")
	flag.IntVar(&cfg.ChunkSize, "chunk-size", 1000, "Rows per write chunk (parquet)")
	flag.IntVar(&cfg.NumWorkers, "workers", 4, "Parallel writer goroutines (parquet)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Dataset Converter - Convert DPO datasets between JSON, Parquet, CSV and Arrow\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s -mode <mode> -input <file> -output <file>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	return cfg
}

func validateConfig(cfg *Config) error {
	valid := false
	for _, m := range modes {
		if cfg.Mode == m {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown mode %q, expected one of %v", cfg.Mode, modes)
	}

	if cfg.InputFile == "" {
		return fmt.Errorf("input file is required")
	}
	if cfg.OutputFile == "" {
		return fmt.Errorf("output file is required")
	}
	if _, err := os.Stat(cfg.InputFile); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", cfg.InputFile)
	}
	if cfg.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive")
	}
	if cfg.NumWorkers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	return nil
}

func run(cfg *Config) error {
	log.Printf("🚀 Converting %s -> %s (%s)", cfg.InputFile, cfg.OutputFile, cfg.Mode)

	switch cfg.Mode {
	case "json2parquet":
		return converter.JSONToParquet(cfg.InputFile, cfg.OutputFile, cfg.ChunkSize, cfg.NumWorkers)
	case "parquet2json":
		return converter.ParquetToJSON(cfg.InputFile, cfg.OutputFile)
	case "json2csv":
		return converter.JSONToCSV(cfg.InputFile, cfg.OutputFile)
	case "csv2json":
		return converter.CSVToJSON(cfg.InputFile, cfg.OutputFile)
	case "json2arrow":
		return converter.JSONToArrow(cfg.InputFile, cfg.OutputFile)
	default:
		return fmt.Errorf("unknown mode %q", cfg.Mode)
	}
}
