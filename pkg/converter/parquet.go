package converter

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"

	"gastronomia/pkg/schema"
)

// WriteParquet writes flat rows to a SNAPPY-compressed parquet file in
// chunks of chunkSize rows.
func WriteParquet(rows []schema.FlatPair, outputPath string, chunkSize, numWorkers int) error {
	fw, err := local.NewLocalFileWriter(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer fw.Close()

	pw, err := writer.NewParquetWriter(fw, new(schema.FlatPair), int64(numWorkers))
	if err != nil {
		return fmt.Errorf("failed to create Parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	if chunkSize <= 0 {
		chunkSize = 1000
	}

	for start := 0; start < len(rows); start += chunkSize {
		end := start + chunkSize
		if end > len(rows) {
			end = len(rows)
		}
		for _, row := range rows[start:end] {
			if err := pw.Write(row); err != nil {
				pw.WriteStop()
				return fmt.Errorf("parquet write error: %w", err)
			}
		}
		log.Printf("📊 Wrote %d/%d rows...", end, len(rows))
	}

	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	log.Printf("✅ Wrote %d rows to %s", len(rows), outputPath)
	return nil
}

// ReadParquet reads flat rows back from a parquet file.
func ReadParquet(inputPath string) ([]schema.FlatPair, error) {
	fr, err := local.NewLocalFileReader(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(schema.FlatPair), 2)
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pr.ReadStop()

	numRows := pr.GetNumRows()
	if numRows == 0 {
		return nil, fmt.Errorf("parquet file contains no rows")
	}

	log.Printf("📖 Reading %d rows from parquet file...", numRows)

	rows := make([]schema.FlatPair, numRows)
	if err := pr.Read(&rows); err != nil {
		return nil, fmt.Errorf("failed to read parquet records: %w", err)
	}

	return rows, nil
}

// JSONToParquet flattens a dataset JSON file into a parquet file.
func JSONToParquet(inputPath, outputPath string, chunkSize, numWorkers int) error {
	pairs, err := schema.LoadPairs(inputPath)
	if err != nil {
		return err
	}
	return WriteParquet(Flatten(pairs), outputPath, chunkSize, numWorkers)
}

// ParquetToJSON reads flat rows from a parquet file and writes them as an
// indented JSON array.
func ParquetToJSON(inputPath, outputPath string) error {
	rows, err := ReadParquet(inputPath)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rows: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}

	log.Printf("✅ Wrote %d rows to %s", len(rows), outputPath)
	return nil
}
