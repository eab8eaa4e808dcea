package session

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// Log is the append-only JSONL session log. Every pair is written as soon
// as it is generated so a crash loses at most the in-flight question.
type Log struct {
	path string
}

// OpenLog ensures the output directory exists and creates the session log
// file, so the session leaves a log even when no pair is ever appended.
func OpenLog(cfg Config) (*Log, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	l := &Log{path: cfg.LogPath()}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create session log: %w", err)
	}
	f.Close()

	return l, nil
}

// Path returns the log file path.
func (l *Log) Path() string {
	return l.path
}

// Append writes one record as a single JSON line.
func (l *Log) Append(record Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal session record: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open session log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append session record: %w", err)
	}

	return nil
}

// ReadRecords loads all records from a session log, skipping blank lines.
func ReadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session log: %w", err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var record Record
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("failed to parse session record: %w", err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read session log: %w", err)
	}

	return records, nil
}
