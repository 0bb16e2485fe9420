// Package results persists finished-test records as CSV rows.
package results

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/verte-zerg/gallop/internal/model"
)

var header = []string{
	"finished_at", "wpm", "accuracy", "duration_s", "elapsed_ms",
	"typed", "correct", "mistakes", "raw_typed", "raw_correct", "raw_mistakes",
}

// Store appends and loads result records at a fixed file path.
type Store struct {
	path string
}

// NewStore returns a store writing to the given CSV path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the on-disk location of the results file.
func (s *Store) Path() string {
	return s.path
}

// Append writes one record to the end of the results file, creating the
// file and its header on first use.
func (s *Store) Append(rec model.ResultRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create results directory: %w", err)
	}
	_, statErr := os.Stat(s.path)
	fresh := os.IsNotExist(statErr)
	if statErr != nil && !fresh {
		return fmt.Errorf("failed to stat results file: %w", statErr)
	}

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open results file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close after flush.
			_ = cerr
		}
	}()

	writer := csv.NewWriter(file)
	if fresh {
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("failed to write results header: %w", err)
		}
	}
	if err := writer.Write(encodeRecord(rec)); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush results file: %w", err)
	}
	return nil
}

// Load returns all stored records in insertion order. A missing file yields
// an empty history, not an error.
func (s *Store) Load() ([]model.ResultRecord, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open results file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only file.
			_ = cerr
		}
	}()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read results file: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	records := make([]model.ResultRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec, err := decodeRecord(row)
		if err != nil {
			return nil, fmt.Errorf("failed to parse result row: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func encodeRecord(rec model.ResultRecord) []string {
	return []string{
		rec.FinishedAt.Format(time.RFC3339Nano),
		strconv.FormatFloat(rec.WPM, 'f', -1, 64),
		strconv.FormatFloat(rec.Accuracy, 'f', -1, 64),
		strconv.Itoa(rec.DurationSec),
		strconv.FormatInt(rec.ElapsedMs, 10),
		strconv.Itoa(rec.TypedChars),
		strconv.Itoa(rec.CorrectChars),
		strconv.Itoa(rec.MistakeChars),
		strconv.Itoa(rec.RawTyped),
		strconv.Itoa(rec.RawCorrect),
		strconv.Itoa(rec.RawMistakes),
	}
}

func decodeRecord(row []string) (model.ResultRecord, error) {
	if len(row) != len(header) {
		return model.ResultRecord{}, fmt.Errorf("expected %d fields, got %d", len(header), len(row))
	}
	finishedAt, err := time.Parse(time.RFC3339Nano, row[0])
	if err != nil {
		return model.ResultRecord{}, err
	}
	wpm, err := strconv.ParseFloat(row[1], 64)
	if err != nil {
		return model.ResultRecord{}, err
	}
	accuracy, err := strconv.ParseFloat(row[2], 64)
	if err != nil {
		return model.ResultRecord{}, err
	}
	ints := make([]int64, 0, 8)
	for _, field := range row[3:] {
		v, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return model.ResultRecord{}, err
		}
		ints = append(ints, v)
	}
	return model.ResultRecord{
		FinishedAt:   finishedAt,
		WPM:          wpm,
		Accuracy:     accuracy,
		DurationSec:  int(ints[0]),
		ElapsedMs:    ints[1],
		TypedChars:   int(ints[2]),
		CorrectChars: int(ints[3]),
		MistakeChars: int(ints[4]),
		RawTyped:     int(ints[5]),
		RawCorrect:   int(ints[6]),
		RawMistakes:  int(ints[7]),
	}, nil
}
