package results

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/gallop/internal/model"
)

func testRecord(i int) model.ResultRecord {
	return model.ResultRecord{
		FinishedAt:   time.Date(2024, 3, 1, 10, i, 0, 0, time.UTC),
		WPM:          60.5 + float64(i),
		Accuracy:     0.95,
		DurationSec:  30,
		ElapsedMs:    30000,
		TypedChars:   150 + i,
		CorrectChars: 145,
		MistakeChars: 5 + i,
		RawTyped:     160,
		RawCorrect:   150,
		RawMistakes:  10,
	}
}

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "results.csv"))
	records, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty history, got %d records", len(records))
	}
}

func TestAppendThenLoadRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "results.csv"))
	rec := testRecord(0)
	if err := store.Append(rec); err != nil {
		t.Fatalf("append: %v", err)
	}
	records, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	got := records[0]
	if !got.FinishedAt.Equal(rec.FinishedAt) {
		t.Fatalf("timestamp mismatch: %v vs %v", got.FinishedAt, rec.FinishedAt)
	}
	if got.WPM != rec.WPM || got.Accuracy != rec.Accuracy {
		t.Fatalf("metric mismatch: %+v vs %+v", got, rec)
	}
	if got.TypedChars != rec.TypedChars || got.MistakeChars != rec.MistakeChars {
		t.Fatalf("count mismatch: %+v vs %+v", got, rec)
	}
	if got.RawTyped != rec.RawTyped || got.RawCorrect != rec.RawCorrect || got.RawMistakes != rec.RawMistakes {
		t.Fatalf("raw count mismatch: %+v vs %+v", got, rec)
	}
}

func TestLoadPreservesInsertionOrder(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "results.csv"))
	for i := 0; i < 5; i++ {
		if err := store.Append(testRecord(i)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	records, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("expected 5 records, got %d", len(records))
	}
	for i, rec := range records {
		if rec.TypedChars != 150+i {
			t.Fatalf("record %d out of order: typed=%d", i, rec.TypedChars)
		}
	}
}

func TestAppendCreatesParentDirectory(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nested", "dir", "results.csv"))
	if err := store.Append(testRecord(0)); err != nil {
		t.Fatalf("append: %v", err)
	}
	records, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
}
