// Package model defines shared data structures.
package model

import "time"

// Default ratios used when a configured ratio falls outside [0, 1].
const (
	DefaultNumbersRatio   = 0.05
	DefaultSymbolsRatio   = 0.10
	DefaultUppercaseRatio = 0.15
)

// DefaultDuration is the test length when none is configured.
const DefaultDuration = 30 * time.Second

// Config defines test settings.
type Config struct {
	Duration       time.Duration
	Numbers        bool
	NumbersRatio   float64
	Symbols        bool
	SymbolsRatio   float64
	Uppercase      bool
	UppercaseRatio float64
	DictionaryPath string
	SaveResults    bool
}

// DefaultConfig returns the documented default settings.
func DefaultConfig() Config {
	return Config{
		Duration:       DefaultDuration,
		Numbers:        false,
		NumbersRatio:   DefaultNumbersRatio,
		Symbols:        false,
		SymbolsRatio:   DefaultSymbolsRatio,
		Uppercase:      false,
		UppercaseRatio: DefaultUppercaseRatio,
		SaveResults:    true,
	}
}

// Normalized returns a copy with out-of-range ratios replaced by defaults.
func (c Config) Normalized() Config {
	if c.NumbersRatio < 0 || c.NumbersRatio > 1 {
		c.NumbersRatio = DefaultNumbersRatio
	}
	if c.SymbolsRatio < 0 || c.SymbolsRatio > 1 {
		c.SymbolsRatio = DefaultSymbolsRatio
	}
	if c.UppercaseRatio < 0 || c.UppercaseRatio > 1 {
		c.UppercaseRatio = DefaultUppercaseRatio
	}
	return c
}

// Summary holds the computed metrics of a finished test.
//
// Typed/Correct/Mistake counts describe the final input after corrections;
// the Raw counts describe every keystroke, corrected or not.
type Summary struct {
	WPM          float64
	Accuracy     float64
	TypedChars   int
	CorrectChars int
	MistakeChars int
	RawTyped     int
	RawCorrect   int
	RawMistakes  int
	Elapsed      time.Duration
}

// ResultRecord is one persisted test result. Immutable once written.
type ResultRecord struct {
	FinishedAt   time.Time
	WPM          float64
	Accuracy     float64
	DurationSec  int
	ElapsedMs    int64
	TypedChars   int
	CorrectChars int
	MistakeChars int
	RawTyped     int
	RawCorrect   int
	RawMistakes  int
}

// CharStats stores per-character counts for a single session.
type CharStats struct {
	Char      string
	Correct   int
	Incorrect int
}

// CharAggregate aggregates character counts across sessions.
type CharAggregate struct {
	Char      string
	Correct   int
	Incorrect int
}

// SessionRow summarizes a stored session for reporting.
type SessionRow struct {
	SessionID  int64
	FinishedAt time.Time
	Correct    int
	Incorrect  int
	ElapsedMs  int64
}
