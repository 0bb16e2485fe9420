// Package session drives the typing test lifecycle and computes metrics.
package session

import (
	"time"

	"github.com/verte-zerg/gallop/internal/generator"
	"github.com/verte-zerg/gallop/internal/matcher"
	"github.com/verte-zerg/gallop/internal/model"
)

// Phase is the lifecycle state of a test session.
type Phase uint8

// Lifecycle phases. Transitions are user-driven except the timeout check,
// which runs once per tick.
const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseFinished
)

// minElapsed floors the elapsed time used for metrics so a test finished on
// the first keystroke cannot divide by zero.
const minElapsed = time.Millisecond

// Session orchestrates one typing test at a time.
//
// All mutation happens on the caller's single event loop; the session itself
// holds no locks and owns its ExpectedText and Matcher exclusively.
type Session struct {
	cfg   model.Config
	words []string
	gen   *generator.Generator
	now   func() time.Time

	phase        Phase
	text         *generator.ExpectedText
	input        *matcher.Matcher
	accumulated  time.Duration
	runningSince time.Time

	rawCorrect  int
	rawMistakes int
	charCounts  map[rune]*model.CharStats

	summary    model.Summary
	finishedAt time.Time
}

// New returns an idle session using the wall clock.
func New(cfg model.Config, words []string, gen *generator.Generator) *Session {
	return NewWithClock(cfg, words, gen, time.Now)
}

// NewWithClock returns an idle session with an injected clock.
func NewWithClock(cfg model.Config, words []string, gen *generator.Generator, now func() time.Time) *Session {
	return &Session{
		cfg:   cfg.Normalized(),
		words: words,
		gen:   gen,
		now:   now,
	}
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Config returns the session configuration.
func (s *Session) Config() model.Config {
	return s.cfg
}

// Start begins a new test from Idle or Finished, generating fresh expected
// text and a fresh matcher. No-op in any other phase.
func (s *Session) Start() {
	if s.phase != PhaseIdle && s.phase != PhaseFinished {
		return
	}
	s.text = s.gen.Generate(s.words, s.cfg)
	s.input = matcher.New(s.text.Runes())
	s.accumulated = 0
	s.runningSince = s.now()
	s.rawCorrect = 0
	s.rawMistakes = 0
	s.charCounts = map[rune]*model.CharStats{}
	s.summary = model.Summary{}
	s.phase = PhaseRunning
}

// Pause freezes elapsed-time accumulation. No-op unless Running.
func (s *Session) Pause() {
	if s.phase != PhaseRunning {
		return
	}
	s.accumulated += s.now().Sub(s.runningSince)
	s.phase = PhasePaused
}

// Resume continues a paused test without resetting accumulated time or
// matcher state. No-op unless Paused.
func (s *Session) Resume() {
	if s.phase != PhasePaused {
		return
	}
	s.runningSince = s.now()
	s.phase = PhaseRunning
}

// Tick checks the timeout. A running session finishes on the first tick
// where the elapsed time reaches the configured duration; a small overrun
// from tick granularity is expected.
func (s *Session) Tick() {
	if s.phase != PhaseRunning {
		return
	}
	if s.Elapsed() >= s.cfg.Duration {
		s.finish()
	}
}

// TypeRune dispatches a typed character. Ignored unless Running. The
// session finishes when the expected text is exhausted.
func (s *Session) TypeRune(r rune) {
	if s.phase != PhaseRunning {
		return
	}
	pos := s.input.Cursor()
	if !s.input.TypeRune(r) {
		return
	}
	expected := s.text.RuneAt(pos)
	s.countKeystroke(expected, s.input.StatusAt(pos) == matcher.StatusCorrect)
	if s.input.Done() {
		s.finish()
	}
}

// DeleteRune removes the last typed character. Ignored unless Running.
func (s *Session) DeleteRune() {
	if s.phase != PhaseRunning {
		return
	}
	s.input.DeleteRune()
}

// DeleteWord removes the current word from the input. Ignored unless Running.
func (s *Session) DeleteWord() {
	if s.phase != PhaseRunning {
		return
	}
	s.input.DeleteWord()
}

// Elapsed returns the accumulated running time, excluding paused spans.
func (s *Session) Elapsed() time.Duration {
	if s.phase == PhaseRunning {
		return s.accumulated + s.now().Sub(s.runningSince)
	}
	return s.accumulated
}

// Remaining returns the time left before the timeout, floored at zero.
func (s *Session) Remaining() time.Duration {
	if s.phase == PhaseIdle {
		return s.cfg.Duration
	}
	left := s.cfg.Duration - s.Elapsed()
	if left < 0 {
		return 0
	}
	return left
}

// Text returns the expected text of the current test, nil before the first start.
func (s *Session) Text() *generator.ExpectedText {
	return s.text
}

// Matcher returns the input matcher of the current test, nil before the first start.
func (s *Session) Matcher() *matcher.Matcher {
	return s.input
}

// Summary returns the metrics of the finished test. The boolean is false
// until the session reaches Finished.
func (s *Session) Summary() (model.Summary, bool) {
	if s.phase != PhaseFinished {
		return model.Summary{}, false
	}
	return s.summary, true
}

// Record builds the persistable result of the finished test.
func (s *Session) Record() (model.ResultRecord, bool) {
	if s.phase != PhaseFinished {
		return model.ResultRecord{}, false
	}
	return model.ResultRecord{
		FinishedAt:   s.finishedAt,
		WPM:          s.summary.WPM,
		Accuracy:     s.summary.Accuracy,
		DurationSec:  int(s.cfg.Duration.Seconds()),
		ElapsedMs:    s.summary.Elapsed.Milliseconds(),
		TypedChars:   s.summary.TypedChars,
		CorrectChars: s.summary.CorrectChars,
		MistakeChars: s.summary.MistakeChars,
		RawTyped:     s.summary.RawTyped,
		RawCorrect:   s.summary.RawCorrect,
		RawMistakes:  s.summary.RawMistakes,
	}, true
}

// CharStats returns per-expected-character counts of the finished test.
func (s *Session) CharStats() []model.CharStats {
	out := make([]model.CharStats, 0, len(s.charCounts))
	for _, cs := range s.charCounts {
		out = append(out, *cs)
	}
	return out
}

func (s *Session) countKeystroke(expected rune, correct bool) {
	if correct {
		s.rawCorrect++
	} else {
		s.rawMistakes++
	}
	if expected == ' ' {
		return
	}
	entry, ok := s.charCounts[expected]
	if !ok {
		entry = &model.CharStats{Char: string(expected)}
		s.charCounts[expected] = entry
	}
	if correct {
		entry.Correct++
	} else {
		entry.Incorrect++
	}
}

func (s *Session) finish() {
	s.accumulated += s.now().Sub(s.runningSince)
	s.finishedAt = s.now()
	s.phase = PhaseFinished
	s.summary = s.computeSummary()
}

// computeSummary derives metrics from the matcher prefix typed so far.
//
// WPM counts every attempted character: (typed/5) words over the elapsed
// running minutes. Accuracy is correct/typed, defined as 1.0 when nothing
// was typed.
func (s *Session) computeSummary() model.Summary {
	typed := s.input.Cursor()
	correct := s.input.CorrectCount()

	elapsed := s.accumulated
	if elapsed < minElapsed {
		elapsed = minElapsed
	}

	wpm := (float64(typed) / 5.0) / (elapsed.Seconds() / 60.0)
	accuracy := 1.0
	if typed > 0 {
		accuracy = float64(correct) / float64(typed)
	}

	return model.Summary{
		WPM:          wpm,
		Accuracy:     accuracy,
		TypedChars:   typed,
		CorrectChars: correct,
		MistakeChars: typed - correct,
		RawTyped:     s.rawCorrect + s.rawMistakes,
		RawCorrect:   s.rawCorrect,
		RawMistakes:  s.rawMistakes,
		Elapsed:      elapsed,
	}
}
