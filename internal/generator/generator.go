// Package generator builds the expected text for a typing test.
package generator

import (
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/verte-zerg/gallop/internal/model"
)

// CharClass records where a character in the expected text came from.
type CharClass uint8

// Character origin classes.
const (
	ClassWordLetter CharClass = iota
	ClassNumber
	ClassSymbol
	ClassUppercase
)

// Characters the symbols pass substitutes from.
const symbolSet = "!@#$%^&*()_+-=[]{};:'\",./<>?"

// generousCharsPerSec sizes the text so a fast typist cannot exhaust it
// before the configured duration expires.
const generousCharsPerSec = 20

const minTextChars = 40

// ExpectedText is the immutable target sequence of a single test.
type ExpectedText struct {
	runes   []rune
	classes []CharClass
}

// Len returns the number of characters.
func (t *ExpectedText) Len() int {
	return len(t.runes)
}

// RuneAt returns the character at position i.
func (t *ExpectedText) RuneAt(i int) rune {
	return t.runes[i]
}

// ClassAt returns the origin class of the character at position i.
func (t *ExpectedText) ClassAt(i int) CharClass {
	return t.classes[i]
}

// Runes returns a copy of the character sequence.
func (t *ExpectedText) Runes() []rune {
	out := make([]rune, len(t.runes))
	copy(out, t.runes)
	return out
}

// String returns the full expected text.
func (t *ExpectedText) String() string {
	return string(t.runes)
}

// FromString wraps fixed text as an ExpectedText with every character
// classed as a word letter. No substitution passes run.
func FromString(s string) *ExpectedText {
	runes := []rune(s)
	return &ExpectedText{runes: runes, classes: make([]CharClass, len(runes))}
}

// Generator produces randomized expected text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Generate samples words and applies the configured substitution passes.
//
// Words are sampled with replacement until the joined text covers the
// configured duration at a generous typing rate. The numbers, symbols, and
// uppercase passes then run per character against a word-boundary mask taken
// from the join, so whitespace separators are never substituted regardless of
// what an earlier pass wrote. Out-of-range ratios fall back to the defaults
// documented in the model package.
func (g *Generator) Generate(words []string, cfg model.Config) *ExpectedText {
	cfg = cfg.Normalized()

	base := []rune(g.sampleWords(words, targetLength(cfg.Duration)))
	boundary := boundaryMask(base)

	runes := make([]rune, len(base))
	copy(runes, base)
	classes := make([]CharClass, len(base))

	if cfg.Numbers {
		g.applyNumbers(runes, classes, boundary, cfg.NumbersRatio)
	}
	if cfg.Symbols {
		g.applySymbols(runes, classes, boundary, cfg.SymbolsRatio)
	}
	if cfg.Uppercase {
		g.applyUppercase(runes, classes, boundary, cfg.UppercaseRatio)
	}

	return &ExpectedText{runes: runes, classes: classes}
}

func targetLength(duration time.Duration) int {
	chars := int(duration.Seconds()) * generousCharsPerSec
	if chars < minTextChars {
		chars = minTextChars
	}
	return chars
}

func (g *Generator) sampleWords(words []string, minChars int) string {
	var b strings.Builder
	for b.Len() < minChars {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(words[g.rnd.Intn(len(words))])
	}
	return b.String()
}

// boundaryMask marks the whitespace separators of the pre-substitution join.
func boundaryMask(base []rune) []bool {
	mask := make([]bool, len(base))
	for i, r := range base {
		mask[i] = unicode.IsSpace(r)
	}
	return mask
}

func (g *Generator) applyNumbers(runes []rune, classes []CharClass, boundary []bool, ratio float64) {
	for i := range runes {
		if boundary[i] || g.rnd.Float64() >= ratio {
			continue
		}
		digit := g.randomDigit()
		// A digit replacing itself would be a no-op; re-roll.
		for digit == runes[i] {
			digit = g.randomDigit()
		}
		runes[i] = digit
		classes[i] = ClassNumber
	}
}

func (g *Generator) randomDigit() rune {
	return rune('0' + g.rnd.Intn(10))
}

func (g *Generator) applySymbols(runes []rune, classes []CharClass, boundary []bool, ratio float64) {
	symbols := []rune(symbolSet)
	for i := range runes {
		if boundary[i] || g.rnd.Float64() >= ratio {
			continue
		}
		runes[i] = symbols[g.rnd.Intn(len(symbols))]
		classes[i] = ClassSymbol
	}
}

func (g *Generator) applyUppercase(runes []rune, classes []CharClass, boundary []bool, ratio float64) {
	for i := range runes {
		if boundary[i] || !unicode.IsLower(runes[i]) {
			continue
		}
		if g.rnd.Float64() >= ratio {
			continue
		}
		runes[i] = unicode.ToUpper(runes[i])
		classes[i] = ClassUppercase
	}
}
