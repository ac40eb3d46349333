// Package numeral spells non-negative integers as cardinal number words.
//
// Each language is a Grammar: it knows its zero word, how to render a group of
// three digits and which name (and grammatical gender) a group scale takes for
// a given count. ToWords splits the number into groups and lets the grammar
// do the rest.
package numeral

import (
	"errors"
	"fmt"
	"strings"
)

// Limit is the first value ToWords refuses to spell.
const Limit = 1_000_000_000

var ErrOutOfRange = errors.New("number out of range")

// Gender is the grammatical gender of the counted noun.
type Gender int

const (
	Masculine Gender = iota
	Feminine
	Neuter
)

func (g Gender) String() string {
	switch g {
	case Feminine:
		return "feminine"
	case Neuter:
		return "neuter"
	default:
		return "masculine"
	}
}

// ParseGender accepts the names printed by Gender.String.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "m", "masculine":
		return Masculine, nil
	case "f", "feminine":
		return Feminine, nil
	case "n", "neuter":
		return Neuter, nil
	}
	return Masculine, fmt.Errorf("unknown gender %q", s)
}

// Form is the agreement class a count selects for the noun that follows it.
type Form int

const (
	One  Form = iota // 1, 21, 101 ...
	Few              // 2-4, 22-24 ...
	Many             // 0, 5-20, 25-30 ...
)

// Agreement returns the agreement class for count: One for counts ending in 1
// but not 11, Few for counts ending in 2-4 but not 12-14, Many otherwise.
func Agreement(count int64) Form {
	if count < 0 {
		count = -count
	}
	lastTwo := count % 100
	if lastTwo >= 11 && lastTwo <= 14 {
		return Many
	}
	switch count % 10 {
	case 1:
		return One
	case 2, 3, 4:
		return Few
	}
	return Many
}

// Grammar supplies the language specific parts of a cardinal number.
type Grammar interface {
	// Zero is the word for 0.
	Zero() string
	// Triplet renders 1..999 for a noun of gender g.
	Triplet(n int, g Gender) []string
	// Scale returns the group name for the scale-th group (1 = thousands,
	// 2 = millions) holding count, and the gender the count must agree with.
	Scale(scale int, count int) (name string, g Gender)
}

// Language selects a Grammar.
type Language string

const (
	English   Language = "en"
	Ukrainian Language = "uk"
)

var grammars = map[Language]Grammar{
	English:   englishGrammar{},
	Ukrainian: ukrainianGrammar{},
}

// ParseLanguage maps user input to a supported Language.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en", "eng", "english":
		return English, nil
	case "uk", "ua", "ukr", "ukrainian":
		return Ukrainian, nil
	}
	return "", fmt.Errorf("unsupported language %q", s)
}

type options struct {
	gender Gender
}

// Option tunes ToWords.
type Option func(*options)

// WithGender makes the units group agree with a noun of gender g.
func WithGender(g Gender) Option {
	return func(o *options) { o.gender = g }
}

// ToWords spells n (0 <= n < Limit) in lang.
func ToWords(n int64, lang Language, opts ...Option) (string, error) {
	g, ok := grammars[lang]
	if !ok {
		return "", fmt.Errorf("unsupported language %q", lang)
	}
	return Spell(n, g, opts...)
}

// Spell spells n with an explicit grammar.
func Spell(n int64, g Grammar, opts ...Option) (string, error) {
	if n < 0 || n >= Limit {
		return "", fmt.Errorf("%w: %d", ErrOutOfRange, n)
	}
	o := options{gender: Masculine}
	for _, opt := range opts {
		opt(&o)
	}
	if n == 0 {
		return g.Zero(), nil
	}

	var groups []int
	for rest := n; rest > 0; rest /= 1000 {
		groups = append(groups, int(rest%1000))
	}

	words := make([]string, 0, 8)
	for scale := len(groups) - 1; scale >= 0; scale-- {
		count := groups[scale]
		if count == 0 {
			continue
		}
		if scale == 0 {
			words = append(words, g.Triplet(count, o.gender)...)
			continue
		}
		name, gender := g.Scale(scale, count)
		words = append(words, g.Triplet(count, gender)...)
		words = append(words, name)
	}
	return strings.Join(words, " "), nil
}
