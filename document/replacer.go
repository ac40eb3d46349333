// Package document applies a placeholder map to template documents.
//
// Every host walks the distinct content regions of its format (docx body,
// headers, footers and notes; xlsx worksheets; a whole text file) and
// replaces each delimiter-wrapped key, literally and case-insensitively,
// with its value.
package document

import (
	"regexp"

	"github.com/Aashish23092/payslip-filler/dto"
)

// DefaultDelimiter wraps placeholder keys in templates: @$#%total@$#%.
const DefaultDelimiter = "@$#%"

// Token wraps key with delimiter on both sides.
func Token(delimiter, key string) string {
	return delimiter + key + delimiter
}

type rule struct {
	key     string
	pattern *regexp.Regexp
	value   string
}

// Replacer holds the compiled substitution set for one placeholder map.
type Replacer struct {
	rules []rule
}

// NewReplacer compiles one case-insensitive literal pattern per key, in map order.
func NewReplacer(delimiter string, placeholders dto.PlaceholderMap) *Replacer {
	entries := placeholders.Entries()
	r := &Replacer{rules: make([]rule, 0, len(entries))}
	for _, e := range entries {
		r.rules = append(r.rules, rule{
			key:     e.Key,
			pattern: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(Token(delimiter, e.Key))),
			value:   e.Value,
		})
	}
	return r
}

func (r *Replacer) Len() int { return len(r.rules) }

// Apply replaces every token in s, returning the result and the number of
// replacements per key (indexed like the placeholder map).
func (r *Replacer) Apply(s string) (string, []int) {
	counts := make([]int, len(r.rules))
	for i, rl := range r.rules {
		n := len(rl.pattern.FindAllStringIndex(s, -1))
		if n == 0 {
			continue
		}
		counts[i] = n
		s = rl.pattern.ReplaceAllLiteralString(s, rl.value)
	}
	return s, counts
}

// Stats accumulates replacement counts over the regions of one document.
type Stats struct {
	Regions int
	counts  []int
}

func newStats(r *Replacer) Stats {
	return Stats{counts: make([]int, r.Len())}
}

func (s *Stats) add(counts []int) {
	for i, n := range counts {
		s.counts[i] += n
	}
}

// Total is the number of replacements made in all regions.
func (s Stats) Total() int {
	total := 0
	for _, n := range s.counts {
		total += n
	}
	return total
}

// PerKey lists the replacement count of every key of r.
func (s Stats) PerKey(r *Replacer) []dto.ReplacementStats {
	out := make([]dto.ReplacementStats, len(r.rules))
	for i, rl := range r.rules {
		out[i] = dto.ReplacementStats{Key: rl.key}
		if i < len(s.counts) {
			out[i].Occurrences = s.counts[i]
		}
	}
	return out
}
