package service

import (
	"slices"
	"strings"
	"unicode"
)

const (
	// DefaultMaxCandidates caps the candidate set when no limit is configured.
	DefaultMaxCandidates = 60
	// minEditLength is the shortest code that gets single-edit variants.
	// Shorter codes only get the normalization variants.
	minEditLength = 10
	// courierPrefix is prepended to codes that look like a UPS number missing its "1Z".
	courierPrefix = "1Z"
)

// confusables maps visually similar characters to each other.
var confusables = map[rune]rune{
	'O': '0', '0': 'O',
	'I': '1', '1': 'I',
	'S': '5', '5': 'S',
	'B': '8', '8': 'B',
}

// CandidateGenerator derives plausible alternate tracking codes from a mistyped one.
type CandidateGenerator struct {
	maxCandidates int
}

// NewCandidateGenerator creates a generator emitting at most maxCandidates codes.
// A non-positive limit falls back to DefaultMaxCandidates.
func NewCandidateGenerator(maxCandidates int) *CandidateGenerator {
	if maxCandidates <= 0 {
		maxCandidates = DefaultMaxCandidates
	}
	return &CandidateGenerator{maxCandidates: maxCandidates}
}

// Generate returns the ordered, deduplicated candidates for input.
// The trimmed input itself is never included. Order:
//  1. input without whitespace
//  2. input with only ASCII letters and digits
//  3. for codes of 10+ runes, per position: the deletion, then the confusable swaps
//  4. for codes of 10+ runes: "1Z" + input, when missing and the code has a letter
//
// Deletions and swaps are interleaved per position on purpose; grouping all
// deletions first changes which candidates survive truncation.
func (g *CandidateGenerator) Generate(input string) []string {
	s := strings.TrimSpace(input)
	set := newOrderedSet()

	set.add(removeWhitespace(s))
	set.add(alphanumericOnly(s))

	runes := []rune(s)
	if len(runes) >= minEditLength {
		for i, ch := range runes {
			set.add(deleteAt(runes, i))

			if swap, ok := confusables[ch]; ok {
				set.add(replaceAt(runes, i, swap))
			}
			if up := unicode.ToUpper(ch); up != ch {
				if swap, ok := confusables[up]; ok {
					set.add(replaceAt(runes, i, swap))
				}
			}
		}

		if !hasPrefixFold(s, courierPrefix) && hasASCIILetter(s) {
			set.add(courierPrefix + s)
		}
	}

	set.remove(s)

	out := set.values()
	if len(out) > g.maxCandidates {
		out = out[:g.maxCandidates]
	}
	return slices.Clip(out)
}

// orderedSet keeps first-insertion order.
type orderedSet struct {
	seen  map[string]int
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]int)}
}

func (o *orderedSet) add(v string) {
	if _, ok := o.seen[v]; ok {
		return
	}
	o.seen[v] = len(o.items)
	o.items = append(o.items, v)
}

func (o *orderedSet) remove(v string) {
	idx, ok := o.seen[v]
	if !ok {
		return
	}
	o.items = append(o.items[:idx], o.items[idx+1:]...)
	delete(o.seen, v)
	for i := idx; i < len(o.items); i++ {
		o.seen[o.items[i]] = i
	}
}

func (o *orderedSet) values() []string {
	return o.items
}

func removeWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func alphanumericOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if isASCIILetter(r) || ('0' <= r && r <= '9') {
			return r
		}
		return -1
	}, s)
}

func deleteAt(runes []rune, i int) string {
	return string(runes[:i]) + string(runes[i+1:])
}

func replaceAt(runes []rune, i int, r rune) string {
	return string(runes[:i]) + string(r) + string(runes[i+1:])
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func hasASCIILetter(s string) bool {
	return strings.IndexFunc(s, isASCIILetter) >= 0
}

func isASCIILetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}
