package domain

import "encoding/json"

// FuzzyResult is the outcome of a fuzzy resolution.
// When MatchedCode is empty nothing matched (NoMatch).
type FuzzyResult struct {
	// OriginalCode is the trimmed code the caller asked for.
	OriginalCode string
	// MatchedCode is the code the provider accepted.
	MatchedCode string
	// Payload is the provider data for MatchedCode.
	Payload json.RawMessage
	// Lookups counts provider lookups performed, cache hits included.
	Lookups int
}

// Found reports whether any code matched.
func (r FuzzyResult) Found() bool {
	return r.MatchedCode != ""
}

// Exact reports whether the original code itself matched.
func (r FuzzyResult) Exact() bool {
	return r.Found() && r.MatchedCode == r.OriginalCode
}
