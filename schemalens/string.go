package schemalens

import (
	"regexp"
	"strings"
)

// suspiciousVocabulary lists the lowercase strings [SuspiciousStrings] flags
// as missing-value-like. Taken verbatim from the Rust source this spec was
// distilled from (schema_analysis/src/context/string.rs).
var suspiciousVocabulary = map[string]struct{}{
	"n/a": {}, "na": {}, "nan": {}, "null": {}, "none": {}, "nil": {},
	"?": {}, "-": {}, "/": {}, "": {}, " ": {}, "  ": {},
}

// SuspiciousStrings counts occurrences of strings matching
// [suspiciousVocabulary] (case-insensitively), keyed by their lowercase
// form.
type SuspiciousStrings struct {
	CountingSet[string]
}

// Aggregate records value if it matches the suspicious vocabulary.
func (s *SuspiciousStrings) Aggregate(value string) {
	lower := strings.ToLower(value)
	if _, ok := suspiciousVocabulary[lower]; ok {
		s.Insert(lower)
	}
}

// Merge combines other into s.
func (s *SuspiciousStrings) Merge(other SuspiciousStrings) {
	s.CountingSet.Merge(other.CountingSet)
}

// semanticTarget is one labeled anchored regex used by [SemanticExtractor].
type semanticTarget struct {
	label string
	re    *regexp.Regexp
}

// semanticTargets is the fixed, ordered list of labeled patterns every
// string is matched against, anchored to match the whole trimmed value.
var semanticTargets = []semanticTarget{
	{"Integer", regexp.MustCompile(`^\s*[-+]?\d+\s*$`)},
	{"Simple Float", regexp.MustCompile(`^\s*\d+[.,]\d+\s*$`)},
	{"Date 31-12-2001", regexp.MustCompile(`^\s*\d{2}-\d{2}-\d{4}\s*$`)},
	{"Date 2001-12-31", regexp.MustCompile(`^\s*\d{4}-\d{2}-\d{2}\s*$`)},
	{"Boolean", regexp.MustCompile(`(?i)^\s*(true|yes|false|no)\s*$`)},
}

// SemanticExtractor counts occurrences of strings that match one of
// [semanticTargets]; a single string may match and count toward more than
// one label.
type SemanticExtractor struct {
	CountingSet[string]
}

// Aggregate matches value against every semantic target.
func (s *SemanticExtractor) Aggregate(value string) {
	for _, t := range semanticTargets {
		if t.re.MatchString(value) {
			s.Insert(t.label)
		}
	}
}

// Merge combines other into s.
func (s *SemanticExtractor) Merge(other SemanticExtractor) {
	s.CountingSet.Merge(other.CountingSet)
}

// StringContext aggregates statistics for [Schema] String leaves: an
// occurrence count, up to 5 distinct sorted samples, suspicious-string and
// semantic-label tallies, and the running length range.
type StringContext struct {
	Count             Counter           `json:"count"`
	Samples           Sampler[string]   `json:"samples"`
	SuspiciousStrings SuspiciousStrings `json:"suspicious_strings,omitempty"`
	SemanticExtractor SemanticExtractor `json:"semantic_extractor,omitempty"`
	MinMaxLength      MinMax[int]       `json:"min_max_length"`
}

// NewStringContext returns a zero-valued, ready-to-use StringContext.
func NewStringContext() StringContext {
	return StringContext{Samples: NewSampler[string]()}
}

// Aggregate folds one string value into the context.
func (c *StringContext) Aggregate(value string) {
	c.Count.Aggregate()
	c.Samples.Aggregate(value)
	c.SuspiciousStrings.Aggregate(value)
	c.SemanticExtractor.Aggregate(value)
	c.MinMaxLength.Aggregate(len(value))
}

// Merge combines other into c. If other is not a *StringContext it is left
// untouched, per the typed-downcast-or-return-foreign merge idiom.
func (c *StringContext) Merge(other StringAggregator) {
	o, ok := other.(*StringContext)
	if !ok {
		return
	}

	c.Count.Merge(o.Count)
	c.Samples.Merge(o.Samples)
	c.SuspiciousStrings.Merge(o.SuspiciousStrings)
	c.SemanticExtractor.Merge(o.SemanticExtractor)
	c.MinMaxLength.Merge(o.MinMaxLength)
}

// Clone returns an independent copy of c.
func (c *StringContext) Clone() StringAggregator {
	cp := &StringContext{Samples: NewSampler[string]()}
	cp.Merge(c)

	return cp
}
