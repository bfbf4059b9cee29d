package goquery

import (
	"strings"

	"github.com/fwojciec/domsift"
)

// Ensure Reducer implements domsift.Reducer at compile time.
var _ domsift.Reducer = (*Reducer)(nil)

// Reducer parses HTML with goquery and reduces it to a domsift.Report.
// Reducer holds no per-document state and is safe for concurrent use.
type Reducer struct {
	patterns    []ContentPattern
	classFilter ClassFilter
	maxElements int
	sampleSize  int
}

// Option configures a Reducer.
type Option func(*Reducer)

// WithPatterns replaces the default content patterns.
func WithPatterns(patterns []ContentPattern) Option {
	return func(r *Reducer) {
		r.patterns = patterns
	}
}

// WithClassFilter replaces the hash-like class heuristic.
func WithClassFilter(filter ClassFilter) Option {
	return func(r *Reducer) {
		r.classFilter = filter
	}
}

// WithMaxElements sets how many preserved elements the report lists.
// Defaults to domsift.DefaultMaxElements (200).
func WithMaxElements(n int) Option {
	return func(r *Reducer) {
		r.maxElements = n
	}
}

// WithSampleSize sets how many leading elements go into the sample fragment.
// Defaults to domsift.DefaultSampleSize (50).
func WithSampleSize(n int) Option {
	return func(r *Reducer) {
		r.sampleSize = n
	}
}

// NewReducer creates a new Reducer.
func NewReducer(opts ...Option) *Reducer {
	r := &Reducer{
		patterns:    DefaultPatterns(),
		classFilter: DefaultClassFilter,
		maxElements: domsift.DefaultMaxElements,
		sampleSize:  domsift.DefaultSampleSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reduce strips noise from the document, collects preserved elements in
// document order, and builds the report.
func (r *Reducer) Reduce(input string) (*domsift.Report, error) {
	if strings.TrimSpace(input) == "" {
		return nil, domsift.Errorf(domsift.EEMPTY, "no HTML input received")
	}

	tree, err := ParseTree(input)
	if err != nil {
		return nil, err
	}
	tree.StripNoise()

	filter := NewFilter(NewPatternMatcher(r.patterns), NewSynthesizer(r.classFilter))
	elements := filter.Collect(tree)

	sampled := elements
	if r.sampleSize >= 0 && len(sampled) > r.sampleSize {
		sampled = sampled[:r.sampleSize]
	}
	sample, err := BuildSample(sampled)
	if err != nil {
		return nil, domsift.Errorf(domsift.EPROCESSING, "failed to render sample: %v", err)
	}

	return domsift.BuildReport(input, elements, sample, r.maxElements)
}
