// Package bloom deduplicates batch sources with a Bloom filter.
package bloom

import (
	"net/url"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// DefaultFalsePositiveRate is the filter's target false positive rate.
const DefaultFalsePositiveRate = 0.001

// Filter remembers sources seen during a batch. A false positive makes a
// new source look like a duplicate; a repeat is never missed.
//
// Filter is safe for concurrent use.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected sources
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Seen records the source and reports whether it was already present.
func (f *Filter) Seen(source string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestAndAddString(Normalize(source))
}

// Normalize maps equivalent spellings of a source to one key. URLs lose their
// fragment and trailing slash and get a lowercase scheme and host; file paths
// are only trimmed.
func Normalize(source string) string {
	source = strings.TrimSpace(source)
	lower := strings.ToLower(source)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return source
	}

	u, err := url.Parse(source)
	if err != nil {
		return source
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawPath = ""
	return u.String()
}
