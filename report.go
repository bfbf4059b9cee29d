package domsift

import (
	"bytes"
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"unicode/utf8"
)

// Report defaults.
const (
	DefaultMaxElements = 200
	DefaultSampleSize  = 50
	DefaultTopTags     = 10
)

// Report is the result of reducing one document.
type Report struct {
	OriginalSize      int                 `json:"originalSize"`
	PreservedSize     int                 `json:"preservedSize"`
	ReductionPercent  float64             `json:"reductionPercent"`
	PreservedElements []*PreservedElement `json:"preservedElements"`
	SampleHTML        string              `json:"sampleHtml"`
	Stats             Stats               `json:"stats"`

	// Tokens is only set when token counting was requested.
	Tokens *TokenStats `json:"tokens,omitempty"`
}

// Stats holds counts computed over the full preserved sequence.
type Stats struct {
	TotalElementsFound    int       `json:"totalElementsFound"`
	ElementsWithID        int       `json:"elementsWithId"`
	ElementsWithDataAttrs int       `json:"elementsWithDataAttrs"`
	ElementsWithRole      int       `json:"elementsWithRole"`
	TopTags               TagCounts `json:"topTags"`
}

// TokenStats holds model token counts for the input and the preserved output.
type TokenStats struct {
	Original  int `json:"original"`
	Preserved int `json:"preserved"`
}

// TagCount is one entry of the tag histogram.
type TagCount struct {
	Tag   string
	Count int
}

// TagCounts is an ordered tag histogram. It serializes as a JSON object whose
// keys keep histogram order.
type TagCounts []TagCount

// MarshalJSON encodes the histogram as an object in order.
func (t TagCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, tc := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := CompactJSON(tc.Tag)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(tc.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object, keeping key order.
func (t *TagCounts) UnmarshalJSON(data []byte) error {
	counts := TagCounts{}
	err := decodeOrderedObject(data, func(key string, raw json.RawMessage) error {
		var n int
		if err := json.Unmarshal(raw, &n); err != nil {
			return err
		}
		counts = append(counts, TagCount{Tag: key, Count: n})
		return nil
	})
	if err != nil {
		return err
	}
	*t = counts
	return nil
}

// BuildReport computes sizes and statistics for the full ordered sequence of
// preserved elements and caps the output sequence at maxElements.
// Statistics always describe the full sequence.
func BuildReport(input string, elements []*PreservedElement, sampleHTML string, maxElements int) (*Report, error) {
	preservedSize, err := CanonicalSize(elements)
	if err != nil {
		return nil, Errorf(EPROCESSING, "serialize preserved elements: %v", err)
	}
	originalSize := utf8.RuneCountInString(input)

	output := elements
	if maxElements >= 0 && len(output) > maxElements {
		output = output[:maxElements]
	}
	if output == nil {
		output = []*PreservedElement{}
	}

	return &Report{
		OriginalSize:      originalSize,
		PreservedSize:     preservedSize,
		ReductionPercent:  ReductionPercent(originalSize, preservedSize),
		PreservedElements: output,
		SampleHTML:        sampleHTML,
		Stats:             ComputeStats(elements),
	}, nil
}

// CanonicalJSON renders the preserved sequence in its canonical form: compact
// JSON without HTML escaping, keys in record order, no trailing newline.
// A nil sequence renders as an empty array.
func CanonicalJSON(elements []*PreservedElement) ([]byte, error) {
	if elements == nil {
		elements = []*PreservedElement{}
	}
	return CompactJSON(elements)
}

// CompactJSON encodes v as compact JSON without HTML escaping or a trailing newline.
func CompactJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// CanonicalSize returns the character length of the canonical serialization.
func CanonicalSize(elements []*PreservedElement) (int, error) {
	b, err := CanonicalJSON(elements)
	if err != nil {
		return 0, err
	}
	return utf8.RuneCount(b), nil
}

// ReductionPercent returns the relative shrinkage rounded to two decimals.
func ReductionPercent(originalSize, preservedSize int) float64 {
	if originalSize == 0 {
		return 0
	}
	reduction := float64(originalSize-preservedSize) / float64(originalSize) * 100
	return math.Round(reduction*100) / 100
}

// ComputeStats counts attribute coverage and builds the top-tag histogram.
func ComputeStats(elements []*PreservedElement) Stats {
	stats := Stats{
		TotalElementsFound: len(elements),
		TopTags:            TopTags(elements, DefaultTopTags),
	}
	for _, e := range elements {
		if e.Attrs.Has("id") {
			stats.ElementsWithID++
		}
		if e.HasDataAttr() {
			stats.ElementsWithDataAttrs++
		}
		if e.Attrs.Has("role") {
			stats.ElementsWithRole++
		}
	}
	return stats
}

// TopTags returns the n most frequent tags by descending count. Tags with
// equal counts keep the order in which they were first encountered.
func TopTags(elements []*PreservedElement, n int) TagCounts {
	index := make(map[string]int)
	counts := TagCounts{}
	for _, e := range elements {
		if i, ok := index[e.Tag]; ok {
			counts[i].Count++
			continue
		}
		index[e.Tag] = len(counts)
		counts = append(counts, TagCount{Tag: e.Tag, Count: 1})
	}

	slices.SortStableFunc(counts, func(a, b TagCount) int {
		return b.Count - a.Count
	})

	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}
