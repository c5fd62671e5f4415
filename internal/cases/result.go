package cases

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MatchResult is the outcome of a single case.
type MatchResult struct {
	Matched bool   `json:"match" yaml:"match"`
	Details string `json:"details,omitempty" yaml:"details,omitempty"`
}

// Entry pairs a case title with its outcome.
type Entry struct {
	Title string
	MatchResult
}

// Result maps case titles to outcomes in registry order.
// A Result with no entries means the log could not be read.
type Result struct {
	entries []Entry
}

func (r *Result) add(title string, m MatchResult) {
	r.entries = append(r.entries, Entry{Title: title, MatchResult: m})
}

// Len returns the number of entries.
func (r Result) Len() int {
	return len(r.entries)
}

// Empty reports whether the result has no entries at all.
func (r Result) Empty() bool {
	return len(r.entries) == 0
}

// Entries returns all entries in registry order.
func (r Result) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Get returns the outcome recorded for title.
func (r Result) Get(title string) (MatchResult, bool) {
	for _, e := range r.entries {
		if e.Title == title {
			return e.MatchResult, true
		}
	}
	return MatchResult{}, false
}

// Matched returns only the entries whose case matched.
func (r Result) Matched() []Entry {
	var out []Entry
	for _, e := range r.entries {
		if e.Matched {
			out = append(out, e)
		}
	}
	return out
}

// Titles returns the entry titles in order.
func (r Result) Titles() []string {
	titles := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		titles = append(titles, e.Title)
	}
	return titles
}

// MarshalJSON encodes the result as an object keyed by title, keeping
// registry order.
func (r Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Title)
		if err != nil {
			return nil, fmt.Errorf("failed to encode title %q: %w", e.Title, err)
		}
		val, err := json.Marshal(e.MatchResult)
		if err != nil {
			return nil, fmt.Errorf("failed to encode result for %q: %w", e.Title, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the result as a mapping keyed by title, keeping
// registry order.
func (r Result) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range r.entries {
		var val yaml.Node
		if err := val.Encode(e.MatchResult); err != nil {
			return nil, fmt.Errorf("failed to encode result for %q: %w", e.Title, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Title},
			&val,
		)
	}
	return node, nil
}
