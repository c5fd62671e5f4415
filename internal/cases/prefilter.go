package cases

import (
	ac "github.com/petar-dambovaliev/aho-corasick"
)

// Prefilter finds, in one pass over the text, which cases can possibly
// match. A case is a candidate when any of its keywords occurs or when it
// has no keywords at all.
type Prefilter struct {
	automaton *ac.AhoCorasick
	// patternCase maps an automaton pattern index to its case index.
	patternCase []int
	// always holds cases without keywords.
	always []int
}

// NewPrefilter builds a prefilter over the keywords of cs.
func NewPrefilter(cs []Case) *Prefilter {
	p := &Prefilter{}
	var patterns []string
	for i, c := range cs {
		if len(c.Keywords) == 0 {
			p.always = append(p.always, i)
			continue
		}
		for _, kw := range c.Keywords {
			patterns = append(patterns, kw)
			p.patternCase = append(p.patternCase, i)
		}
	}

	if len(patterns) > 0 {
		builder := ac.NewAhoCorasickBuilder(ac.Opts{
			AsciiCaseInsensitive: true,
			MatchOnlyWholeWords:  false,
			MatchKind:            ac.LeftMostLongestMatch,
			DFA:                  false,
		})
		automaton := builder.Build(patterns)
		p.automaton = &automaton
	}
	return p
}

// Candidates returns the set of case indices that may match text.
func (p *Prefilter) Candidates(text string) map[int]bool {
	out := make(map[int]bool, len(p.always))
	for _, i := range p.always {
		out[i] = true
	}
	if p.automaton == nil {
		return out
	}
	for _, m := range p.automaton.FindAll(text) {
		out[p.patternCase[m.Pattern()]] = true
	}
	return out
}
