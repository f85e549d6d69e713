// Package automaton implements spec.md C5: an Aho-Corasick trie built over
// an arena of u32-indexed nodes (spec.md §9's "Automaton node ownership"
// note), with failure-chain outputs collected at scan time rather than
// propagated at build time, per spec.md §4.5/§9's explicit preference.
// Node/failure-link construction is grounded on
// other_examples/b0356da3_..._ahocorasick.go.go's BFS approach, adapted from
// *acNode pointers to arena indices.
package automaton

import (
	"github.com/corelex/grepcore/pkg/engine"
	"github.com/corelex/grepcore/pkg/matchresult"
)

// noChild marks the absence of a transition in a node's dense table.
const noChild = ^uint32(0)

type node struct {
	trans     [256]uint32
	fail      uint32
	terminals []int // pattern indices terminating at this node
}

func newNode() node {
	n := node{}
	for i := range n.trans {
		n.trans[i] = noChild
	}
	return n
}

// Automaton is a built Aho-Corasick trie ready to scan. The zero value is
// not usable; construct with Build.
type Automaton struct {
	nodes         []node
	caseSensitive bool
	patternLens   []int
}

// Build inserts every pattern into a fresh trie (lowercased iff
// !caseSensitive per spec.md §4.5) and constructs failure links via BFS.
// An empty pattern marks the root as terminal for its index.
func Build(patterns [][]byte, caseSensitive bool) *Automaton {
	a := &Automaton{caseSensitive: caseSensitive}
	a.nodes = append(a.nodes, newNode()) // root = index 0
	a.patternLens = make([]int, len(patterns))

	for idx, pat := range patterns {
		a.patternLens[idx] = len(pat)
		if len(pat) == 0 {
			a.nodes[0].terminals = append(a.nodes[0].terminals, idx)
			continue
		}
		cur := uint32(0)
		for _, b := range pat {
			if !caseSensitive {
				b = engine.ToLower(b)
			}
			next := a.nodes[cur].trans[b]
			if next == noChild {
				a.nodes = append(a.nodes, newNode())
				next = uint32(len(a.nodes) - 1)
				a.nodes[cur].trans[b] = next
			}
			cur = next
		}
		a.nodes[cur].terminals = append(a.nodes[cur].terminals, idx)
	}

	a.buildFailureLinks()
	return a
}

func (a *Automaton) buildFailureLinks() {
	const root = uint32(0)
	a.nodes[root].fail = root

	queue := make([]uint32, 0, len(a.nodes))
	for b := 0; b < 256; b++ {
		child := a.nodes[root].trans[b]
		if child == noChild {
			continue
		}
		a.nodes[child].fail = root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		for b := 0; b < 256; b++ {
			child := a.nodes[p].trans[b]
			if child == noChild {
				continue
			}
			queue = append(queue, child)

			f := a.nodes[p].fail
			for f != root && a.nodes[f].trans[b] == noChild {
				f = a.nodes[f].fail
			}
			if a.nodes[f].trans[b] != noChild {
				a.nodes[child].fail = a.nodes[f].trans[b]
			} else {
				a.nodes[child].fail = root
			}
		}
	}
}

// Scan implements engine.Engine. Params.Patterns must match the patterns
// Build was called with, in the same order (pattern lengths are read from
// the built automaton so empty-text matches report correct lengths).
func (a *Automaton) Scan(p *engine.Params, buf []byte, result *matchresult.Result) (uint64, error) {
	tracker := engine.NewTracker(p, result)
	const root = uint32(0)

	if len(buf) == 0 {
		for _, idx := range a.nodes[root].terminals {
			if a.patternLens[idx] == 0 {
				tracker.Accept(buf, 0, 0)
				break
			}
		}
		return tracker.Count(), nil
	}

	q := root
	for i := 0; i < len(buf); i++ {
		c := buf[i]
		if !a.caseSensitive {
			c = engine.ToLower(c)
		}
		for q != root && a.nodes[q].trans[c] == noChild {
			q = a.nodes[q].fail
		}
		if a.nodes[q].trans[c] != noChild {
			q = a.nodes[q].trans[c]
		}

		matched := false
		for o := q; o != root; o = a.nodes[o].fail {
			for _, idx := range a.nodes[o].terminals {
				plen := a.patternLens[idx]
				start, end := i+1-plen, i+1
				accepted, stop := tracker.Accept(buf, start, end)
				if stop {
					return tracker.Count(), nil
				}
				if accepted {
					matched = true
				}
			}
		}
		// Non-overlapping by spec.md §8's engine-equivalence table: AC
		// groups with KMP, not BMH, for a single repetitive pattern. This
		// only applies when the automaton holds exactly one pattern —
		// multi-pattern automatons (e.g. "he"/"she"/"hers" sharing a path)
		// rely on the in-progress state surviving a shorter pattern's match
		// to later complete a longer one, so resetting there would silently
		// drop matches rather than merely change overlap semantics.
		if matched && len(a.patternLens) == 1 {
			q = root
		}
	}
	return tracker.Count(), nil
}
