// File: aggregation.go
// Role: Semantic Aggregation for Hyperedges (component E) and the sealed
//       visual-channel vocabulary (§4.E, §9).
// Contract:
//   - Seven fixed visual channels, each with a finite value domain. A tag not
//     assigned to any channel (e.g. a general classification tag) still
//     participates in the plain cross-edge tag intersection.
//   - aggregate(edges) = union of (per-channel common values) and (tags
//     common to every edge's full tag list) — see doc comment on Aggregate
//     for why two edges both tagged Network,Bounded plus Network,Unbounded
//     collapse to just Network.
// AI-HINT (file):
//   - The vocabulary is sealed: NewChannelVocabulary rejects any channel key
//     outside SealedVisualChannels and any tag assigned to two channels.
package state

import "sort"

// VisualChannel is one of the seven fixed semantic dimensions a hyperedge's
// tags may express partial agreement along.
type VisualChannel string

// The sealed set of visual channels (§1, §4.E, §9). No other channel name is
// accepted by NewChannelVocabulary.
const (
	ChannelLinePattern VisualChannel = "line-pattern"
	ChannelLineWidth   VisualChannel = "line-width"
	ChannelAnimation   VisualChannel = "animation"
	ChannelLineStyle   VisualChannel = "line-style"
	ChannelHalo        VisualChannel = "halo"
	ChannelArrowhead   VisualChannel = "arrowhead"
	ChannelWaviness    VisualChannel = "waviness"
)

// SealedVisualChannels enumerates every channel NewChannelVocabulary accepts.
var SealedVisualChannels = []VisualChannel{
	ChannelLinePattern, ChannelLineWidth, ChannelAnimation,
	ChannelLineStyle, ChannelHalo, ChannelArrowhead, ChannelWaviness,
}

func isSealedChannel(ch VisualChannel) bool {
	for _, c := range SealedVisualChannels {
		if c == ch {
			return true
		}
	}
	return false
}

// ChannelVocabulary partitions the tag space into the sealed visual channels
// and, via tagOwner, lets aggregation ask "which channel (if any) does this
// tag belong to" in O(1).
type ChannelVocabulary struct {
	domains  map[VisualChannel][]Tag
	tagOwner map[Tag]VisualChannel
}

// NewChannelVocabulary builds a vocabulary from channel -> domain, rejecting
// unknown channel keys (ErrUnknownVisualChannel) and any tag that would be
// assigned to more than one channel (ErrDuplicateChannelAssignment) — the
// same conflict the style-config ingest path in loader must also reject
// eagerly (§7).
func NewChannelVocabulary(domains map[VisualChannel][]Tag) (*ChannelVocabulary, error) {
	cv := &ChannelVocabulary{
		domains:  make(map[VisualChannel][]Tag, len(domains)),
		tagOwner: make(map[Tag]VisualChannel),
	}
	for ch, values := range domains {
		if !isSealedChannel(ch) {
			return nil, ErrUnknownVisualChannel
		}
		cv.domains[ch] = append([]Tag(nil), values...)
		for _, t := range values {
			if owner, ok := cv.tagOwner[t]; ok && owner != ch {
				return nil, ErrDuplicateChannelAssignment
			}
			cv.tagOwner[t] = ch
		}
	}
	return cv, nil
}

// DefaultChannelVocabulary returns the out-of-the-box domain for each sealed
// channel. Callers that ingest an external style config (loader package)
// should build their own vocabulary from that config instead.
func DefaultChannelVocabulary() *ChannelVocabulary {
	cv, err := NewChannelVocabulary(map[VisualChannel][]Tag{
		ChannelLinePattern: {"solid", "dashed", "dotted"},
		ChannelLineWidth:   {"thin", "medium", "thick"},
		ChannelAnimation:   {"animated", "static"},
		ChannelLineStyle:   {"Bounded", "Unbounded"},
		ChannelHalo:        {"halo-none", "halo-soft", "halo-strong"},
		ChannelArrowhead:   {"arrow-standard", "arrow-open", "arrow-none"},
		ChannelWaviness:    {"wavy", "flat"},
	})
	if err != nil {
		// The built-in defaults are constructed to never conflict; a panic
		// here would only ever fire from a programmer error in this file.
		panic("state: default channel vocabulary is internally inconsistent: " + err.Error())
	}
	return cv
}

func tagSet(tags []Tag) map[Tag]bool {
	set := make(map[Tag]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	return set
}

func intersectTagSets(sets []map[Tag]bool) map[Tag]bool {
	if len(sets) == 0 {
		return nil
	}
	out := make(map[Tag]bool, len(sets[0]))
	for t := range sets[0] {
		out[t] = true
	}
	for _, s := range sets[1:] {
		for t := range out {
			if !s[t] {
				delete(out, t)
			}
		}
	}
	return out
}

// Aggregate computes a hyperedge's tag set from the tag lists of the
// graph-edges it subsumes (§4.E). The input must be non-empty.
//
// Per visual channel, the set of values each edge carries in that channel is
// intersected across all edges; the channel contributes to the result only
// if every edge has at least one value in it AND that intersection is
// non-empty. Separately, the plain intersection of each edge's full tag list
// is computed, which catches tags outside any channel (e.g. a general
// classification tag). The result is the union of both.
//
// Example: {Network, Bounded} and {Network, Unbounded} — Bounded/Unbounded
// share the line-style channel but disagree, so that channel contributes
// nothing; the full-list intersection still yields {Network}. Result:
// {Network}. Two edges both {Network, Bounded} yield {Network, Bounded}.
func (cv *ChannelVocabulary) Aggregate(tagLists [][]Tag) []Tag {
	if len(tagLists) == 0 {
		return nil
	}

	result := make(map[Tag]bool)

	for _, ch := range SealedVisualChannels {
		perEdge := make([]map[Tag]bool, 0, len(tagLists))
		everyEdgeHasOne := true
		for _, tags := range tagLists {
			set := make(map[Tag]bool)
			for _, t := range tags {
				if cv.tagOwner[t] == ch {
					set[t] = true
				}
			}
			if len(set) == 0 {
				everyEdgeHasOne = false
			}
			perEdge = append(perEdge, set)
		}
		if !everyEdgeHasOne {
			continue
		}
		for t := range intersectTagSets(perEdge) {
			result[t] = true
		}
	}

	fullSets := make([]map[Tag]bool, 0, len(tagLists))
	for _, tags := range tagLists {
		fullSets = append(fullSets, tagSet(tags))
	}
	for t := range intersectTagSets(fullSets) {
		result[t] = true
	}

	out := make([]Tag, 0, len(result))
	for t := range result {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
