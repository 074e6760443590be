// Package highlights tracks which transcript segments are selected for
// focused playback. The set lives for one session and is discarded when a
// new video replaces the transcript.
package highlights

import (
	"github.com/cplayer11/video-highlight-tool/models"
)

// Set is the mutable selection of highlighted segment ids. Membership is
// mutated only by explicit toggles; play order is always derived from the
// transcript timeline, never from toggle order.
type Set struct {
	ids map[string]struct{}
}

// NewSet returns an empty selection.
func NewSet() *Set {
	return &Set{ids: make(map[string]struct{})}
}

// FromTranscript seeds the selection with every segment the transcript
// source marked as a highlight.
func FromTranscript(sections []models.Section) *Set {
	s := NewSet()
	for _, sec := range sections {
		for _, seg := range sec.Segments {
			if seg.Highlight {
				s.ids[seg.ID] = struct{}{}
			}
		}
	}
	return s
}

// Toggle flips membership for id and reports the new membership.
func (s *Set) Toggle(id string) bool {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Contains reports whether id is selected.
func (s *Set) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected segments.
func (s *Set) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids in no particular order.
func (s *Set) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	return out
}

// Ordered filters the flat segment timeline down to the selected segments,
// preserving timeline order. The result is the authoritative play order.
func (s *Set) Ordered(all []models.Segment) []models.Segment {
	var out []models.Segment
	for _, seg := range all {
		if s.Contains(seg.ID) {
			out = append(out, seg)
		}
	}
	return out
}
