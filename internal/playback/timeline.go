package playback

import (
	"github.com/cplayer11/video-highlight-tool/models"
)

// Timeline is an immutable snapshot of the ordered highlight subsequence.
// All queries are pure; callers swap in a new Timeline whenever the
// highlight set or the transcript changes.
type Timeline struct {
	highlights []models.Segment
}

// NewTimeline wraps an ordered highlight list. The slice is copied so later
// mutation by the caller cannot alter the snapshot.
func NewTimeline(highlights []models.Segment) Timeline {
	cp := make([]models.Segment, len(highlights))
	copy(cp, highlights)
	return Timeline{highlights: cp}
}

// Empty reports whether there is nothing to play.
func (tl Timeline) Empty() bool {
	return len(tl.highlights) == 0
}

// Len returns the number of highlights in the snapshot.
func (tl Timeline) Len() int {
	return len(tl.highlights)
}

// First returns the first highlight in play order.
func (tl Timeline) First() (models.Segment, bool) {
	if len(tl.highlights) == 0 {
		return models.Segment{}, false
	}
	return tl.highlights[0], true
}

// Segments returns a copy of the highlight list in play order.
func (tl Timeline) Segments() []models.Segment {
	cp := make([]models.Segment, len(tl.highlights))
	copy(cp, tl.highlights)
	return cp
}

// SegmentContaining returns the first highlight whose half-open interval
// [start, end) contains t. When intervals overlap, the earliest-starting
// match wins. Inverted intervals never contain anything.
func (tl Timeline) SegmentContaining(t float64) (models.Segment, bool) {
	for _, seg := range tl.highlights {
		if seg.Contains(t) {
			return seg, true
		}
	}
	return models.Segment{}, false
}

// NextAfter returns the first highlight starting strictly after t.
func (tl Timeline) NextAfter(t float64) (models.Segment, bool) {
	for _, seg := range tl.highlights {
		if seg.Start > t {
			return seg, true
		}
	}
	return models.Segment{}, false
}

// PreviousBefore returns the highlight with the greatest end strictly below
// t. A highlight ending exactly at t is not "previous"; this favors
// re-entering the adjacent segment over jumping backward past it.
func (tl Timeline) PreviousBefore(t float64) (models.Segment, bool) {
	for i := len(tl.highlights) - 1; i >= 0; i-- {
		if tl.highlights[i].End < t {
			return tl.highlights[i], true
		}
	}
	return models.Segment{}, false
}
