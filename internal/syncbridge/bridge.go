// Package syncbridge keeps the transcript view consistent with playback
// state and routes view interactions back into the controller and the
// highlight set.
package syncbridge

import (
	"github.com/cplayer11/video-highlight-tool/internal/highlights"
	"github.com/cplayer11/video-highlight-tool/internal/playback"
	"github.com/cplayer11/video-highlight-tool/models"
)

// View is the display side of the bridge. Implementations render the
// transcript and can bring one entry into view.
type View interface {
	ScrollIntoView(segmentID string)
	Apply(state RenderState)
}

// RenderSegment carries the three independent visual states of one
// transcript entry: selected as a highlight, currently active under the
// playhead, or neither. A segment can be both highlighted and active.
type RenderSegment struct {
	Segment     models.Segment `json:"segment"`
	Highlighted bool           `json:"highlighted"`
	Active      bool           `json:"active"`
}

// RenderSection is one titled group of render segments.
type RenderSection struct {
	Title    string          `json:"title"`
	Segments []RenderSegment `json:"segments"`
}

// RenderState is the full visual state of the transcript view.
type RenderState struct {
	Sections []RenderSection `json:"sections"`
}

// Bridge is the two-way binding between the playback controller and a
// transcript view. It only reacts to active-segment changes, not to every
// tick, which keeps scrolling implicitly debounced.
type Bridge struct {
	ctrl     *playback.Controller
	set      *highlights.Set
	sections []models.Section
	flat     []models.Segment
	byID     map[string]models.Segment
	view     View

	lastActive *string
}

// New wires a bridge to the controller's reports. view may be nil when no
// display is attached; render state remains queryable either way.
func New(ctrl *playback.Controller, set *highlights.Set, sections []models.Section, view View) *Bridge {
	b := &Bridge{
		ctrl:     ctrl,
		set:      set,
		sections: sections,
		flat:     models.FlattenSections(sections),
		byID:     make(map[string]models.Segment),
		view:     view,
	}
	for _, seg := range b.flat {
		b.byID[seg.ID] = seg
	}
	ctrl.Subscribe(b.onReport)
	return b
}

// onReport handles one controller report. Scroll and re-render happen only
// when the active segment id actually changed.
func (b *Bridge) onReport(_ float64, segmentID *string) {
	if sameID(b.lastActive, segmentID) {
		return
	}
	b.lastActive = cloneID(segmentID)
	if b.view == nil {
		return
	}
	if segmentID != nil {
		b.view.ScrollIntoView(*segmentID)
	}
	b.view.Apply(b.RenderState())
}

// ClickTimestamp handles a click on a segment's timestamp: seek only. The
// row toggle must not fire for the same click, mirroring stopped event
// propagation.
func (b *Bridge) ClickTimestamp(segmentID string) bool {
	seg, ok := b.byID[segmentID]
	if !ok {
		return false
	}
	b.ctrl.SeekTo(seg.Start)
	return true
}

// ClickRow handles a click on a segment row outside the timestamp: toggle
// the segment's highlight membership and push the new play order into the
// controller.
func (b *Bridge) ClickRow(segmentID string) bool {
	if _, ok := b.byID[segmentID]; !ok {
		return false
	}
	b.set.Toggle(segmentID)
	b.ctrl.SetHighlights(playback.NewTimeline(b.set.Ordered(b.flat)))
	if b.view != nil {
		b.view.Apply(b.RenderState())
	}
	return true
}

// ActiveSegmentID returns the id the bridge last saw as active, or nil.
func (b *Bridge) ActiveSegmentID() *string {
	return cloneID(b.lastActive)
}

// RenderState derives the visual state of every transcript entry.
func (b *Bridge) RenderState() RenderState {
	var state RenderState
	for _, sec := range b.sections {
		rs := RenderSection{Title: sec.Title, Segments: make([]RenderSegment, 0, len(sec.Segments))}
		for _, seg := range sec.Segments {
			rs.Segments = append(rs.Segments, RenderSegment{
				Segment:     seg,
				Highlighted: b.set.Contains(seg.ID),
				Active:      b.lastActive != nil && *b.lastActive == seg.ID,
			})
		}
		state.Sections = append(state.Sections, rs)
	}
	return state
}

func sameID(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func cloneID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
