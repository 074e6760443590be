package highlights

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cplayer11/video-highlight-tool/models"
)

func sampleSections() []models.Section {
	return []models.Section{
		{
			Title: "Intro",
			Segments: []models.Segment{
				{ID: "seg-0-0", Start: 0, End: 5},
				{ID: "seg-0-1", Start: 5, End: 10, Highlight: true},
			},
		},
		{
			Title: "Body",
			Segments: []models.Segment{
				{ID: "seg-1-0", Start: 10, End: 20, Highlight: true},
				{ID: "seg-1-1", Start: 20, End: 30},
			},
		},
	}
}

func TestFromTranscriptSeedsMarkedSegments(t *testing.T) {
	s := FromTranscript(sampleSections())
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains("seg-0-1"))
	assert.True(t, s.Contains("seg-1-0"))
	assert.False(t, s.Contains("seg-0-0"))
}

func TestToggleRoundTrip(t *testing.T) {
	s := NewSet()
	assert.True(t, s.Toggle("x"))
	assert.True(t, s.Contains("x"))
	assert.False(t, s.Toggle("x"))
	assert.False(t, s.Contains("x"))
	assert.Equal(t, 0, s.Len())
}

func TestOrderedFollowsTimelineNotToggleOrder(t *testing.T) {
	all := models.FlattenSections(sampleSections())
	s := NewSet()

	// Toggle in reverse timeline order.
	s.Toggle("seg-1-1")
	s.Toggle("seg-0-0")

	ordered := s.Ordered(all)
	assert.Len(t, ordered, 2)
	assert.Equal(t, "seg-0-0", ordered[0].ID)
	assert.Equal(t, "seg-1-1", ordered[1].ID)
}

func TestOrderedEmptySet(t *testing.T) {
	all := models.FlattenSections(sampleSections())
	assert.Empty(t, NewSet().Ordered(all))
}
