package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cplayer11/video-highlight-tool/models"
)

func detached(t *testing.T) *Session {
	t.Helper()
	return NewDetached("test", 60, testSections(), quietLogger(), nil)
}

func TestSessionStartsAtFirstHighlight(t *testing.T) {
	s := detached(t)
	snap := s.State()
	assert.Equal(t, models.StatePaused, snap.Playback.State)
	assert.Equal(t, 10.0, snap.Playback.CurrentTime, "playhead parked at the first highlight")
	assert.ElementsMatch(t, []string{"seg-0-1", "seg-1-0"}, snap.HighlightIDs)
}

func TestSessionPlaysThroughHighlightsOnly(t *testing.T) {
	s := detached(t)
	require.NoError(t, s.Play())

	// Play through the first highlight (10..20).
	for i := 0; i < 20; i++ {
		s.Advance(0.5)
	}
	snap := s.State()
	// 10s of wall time from 10.0 would be 20.0 raw; the gap tick must
	// already have skipped to the second highlight.
	assert.GreaterOrEqual(t, snap.Playback.CurrentTime, 40.0, "gap between highlights is skipped")
}

func TestSessionEndsThenRestartsOnPlay(t *testing.T) {
	s := detached(t)
	require.NoError(t, s.Play())

	s.SeekTo(49.9)
	for i := 0; i < 4 && s.State().Playback.State != models.StateEnded; i++ {
		s.Advance(0.5)
	}
	snap := s.State()
	assert.Equal(t, models.StateEnded, snap.Playback.State)
	assert.False(t, snap.Playback.IsPlaying)

	require.NoError(t, s.Play())
	snap = s.State()
	assert.Equal(t, models.StatePlaying, snap.Playback.State)
	assert.Equal(t, 10.0, snap.Playback.CurrentTime, "restart at the first highlight")
}

func TestSessionSeekIntoGapSkipsImmediately(t *testing.T) {
	s := detached(t)

	s.SeekTo(25)
	snap := s.State()
	assert.Equal(t, 40.0, snap.Playback.CurrentTime, "gap seek reconciles to the next highlight")
	assert.Nil(t, snap.Playback.CurrentSegmentID)
}

func TestSessionCaptionFollowsActiveHighlight(t *testing.T) {
	s := detached(t)
	require.NoError(t, s.Play())
	s.Advance(0.5) // 10.0 -> 10.5, inside seg-0-1

	snap := s.State()
	require.NotNil(t, snap.Playback.CurrentSegmentID)
	assert.Equal(t, "seg-0-1", *snap.Playback.CurrentSegmentID)
	assert.Equal(t, "features", snap.Caption)
}

func TestSessionToggleChangesPlayOrder(t *testing.T) {
	s := detached(t)
	require.True(t, s.ToggleHighlight("seg-1-0"))

	snap := s.State()
	assert.ElementsMatch(t, []string{"seg-0-1"}, snap.HighlightIDs)
	require.Len(t, snap.Markers, 1)
	assert.Equal(t, "seg-0-1", snap.Markers[0].SegmentID)

	require.True(t, s.ToggleHighlight("seg-1-0"))
	assert.ElementsMatch(t, []string{"seg-0-1", "seg-1-0"}, s.State().HighlightIDs)
}

func TestSessionMarkersAreDurationFractions(t *testing.T) {
	s := detached(t)
	snap := s.State()
	require.Len(t, snap.Markers, 2)
	assert.InDelta(t, 10.0/60.0, snap.Markers[0].Left, 1e-9)
	assert.InDelta(t, 10.0/60.0, snap.Markers[0].Width, 1e-9)
}

func TestSessionClickTimestampSeeksOnly(t *testing.T) {
	s := detached(t)
	before := s.State().HighlightIDs

	require.True(t, s.ClickTimestamp("seg-1-0"))
	snap := s.State()
	assert.Equal(t, 40.0, snap.Playback.CurrentTime)
	assert.ElementsMatch(t, before, snap.HighlightIDs, "timestamp click does not toggle")
}

func TestSessionNextPreviousNavigation(t *testing.T) {
	s := detached(t)

	s.Next()
	assert.Equal(t, 40.0, s.State().Playback.CurrentTime)

	s.Previous()
	assert.Equal(t, 10.0, s.State().Playback.CurrentTime)

	s.Previous()
	assert.Equal(t, 10.0, s.State().Playback.CurrentTime, "no wraparound on previous")
}
