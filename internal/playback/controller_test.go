package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cplayer11/video-highlight-tool/internal/media"
	"github.com/cplayer11/video-highlight-tool/models"
)

type report struct {
	time float64
	id   *string
}

func newTestController(t *testing.T, segs []models.Segment, duration float64) (*Controller, *media.SimPlayer, *[]report) {
	t.Helper()
	player := media.NewSimPlayer(duration)
	ctrl := NewController(Options{})
	var reports []report
	ctrl.Subscribe(func(tm float64, id *string) {
		reports = append(reports, report{time: tm, id: id})
	})
	ctrl.Load(player, NewTimeline(segs), 0)
	return ctrl, player, &reports
}

func twoHighlights() []models.Segment {
	return []models.Segment{
		seg("a", 10, 20),
		seg("b", 40, 50),
	}
}

func TestControllerTransportFromIdle(t *testing.T) {
	ctrl := NewController(Options{})
	assert.ErrorIs(t, ctrl.Play(), ErrNoMedia)
	assert.ErrorIs(t, ctrl.Pause(), ErrNoMedia)
}

func TestControllerLoadMovesToPaused(t *testing.T) {
	ctrl, player, _ := newTestController(t, twoHighlights(), 60)
	assert.Equal(t, models.StatePaused, ctrl.State().State)
	assert.False(t, player.IsPlaying())
}

func TestControllerTickInsideHighlight(t *testing.T) {
	ctrl, player, reports := newTestController(t, twoHighlights(), 60)
	require.NoError(t, ctrl.Play())
	player.SetRate(1.05)

	ctrl.HandleTick(15)

	st := ctrl.State()
	require.NotNil(t, st.CurrentSegmentID)
	assert.Equal(t, "a", *st.CurrentSegmentID)
	assert.Equal(t, NormalRate, player.Rate(), "rate returns to normal inside a highlight")
	require.Len(t, *reports, 1)
	assert.Equal(t, 15.0, (*reports)[0].time)
}

func TestControllerSkipsGapToNextHighlight(t *testing.T) {
	ctrl, player, reports := newTestController(t, twoHighlights(), 60)
	require.NoError(t, ctrl.Play())

	ctrl.HandleTick(25)

	assert.Equal(t, 40.0, player.CurrentTime(), "seeks to the next highlight's start")
	assert.Equal(t, DefaultGapRate, player.Rate())
	require.Len(t, *reports, 1)
	assert.Nil(t, (*reports)[0].id, "no containing segment at the seek instant")
	assert.Equal(t, 40.0, (*reports)[0].time)

	ctrl.HandleTick(player.CurrentTime())
	require.Len(t, *reports, 2)
	require.NotNil(t, (*reports)[1].id)
	assert.Equal(t, "b", *(*reports)[1].id, "containing segment reported on the following tick")
}

func TestControllerEndsAfterLastHighlight(t *testing.T) {
	ctrl, player, reports := newTestController(t, twoHighlights(), 60)
	require.NoError(t, ctrl.Play())

	ctrl.HandleTick(55)

	st := ctrl.State()
	assert.Equal(t, models.StateEnded, st.State)
	assert.False(t, st.IsPlaying)
	assert.False(t, player.IsPlaying())
	require.Len(t, *reports, 1)
	assert.Nil(t, (*reports)[0].id)
}

func TestControllerPlayAfterEndedRestartsAtFirstHighlight(t *testing.T) {
	ctrl, player, _ := newTestController(t, twoHighlights(), 60)
	require.NoError(t, ctrl.Play())
	ctrl.HandleTick(55)
	require.Equal(t, models.StateEnded, ctrl.State().State)

	require.NoError(t, ctrl.Play())

	assert.Equal(t, models.StatePlaying, ctrl.State().State)
	assert.Equal(t, 10.0, player.CurrentTime())
	assert.True(t, player.IsPlaying())
}

func TestControllerEmptyHighlightsIsInert(t *testing.T) {
	ctrl, _, _ := newTestController(t, nil, 60)
	require.NoError(t, ctrl.Play())

	ctrl.HandleTick(5)
	assert.Equal(t, models.StatePlaying, ctrl.State().State, "nothing to skip, nothing to end")

	ctrl.SeekToNextHighlight()
	ctrl.SeekToPreviousHighlight()
	assert.Equal(t, 5.0, ctrl.State().CurrentTime)
}

func TestControllerSeekEpsilon(t *testing.T) {
	ctrl, player, _ := newTestController(t, twoHighlights(), 60)
	require.NoError(t, ctrl.Play())
	ctrl.HandleTick(15)

	ctrl.SeekTo(15.3)
	assert.Equal(t, 15.0, ctrl.State().CurrentTime, "sub-epsilon seek is ignored")

	ctrl.SeekTo(45)
	assert.Equal(t, 45.0, ctrl.State().CurrentTime)
	assert.Equal(t, 45.0, player.CurrentTime())
}

func TestControllerSeekToNextWrapsAround(t *testing.T) {
	ctrl, player, _ := newTestController(t, twoHighlights(), 60)
	require.NoError(t, ctrl.Play())

	player.Seek(15)
	ctrl.SeekToNextHighlight()
	assert.Equal(t, 40.0, player.CurrentTime())

	player.Seek(55)
	ctrl.SeekToNextHighlight()
	assert.Equal(t, 10.0, player.CurrentTime(), "wraps to the first highlight")
}

func TestControllerSeekToPreviousNoWrap(t *testing.T) {
	ctrl, player, _ := newTestController(t, twoHighlights(), 60)
	require.NoError(t, ctrl.Play())

	player.Seek(15)
	ctrl.SeekToPreviousHighlight()
	assert.Equal(t, 15.0, player.CurrentTime(), "no-op before any highlight's end has passed")

	player.Seek(30)
	ctrl.SeekToPreviousHighlight()
	assert.Equal(t, 10.0, player.CurrentTime())
}

func TestControllerMediaEndedRestarts(t *testing.T) {
	ctrl, player, _ := newTestController(t, twoHighlights(), 60)
	require.NoError(t, ctrl.Play())

	player.Seek(60)
	player.Pause()
	ctrl.HandleMediaEnded()

	assert.Equal(t, 10.0, player.CurrentTime())
	assert.True(t, player.IsPlaying())
	assert.Equal(t, models.StatePlaying, ctrl.State().State)
}

func TestControllerMediaEndedEmptySetNoop(t *testing.T) {
	ctrl, player, _ := newTestController(t, nil, 60)
	require.NoError(t, ctrl.Play())

	player.Seek(60)
	player.Pause()
	ctrl.HandleMediaEnded()

	assert.False(t, player.IsPlaying())
}

func TestControllerSetHighlightsTakesEffectOnNextTick(t *testing.T) {
	ctrl, player, _ := newTestController(t, twoHighlights(), 60)
	require.NoError(t, ctrl.Play())

	ctrl.SetHighlights(NewTimeline([]models.Segment{seg("b", 40, 50)}))
	ctrl.HandleTick(15)

	assert.Equal(t, 40.0, player.CurrentTime(), "deselected segment is now a gap")
	assert.Nil(t, ctrl.State().CurrentSegmentID)
}
