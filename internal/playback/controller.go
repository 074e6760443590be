package playback

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/cplayer11/video-highlight-tool/internal/media"
	"github.com/cplayer11/video-highlight-tool/models"
)

const (
	// NormalRate is the playback rate inside a highlight.
	NormalRate = 1.0
	// DefaultGapRate is the slightly elevated rate applied while traversing
	// the gap between two highlights, so skips feel snappy without being
	// jarring.
	DefaultGapRate = 1.05
	// DefaultSeekEpsilon is the hysteresis window for external seeks.
	// Sub-epsilon differences from the last known time are assumed to be
	// the controller's own rounding and are ignored to avoid feedback
	// loops between the view and the media clock.
	DefaultSeekEpsilon = 0.5
)

// ErrNoMedia is returned for transport controls invoked before any media
// has been loaded.
var ErrNoMedia = errors.New("playback: no media loaded")

// Listener receives the controller's report on every tick and at every
// seek instant: the media time and the id of the containing highlight, or
// nil when the time falls outside every highlight.
type Listener func(t float64, segmentID *string)

// Options tunes the controller. Zero values fall back to the defaults.
type Options struct {
	GapRate     float64
	SeekEpsilon float64
	Logger      logrus.FieldLogger
}

// Controller is the state machine driving a media element through the
// highlighted subsequence of the transcript. It is purely reactive: the
// media clock pushes ticks in, and the controller issues fire-and-forget
// commands (seek, rate, play, pause) back out.
//
// The controller is not synchronized; the owning session processes events
// one at a time in arrival order.
type Controller struct {
	player   media.Player
	timeline Timeline
	state    models.PlayState

	lastTime  float64
	currentID *string

	gapRate   float64
	epsilon   float64
	log       logrus.FieldLogger
	listeners []Listener
}

// NewController creates a controller in the Idle state.
func NewController(opts Options) *Controller {
	c := &Controller{
		state:   models.StateIdle,
		gapRate: opts.GapRate,
		epsilon: opts.SeekEpsilon,
		log:     opts.Logger,
	}
	if c.gapRate <= 0 {
		c.gapRate = DefaultGapRate
	}
	if c.epsilon <= 0 {
		c.epsilon = DefaultSeekEpsilon
	}
	if c.log == nil {
		c.log = logrus.New()
	}
	return c
}

// Subscribe registers a listener for tick and seek reports.
func (c *Controller) Subscribe(fn Listener) {
	c.listeners = append(c.listeners, fn)
}

// Load attaches a media element and the initial highlight timeline,
// moving Idle to Paused. The playhead is positioned at startAt.
func (c *Controller) Load(player media.Player, tl Timeline, startAt float64) {
	c.player = player
	c.timeline = tl
	c.state = models.StatePaused
	c.lastTime = startAt
	c.currentID = nil
	player.Seek(startAt)
}

// SetHighlights swaps the highlight snapshot. Called whenever the user
// toggles a segment; the new play order takes effect on the next tick.
func (c *Controller) SetHighlights(tl Timeline) {
	c.timeline = tl
}

// State returns the externally visible playback snapshot.
func (c *Controller) State() models.PlaybackState {
	return models.PlaybackState{
		State:            c.state,
		CurrentTime:      c.lastTime,
		IsPlaying:        c.state == models.StatePlaying,
		CurrentSegmentID: c.currentID,
	}
}

// Timeline returns the current highlight snapshot.
func (c *Controller) Timeline() Timeline {
	return c.timeline
}

// Play starts playback. From Ended it restarts at the first highlight;
// with an empty highlight set that restart is a no-op.
func (c *Controller) Play() error {
	switch c.state {
	case models.StateIdle:
		return ErrNoMedia
	case models.StateEnded:
		first, ok := c.timeline.First()
		if !ok {
			return nil
		}
		c.player.Seek(first.Start)
		c.lastTime = first.Start
	}
	c.player.Play()
	c.state = models.StatePlaying
	return nil
}

// Pause halts playback.
func (c *Controller) Pause() error {
	if c.state == models.StateIdle {
		return ErrNoMedia
	}
	c.player.Pause()
	c.state = models.StatePaused
	return nil
}

// HandleTick processes one media time-advance report. Inside a highlight
// the rate is pinned to normal; between highlights the controller skips
// ahead to the next one at the gap rate; past the last highlight it ends
// and pauses.
func (c *Controller) HandleTick(t float64) {
	if c.state == models.StateIdle {
		return
	}
	c.lastTime = t

	if c.timeline.Empty() {
		c.currentID = nil
		c.emit(t, nil)
		return
	}

	if seg, ok := c.timeline.SegmentContaining(t); ok {
		c.player.SetRate(NormalRate)
		id := seg.ID
		c.currentID = &id
		c.emit(t, &id)
		return
	}

	c.currentID = nil
	if next, ok := c.timeline.NextAfter(t); ok {
		c.player.SetRate(c.gapRate)
		c.player.Seek(next.Start)
		c.lastTime = next.Start
		c.log.WithFields(logrus.Fields{"from": t, "to": next.Start, "segment": next.ID}).Debug("Skipping gap to next highlight")
		c.emit(next.Start, nil)
		return
	}

	c.player.Pause()
	c.state = models.StateEnded
	c.log.WithField("time", t).Debug("Reached end of highlights")
	c.emit(t, nil)
}

// HandleMediaEnded reacts to the media element reaching its end: playback
// restarts at the first highlight. With no highlights it is a no-op.
func (c *Controller) HandleMediaEnded() {
	if c.state == models.StateIdle {
		return
	}
	first, ok := c.timeline.First()
	if !ok {
		return
	}
	c.player.Seek(first.Start)
	c.lastTime = first.Start
	c.player.Play()
	c.state = models.StatePlaying
}

// SeekTo applies an externally driven seek (user scrub or transcript
// click). Requests within the epsilon of the last known time are dropped;
// everything else overrides the playhead unconditionally and is reconciled
// by the next tick.
func (c *Controller) SeekTo(t float64) {
	if c.state == models.StateIdle {
		return
	}
	if abs(t-c.lastTime) <= c.epsilon {
		return
	}
	c.player.Seek(t)
	c.lastTime = t
	c.emit(t, c.currentID)
}

// SeekToNextHighlight jumps to the first highlight starting after the
// media's actual current time, wrapping to the first highlight when none
// is ahead.
func (c *Controller) SeekToNextHighlight() {
	if c.state == models.StateIdle {
		return
	}
	next, ok := c.timeline.NextAfter(c.player.CurrentTime())
	if !ok {
		next, ok = c.timeline.First()
	}
	if !ok {
		return
	}
	c.player.Seek(next.Start)
	c.lastTime = next.Start
}

// SeekToPreviousHighlight jumps to the latest highlight that ended before
// the media's actual current time. No wraparound: with nothing behind the
// playhead this is a no-op.
func (c *Controller) SeekToPreviousHighlight() {
	if c.state == models.StateIdle {
		return
	}
	prev, ok := c.timeline.PreviousBefore(c.player.CurrentTime())
	if !ok {
		return
	}
	c.player.Seek(prev.Start)
	c.lastTime = prev.Start
}

func (c *Controller) emit(t float64, id *string) {
	for _, fn := range c.listeners {
		fn(t, id)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
