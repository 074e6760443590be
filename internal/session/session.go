// Package session owns the per-upload playback state: one simulated media
// element, one controller, one highlight set, one transcript. All events
// are serialized behind a single mutex, the in-process analogue of a
// single-threaded event loop.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cplayer11/video-highlight-tool/internal/highlights"
	"github.com/cplayer11/video-highlight-tool/internal/media"
	"github.com/cplayer11/video-highlight-tool/internal/playback"
	"github.com/cplayer11/video-highlight-tool/internal/store"
	"github.com/cplayer11/video-highlight-tool/internal/syncbridge"
	"github.com/cplayer11/video-highlight-tool/models"
)

// Snapshot is the full externally visible state of a session.
type Snapshot struct {
	ID           string                   `json:"id"`
	Duration     float64                  `json:"duration"`
	Playback     models.PlaybackState     `json:"playback"`
	Caption      string                   `json:"caption,omitempty"`
	HighlightIDs []string                 `json:"highlight_ids"`
	Markers      []models.HighlightMarker `json:"markers"`
	Render       syncbridge.RenderState   `json:"render"`
}

// Session binds one uploaded video to its playback engine.
type Session struct {
	ID string

	mu       sync.Mutex
	log      logrus.FieldLogger
	player   *media.SimPlayer
	ctrl     *playback.Controller
	set      *highlights.Set
	sections []models.Section
	flat     []models.Segment
	bridge   *syncbridge.Bridge

	duration   float64
	objectPath string
	uploads    *store.UploadStore

	tick   time.Duration
	cancel context.CancelFunc
	done   chan struct{}
}

type buildParams struct {
	id         string
	duration   float64
	sections   []models.Section
	objectPath string
	uploads    *store.UploadStore
	gapRate    float64
	epsilon    float64
	tick       time.Duration
	log        logrus.FieldLogger
	view       syncbridge.View
}

func build(p buildParams) *Session {
	flat := models.FlattenSections(p.sections)
	set := highlights.FromTranscript(p.sections)
	tl := playback.NewTimeline(set.Ordered(flat))

	startAt := 0.0
	if first, ok := tl.First(); ok {
		startAt = first.Start
	}

	player := media.NewSimPlayer(p.duration)
	ctrl := playback.NewController(playback.Options{
		GapRate:     p.gapRate,
		SeekEpsilon: p.epsilon,
		Logger:      p.log,
	})
	ctrl.Load(player, tl, startAt)

	s := &Session{
		ID:         p.id,
		log:        p.log,
		player:     player,
		ctrl:       ctrl,
		set:        set,
		sections:   p.sections,
		flat:       flat,
		duration:   p.duration,
		objectPath: p.objectPath,
		uploads:    p.uploads,
		tick:       p.tick,
		done:       make(chan struct{}),
	}
	s.bridge = syncbridge.New(ctrl, set, p.sections, p.view)
	return s
}

// NewDetached builds a session that is not registered with any manager
// and has no background clock; callers drive time with Advance. Used by
// the preview command and by tests that need deterministic ticks.
func NewDetached(id string, duration float64, sections []models.Section, log logrus.FieldLogger, view syncbridge.View) *Session {
	return build(buildParams{
		id:       id,
		duration: duration,
		sections: sections,
		log:      log,
		view:     view,
	})
}

// start launches the clock loop driving the simulated media element.
func (s *Session) start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.loop(ctx)
}

func (s *Session) loop(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	dt := s.tick.Seconds()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.player.IsPlaying() {
				ended := s.player.Advance(dt)
				s.ctrl.HandleTick(s.player.CurrentTime())
				if ended {
					s.ctrl.HandleMediaEnded()
				}
			}
			s.mu.Unlock()
		}
	}
}

// Close stops the clock loop and releases the stored upload object.
func (s *Session) Close() {
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
	if s.uploads != nil {
		if err := s.uploads.Remove(s.objectPath); err != nil {
			s.log.WithError(err).Warn("Failed to release upload object")
		}
	}
}

// Play starts playback; from the ended state it restarts at the first
// highlight.
func (s *Session) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Play()
}

// Pause halts playback.
func (s *Session) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Pause()
}

// SeekTo applies a user scrub. A media element reports a time update on
// every seek, playing or not, so one tick is fed through immediately and
// the snapshot already reflects the skip policy.
func (s *Session) SeekTo(t float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.SeekTo(t)
	s.ctrl.HandleTick(s.player.CurrentTime())
}

// Next jumps to the next highlight, wrapping to the first.
func (s *Session) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.SeekToNextHighlight()
}

// Previous jumps to the latest highlight that already ended; no wrap.
func (s *Session) Previous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.SeekToPreviousHighlight()
}

// ToggleHighlight flips a segment's membership via the bridge's row-click
// path. It reports whether the segment id exists.
func (s *Session) ToggleHighlight(segmentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bridge.ClickRow(segmentID)
}

// ClickTimestamp routes a timestamp click: seek without toggling.
func (s *Session) ClickTimestamp(segmentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.bridge.ClickTimestamp(segmentID)
	if ok {
		s.ctrl.HandleTick(s.player.CurrentTime())
	}
	return ok
}

// Advance manually drives the media clock; used by the preview command
// instead of the wall-clock loop.
func (s *Session) Advance(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.player.IsPlaying() {
		return
	}
	ended := s.player.Advance(dt)
	s.ctrl.HandleTick(s.player.CurrentTime())
	if ended {
		s.ctrl.HandleMediaEnded()
	}
}

// State captures the session snapshot.
func (s *Session) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	pb := s.ctrl.State()
	snap := Snapshot{
		ID:           s.ID,
		Duration:     s.duration,
		Playback:     pb,
		HighlightIDs: s.set.IDs(),
		Render:       s.bridge.RenderState(),
	}
	if pb.CurrentSegmentID != nil {
		for _, seg := range s.flat {
			if seg.ID == *pb.CurrentSegmentID {
				snap.Caption = seg.Text
				break
			}
		}
	}
	if s.duration > 0 {
		for _, seg := range s.ctrl.Timeline().Segments() {
			snap.Markers = append(snap.Markers, models.HighlightMarker{
				SegmentID: seg.ID,
				Left:      seg.Start / s.duration,
				Width:     (seg.End - seg.Start) / s.duration,
			})
		}
	}
	return snap
}

// Transcript returns the session's sectioned transcript.
func (s *Session) Transcript() []models.Section {
	return s.sections
}
