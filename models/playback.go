package models

// PlayState names the playback controller's lifecycle state.
type PlayState string

const (
	StateIdle    PlayState = "idle"
	StatePaused  PlayState = "paused"
	StatePlaying PlayState = "playing"
	StateEnded   PlayState = "ended"
)

// PlaybackState is the externally visible snapshot of the controller.
// CurrentSegmentID is nil whenever no highlighted segment contains
// CurrentTime (between highlights, before the first, after the last).
type PlaybackState struct {
	State            PlayState `json:"state"`
	CurrentTime      float64   `json:"current_time"`
	IsPlaying        bool      `json:"is_playing"`
	CurrentSegmentID *string   `json:"current_segment_id"`
}

// HighlightMarker describes one highlight's position on the seek bar as
// fractions of the media duration.
type HighlightMarker struct {
	SegmentID string  `json:"segment_id"`
	Left      float64 `json:"left"`
	Width     float64 `json:"width"`
}
