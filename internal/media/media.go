// Package media abstracts the media element driven by the playback
// controller. Commands are fire-and-forget: there is no acknowledgment
// channel, the element's clock is the only autonomous activity.
package media

// Player is the command surface of a media element.
type Player interface {
	Play()
	Pause()
	Seek(t float64)
	SetRate(r float64)
	CurrentTime() float64
	Duration() float64
	Rate() float64
	IsPlaying() bool
}

// SimPlayer is a deterministic in-process media element. Its clock only
// moves when Advance is called, which makes playback sessions fully
// test-drivable: wall time maps to media time scaled by the playback rate.
//
// SimPlayer is not safe for concurrent use; the owning session serializes
// access the same way a browser event loop would.
type SimPlayer struct {
	duration float64
	position float64
	rate     float64
	playing  bool
}

// NewSimPlayer creates a player for media of the given duration in seconds.
func NewSimPlayer(duration float64) *SimPlayer {
	return &SimPlayer{duration: duration, rate: 1.0}
}

func (p *SimPlayer) Play()  { p.playing = true }
func (p *SimPlayer) Pause() { p.playing = false }

// Seek moves the clock, clamping into [0, duration].
func (p *SimPlayer) Seek(t float64) {
	if t < 0 {
		t = 0
	}
	if t > p.duration {
		t = p.duration
	}
	p.position = t
}

// SetRate changes the playback rate. Non-positive rates are ignored.
func (p *SimPlayer) SetRate(r float64) {
	if r > 0 {
		p.rate = r
	}
}

func (p *SimPlayer) CurrentTime() float64 { return p.position }
func (p *SimPlayer) Duration() float64    { return p.duration }
func (p *SimPlayer) Rate() float64        { return p.rate }
func (p *SimPlayer) IsPlaying() bool      { return p.playing }

// Advance moves the clock forward by dt seconds of wall time while playing.
// It returns true when the media end was reached on this step; the player
// stops at the end, mirroring a media element firing its ended event.
func (p *SimPlayer) Advance(dt float64) bool {
	if !p.playing || dt <= 0 {
		return false
	}
	p.position += dt * p.rate
	if p.position >= p.duration {
		p.position = p.duration
		p.playing = false
		return true
	}
	return false
}
