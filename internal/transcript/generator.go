// Package transcript produces the mocked transcript for an uploaded video.
// It stands in for a real ASR collaborator and is replaceable behind the
// same request/response boundary.
package transcript

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/cplayer11/video-highlight-tool/models"
)

const (
	// messageDuration is the nominal length of one spoken segment.
	messageDuration = 5.0
	// mockInterval is the spacing window for generated middle segments.
	mockInterval = 15.0

	// MinDuration is the exclusive lower bound on acceptable video
	// durations; anything at or below it is rejected.
	MinDuration = messageDuration * 4
)

var (
	// ErrBadDuration is returned for durations that are not usable numbers.
	ErrBadDuration = errors.New("Duration Error")
	// ErrTooShort is returned for videos at or below the minimum duration.
	ErrTooShort = errors.New("This video is too short.")
)

// Generator builds mock transcripts. The randomness source is injected so
// highlight assignment can be made deterministic under a fixed seed.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator seeded from the given source.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// NewGeneratorFromRand wraps an existing randomness source.
func NewGeneratorFromRand(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate returns the sectioned transcript for a video of the given
// duration in seconds. Short videos get four fixed single-segment sections
// with evenly spaced gaps; longer ones get a variable number of segments
// in the two middle sections, with highlight membership drawn at roughly
// 50% probability per segment.
func (g *Generator) Generate(duration float64) ([]models.Section, error) {
	if math.IsNaN(duration) || math.IsInf(duration, 0) {
		return nil, ErrBadDuration
	}
	if duration <= MinDuration {
		return nil, ErrTooShort
	}
	if duration < messageDuration*6 {
		return shortTranscript(duration), nil
	}
	return g.longTranscript(duration), nil
}

// shortTranscript covers durations below six message windows: one segment
// per section, separated by equal gaps, the last ending exactly at the
// video's end.
func shortTranscript(duration float64) []models.Section {
	gap := (duration - messageDuration*2) / 3
	return []models.Section{
		{
			Title: "Introduction",
			Segments: []models.Segment{
				{ID: "seg-0-0", Start: 0, End: messageDuration, Text: "Welcome to our product demonstration", Highlight: false},
			},
		},
		{
			Title: "Key Features",
			Segments: []models.Segment{
				{ID: "seg-1-0", Start: messageDuration + gap, End: messageDuration*2 + gap, Text: "Our product has these main features.", Highlight: true},
			},
		},
		{
			Title: "Demonstration",
			Segments: []models.Segment{
				{ID: "seg-2-0", Start: messageDuration*2 + gap*2, End: messageDuration*3 + gap*2, Text: "Let me show you how it works.", Highlight: true},
			},
		},
		{
			Title: "Conclusion",
			Segments: []models.Segment{
				{ID: "seg-3-0", Start: duration - messageDuration, End: duration, Text: "Thank you for your attention.", Highlight: false},
			},
		},
	}
}

func (g *Generator) longTranscript(duration float64) []models.Section {
	segmentsCount := int(math.Ceil((duration - messageDuration*6) / 2 / mockInterval))

	features := make([]models.Segment, 0, segmentsCount)
	for i := 0; i < segmentsCount; i++ {
		features = append(features, models.Segment{
			ID:        fmt.Sprintf("seg-1-%d", i),
			Start:     messageDuration*2 + float64(i)*mockInterval,
			End:       messageDuration*3 + float64(i+1)*mockInterval,
			Text:      fmt.Sprintf("This is feature part %d", i+1),
			Highlight: g.rng.Float64() < 0.5,
		})
	}

	demo := make([]models.Segment, 0, segmentsCount)
	for i := 0; i < segmentsCount; i++ {
		demo = append(demo, models.Segment{
			ID:        fmt.Sprintf("seg-2-%d", i),
			Start:     messageDuration*2 + float64(segmentsCount+i)*mockInterval,
			End:       messageDuration*3 + float64(segmentsCount+i+1)*mockInterval,
			Text:      fmt.Sprintf("This is demonstration part %d", i+1),
			Highlight: g.rng.Float64() < 0.5,
		})
	}

	return []models.Section{
		{
			Title: "Introduction",
			Segments: []models.Segment{
				{ID: "seg-0-0", Start: 0, End: messageDuration, Text: "Welcome to our product demonstration", Highlight: false},
				{ID: "seg-0-1", Start: messageDuration, End: messageDuration * 2, Text: "Today, we'll be showcasing our latest innovation.", Highlight: true},
			},
		},
		{Title: "Key Features", Segments: features},
		{Title: "Demonstration", Segments: demo},
		{
			Title: "Conclusion",
			Segments: []models.Segment{
				{ID: "seg-3-0", Start: duration - messageDuration*3, End: duration - messageDuration*2, Text: "In conclusion, our product is a game-changer.", Highlight: false},
				{ID: "seg-3-1", Start: duration - messageDuration*2, End: duration - messageDuration, Text: "We're excited to bring this to market.", Highlight: true},
				{ID: "seg-3-2", Start: duration - messageDuration, End: duration, Text: "Thank you for your attention.", Highlight: false},
			},
		},
	}
}
