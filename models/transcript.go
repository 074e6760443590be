package models

// Segment represents a single transcript segment with its time interval.
// The interval is half-open: a time t belongs to the segment when
// Start <= t < End.
type Segment struct {
	ID        string  `json:"id"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Text      string  `json:"text"`
	Highlight bool    `json:"highlight"`
}

// Valid reports whether the segment describes a usable interval. Segments
// with inverted or empty intervals are tolerated but never match any time.
func (s Segment) Valid() bool {
	return s.End > s.Start
}

// Contains reports whether t falls inside the segment's half-open interval.
func (s Segment) Contains(t float64) bool {
	return s.Valid() && t >= s.Start && t < s.End
}

// Section groups consecutive segments under a title. Section boundaries
// carry no playback semantics; sections exist for transcript display only.
type Section struct {
	Title    string    `json:"title"`
	Segments []Segment `json:"segments"`
}

// FlattenSections concatenates the ordered sections into the flat ordered
// segment timeline used for playback.
func FlattenSections(sections []Section) []Segment {
	var out []Segment
	for _, sec := range sections {
		out = append(out, sec.Segments...)
	}
	return out
}

// TranscriptResponse is the success payload of the transcript boundary.
type TranscriptResponse struct {
	Transcript []Section `json:"transcript"`
}

// TranscriptError is the error payload of the transcript boundary.
type TranscriptError struct {
	Error string `json:"error"`
}
