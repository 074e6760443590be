// Package mediaprobe derives playback metadata from an uploaded video file.
package mediaprobe

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

// ErrNoDuration is returned when the file's metadata yields no usable
// duration (unparseable container, zero or negative duration).
var ErrNoDuration = errors.New("mediaprobe: no usable duration in metadata")

// Prober answers the duration of a stored video file.
type Prober interface {
	Duration(path string) (float64, error)
}

// ffprobeOutput captures the format block of ffprobe's JSON output.
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// FFProbe shells out to ffprobe to read container metadata.
type FFProbe struct{}

// Duration returns the media duration in seconds.
func (FFProbe) Duration(path string) (float64, error) {
	cmd := exec.Command("ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w (stderr: %s)", err, stderr.String())
	}

	var probed ffprobeOutput
	if err := json.Unmarshal(out.Bytes(), &probed); err != nil {
		return 0, fmt.Errorf("unmarshalling ffprobe output: %w", err)
	}
	if probed.Format.Duration == "" {
		return 0, ErrNoDuration
	}

	duration, err := strconv.ParseFloat(probed.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing duration %q: %w", probed.Format.Duration, err)
	}
	if duration <= 0 {
		return 0, ErrNoDuration
	}
	return duration, nil
}

// Fixed is a prober returning a constant duration, or an error when Err is
// set. Used by tests and the preview command.
type Fixed struct {
	Seconds float64
	Err     error
}

func (f Fixed) Duration(string) (float64, error) {
	if f.Err != nil {
		return 0, f.Err
	}
	if f.Seconds <= 0 {
		return 0, ErrNoDuration
	}
	return f.Seconds, nil
}
