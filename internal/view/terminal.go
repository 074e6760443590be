// Package view renders the transcript to a terminal. It is the display
// adapter bound to the sync bridge in the preview command.
package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cplayer11/video-highlight-tool/internal/syncbridge"
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true)
	timestampStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	highlightedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("27"))
	activeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
)

// Terminal writes the transcript render state to an io.Writer. Active
// segments are marked with a pointer column, highlighted ones with a
// colored background; the two states compose.
type Terminal struct {
	out io.Writer
}

// NewTerminal creates a terminal view writing to out.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

// ScrollIntoView has no scrolling to do in a sequential terminal render;
// it prints a marker line so the jump is visible in the output stream.
func (v *Terminal) ScrollIntoView(segmentID string) {
	fmt.Fprintf(v.out, "--> %s\n", segmentID)
}

// Apply renders the full transcript.
func (v *Terminal) Apply(state syncbridge.RenderState) {
	fmt.Fprint(v.out, Render(state))
}

// Render produces the styled transcript text for a render state.
func Render(state syncbridge.RenderState) string {
	var b strings.Builder
	for _, sec := range state.Sections {
		b.WriteString(titleStyle.Render(sec.Title))
		b.WriteByte('\n')
		for _, rs := range sec.Segments {
			marker := "  "
			if rs.Active {
				marker = activeStyle.Render("> ")
			}
			line := rs.Segment.Text
			if rs.Highlighted {
				line = highlightedStyle.Render(line)
			}
			b.WriteString(fmt.Sprintf("%s%s %s\n", marker, timestampStyle.Render(FormatTime(rs.Segment.Start)), line))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatTime renders seconds as m:ss.
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
