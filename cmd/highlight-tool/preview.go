package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cplayer11/video-highlight-tool/config"
	"github.com/cplayer11/video-highlight-tool/internal/session"
	"github.com/cplayer11/video-highlight-tool/internal/transcript"
	"github.com/cplayer11/video-highlight-tool/internal/view"
	"github.com/cplayer11/video-highlight-tool/models"
)

func newPreviewCmd() *cobra.Command {
	var (
		duration float64
		seed     int64
		step     float64
		ticks    int
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Simulate highlight playback over a mock transcript in the terminal",
		Long: `preview generates a mock transcript for the given duration, builds a
playback session with a simulated media clock, plays it for a number of
ticks, and renders the transcript view after each active-segment change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(duration, seed, step, ticks)
		},
	}

	cmd.Flags().Float64Var(&duration, "duration", 100, "Mock video duration in seconds")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for mock highlight assignment")
	cmd.Flags().Float64Var(&step, "step", 0.5, "Simulated wall time per tick in seconds")
	cmd.Flags().IntVar(&ticks, "ticks", 200, "Number of clock ticks to simulate")

	return cmd
}

func runPreview(duration float64, seed int64, step float64, ticks int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := config.NewLogger(cfg.Log.Level)

	gen := transcript.NewGenerator(seed)
	sections, err := gen.Generate(duration)
	if err != nil {
		return err
	}

	term := view.NewTerminal(os.Stdout)
	sess := session.NewDetached("preview", duration, sections, log, term)

	if err := sess.Play(); err != nil {
		return err
	}
	for i := 0; i < ticks; i++ {
		sess.Advance(step)
		snap := sess.State()
		if snap.Playback.State == models.StateEnded {
			fmt.Printf("Playback ended at %s\n", view.FormatTime(snap.Playback.CurrentTime))
			break
		}
	}

	snap := sess.State()
	fmt.Println(view.Render(snap.Render))
	fmt.Printf("Final position %s (%d highlights)\n", view.FormatTime(snap.Playback.CurrentTime), len(snap.HighlightIDs))
	return nil
}
