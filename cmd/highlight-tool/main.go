package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "highlight-tool",
		Short: "Upload videos, mark transcript highlights, play them back in sequence",
		Long: `highlight-tool hosts the video highlight playback engine: upload a
video, get a segmented transcript, mark highlights, and play back only the
highlighted segments while everything in between is skipped.`,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newPreviewCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
