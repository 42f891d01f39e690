package main

import (
	"github.com/spf13/cobra"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:   "marinetrack",
	Short: "MarineTrack route safety and advisory engine",
	Long: `MarineTrack resolves water-following sea routes, scores them against
reported hazards and vessel traffic, synthesizes turn-by-turn instructions,
ranks alternatives and checks positions against maritime zones.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".",
		"Directory searched for .env and marinetrack.yaml")
}
