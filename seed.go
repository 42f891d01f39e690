package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DEEPML1818/MarineTrack-app-sub000/config"
	"github.com/DEEPML1818/MarineTrack-app-sub000/db"
	"github.com/DEEPML1818/MarineTrack-app-sub000/seeder"
)

var (
	seedFile      string
	seedBatchSize int
)

var seedZonesCmd = &cobra.Command{
	Use:   "seed-zones",
	Short: "Load maritime zones from a YAML file into the ledger",
	RunE:  runSeedZones,
}

func init() {
	rootCmd.AddCommand(seedZonesCmd)

	seedZonesCmd.Flags().StringVar(&seedFile, "file", "zones.yaml", "Zone reference file")
	seedZonesCmd.Flags().IntVar(&seedBatchSize, "batch-size", seeder.DefaultBatchSize, "Zones per upsert batch")
}

func runSeedZones(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}
	if cfg.LedgerDriver == db.DriverMemory {
		return fmt.Errorf("seed-zones needs a persistent ledger, LEDGER_DRIVER is %q", cfg.LedgerDriver)
	}

	ledger, err := db.Open(cfg.LedgerDriver, cfg.LedgerSource())
	if err != nil {
		return err
	}
	defer ledger.Close()

	metrics, err := seeder.SeedZones(cmd.Context(), ledger, seedFile, seedBatchSize)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d zones (%d invalid, %d duplicate) in %v\n",
		metrics.ValidZones, metrics.InvalidZones, metrics.DuplicateZones, metrics.ProcessingDuration+metrics.DatabaseDuration)
	return nil
}
