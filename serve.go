package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/DEEPML1818/MarineTrack-app-sub000/api"
	"github.com/DEEPML1818/MarineTrack-app-sub000/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and websocket API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log.Println("Starting MarineTrack server...")

	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ledger, err := openLedger(ctx, cfg)
	if err != nil {
		return err
	}
	defer ledger.Close()

	engine := newEngine(cfg, ledger)
	go engine.LogStatsPeriodically(ctx, cfg.StatsInterval)

	server := api.NewServer(cfg.ListenAddress, engine, api.ServerOptions{
		AllowedOrigins: cfg.AllowedOrigins,
		WatchInterval:  cfg.WatchInterval,
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		log.Println("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Println("Server stopped gracefully")
	return nil
}
