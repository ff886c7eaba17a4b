package main

import (
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/sysid/bkmr/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the bookmark store over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "127.0.0.1:8080", "address to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.cfg.HasEmbedder() {
		interval, err := time.ParseDuration(a.cfg.BackfillInterval)
		if err != nil {
			log.Printf("⚠️ invalid backfill_interval %q, background backfill disabled: %v", a.cfg.BackfillInterval, err)
		} else {
			go a.svc.RunBackfillLoop(cmd.Context(), interval)
		}
	}

	addr, _ := cmd.Flags().GetString("addr")
	server := httpapi.New(a.svc)
	return server.Start(addr)
}
