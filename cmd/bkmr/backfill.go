package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Generate embeddings for embeddable bookmarks that lack one",
	RunE:  runBackfill,
}

func init() {
	backfillCmd.Flags().Bool("dry-run", false, "report how many bookmarks would be embedded without writing")
	backfillCmd.Flags().Bool("force", false, "re-embed every embeddable bookmark not tagged _imported_, including ones that already have an embedding")
	rootCmd.AddCommand(backfillCmd)
}

func runBackfill(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	force, _ := cmd.Flags().GetBool("force")

	var n int
	if force {
		n, err = a.svc.ForcedBackfillEmbeddings(cmd.Context(), dryRun)
	} else {
		n, err = a.svc.BackfillEmbeddings(cmd.Context(), dryRun)
	}
	if err != nil {
		return err
	}
	if dryRun {
		fmt.Printf("%d bookmarks would be embedded\n", n)
	} else {
		fmt.Printf("embedded %d bookmarks\n", n)
	}
	return nil
}
