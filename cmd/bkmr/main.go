// Command bkmr is a personal knowledge manager for URIs, code snippets,
// shell scripts, markdown notes, and environment-variable bundles -
// unified under a single addressable "bookmark" entity and retrieved
// through full-text, tag-based, and vector-similarity search.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Unix-standard exit codes (spec §6).
const (
	exitOK            = 0
	exitUsage         = 64
	exitDuplicateName = 65
	exitUserCancel    = 130
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "bkmr: %v\n", err)
		os.Exit(exitCodeFor(err))
	}
}

var rootCmd = &cobra.Command{
	Use:   "bkmr",
	Short: "A fast bookmark manager for URIs, snippets, shell scripts, and notes",
	Long: `bkmr unifies URIs, code snippets, shell scripts, markdown notes, and
environment-variable bundles under a single addressable "bookmark" entity,
retrieved through full-text, tag-based, and vector-similarity search.`,
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "override the configured database path")
	rootCmd.PersistentFlags().String("config", "", "path to config.yaml (default ~/.config/bkmr/config.yaml)")
}
