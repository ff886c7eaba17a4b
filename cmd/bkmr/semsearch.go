package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var semSearchCmd = &cobra.Command{
	Use:   "sem-search <query>",
	Short: "Search bookmarks by semantic similarity",
	Args:  cobra.ExactArgs(1),
	RunE:  runSemSearch,
}

func init() {
	semSearchCmd.Flags().Int("limit", 10, "maximum number of results")
	rootCmd.AddCommand(semSearchCmd)
}

func runSemSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	results, err := a.svc.SemanticSearch(cmd.Context(), args[0], limit)
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Printf("%.4f\t%d\t%s\t%s\n", r.Similarity, r.Bookmark.ID, r.Bookmark.URL, r.Bookmark.Title)
	}
	return nil
}
