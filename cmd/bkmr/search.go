package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sysid/bkmr/internal/domain"
	"github.com/sysid/bkmr/internal/query"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search bookmarks by text and/or tags",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringSlice("tags", nil, "require all of these tags")
	searchCmd.Flags().StringSlice("any-tags", nil, "require any of these tags")
	searchCmd.Flags().Int("limit", 0, "limit result count (0 = unlimited)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	q := query.New()
	if len(args) == 1 && args[0] != "" {
		q = q.WithSpec(query.TextSearch{Query: args[0]})
	}
	if tags, _ := cmd.Flags().GetStringSlice("tags"); len(tags) > 0 {
		q = q.WithSpec(query.AllTags{Tags: parseTagArgs(tags)})
	}
	if tags, _ := cmd.Flags().GetStringSlice("any-tags"); len(tags) > 0 {
		q = q.WithSpec(query.AnyTags{Tags: parseTagArgs(tags)})
	}
	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
		q = q.WithPage(0, limit)
	}

	results, err := a.svc.Search(cmd.Context(), q)
	if err != nil {
		return err
	}
	printBookmarks(results)
	return nil
}

func parseTagArgs(raw []string) []domain.Tag {
	var out []domain.Tag
	for _, r := range raw {
		if t, err := domain.NewTag(r); err == nil {
			out = append(out, t)
		}
	}
	return out
}

func printBookmarks(bookmarks []*domain.Bookmark) {
	for _, b := range bookmarks {
		fmt.Printf("%d\t%s\t%s\t%s\n", b.ID, b.URL, b.Title, domain.FormatTags(b.Tags))
	}
}
