package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sysid/bkmr/internal/domain"
)

var tagsCmd = &cobra.Command{
	Use:   "tags [tag]",
	Short: "List all tags, or tags related to one tag",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTags,
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}

func runTags(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if len(args) == 0 {
		counts, err := a.tagsSvc.AllWithCounts(cmd.Context())
		if err != nil {
			return err
		}
		for _, c := range counts {
			fmt.Printf("%s\t%d\n", c.Tag.Value(), c.Count)
		}
		return nil
	}

	tag, err := domain.NewTag(args[0])
	if err != nil {
		return err
	}
	related, err := a.tagsSvc.RelatedTo(cmd.Context(), tag)
	if err != nil {
		return err
	}
	for _, c := range related {
		fmt.Printf("%s\t%d\n", c.Tag.Value(), c.Count)
	}
	return nil
}
