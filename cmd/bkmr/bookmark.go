package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sysid/bkmr/internal/domain"
	"github.com/sysid/bkmr/internal/service"
)

var addCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Add a new bookmark",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a bookmark",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a bookmark's fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var openCmd = &cobra.Command{
	Use:   "open <ids...>",
	Short: "Dispatch the system-tag action for one or more bookmarks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runOpen,
}

var surpriseCmd = &cobra.Command{
	Use:   "surprise",
	Short: "Show N random bookmarks",
	RunE:  runSurprise,
}

func init() {
	addCmd.Flags().String("title", "", "title override")
	addCmd.Flags().String("description", "", "description override")
	addCmd.Flags().StringSlice("tags", nil, "comma-separated tags")
	addCmd.Flags().Bool("embeddable", true, "whether this bookmark participates in semantic search")
	addCmd.Flags().Bool("fetch-metadata", false, "fetch title/description from the URL's HTML")
	rootCmd.AddCommand(addCmd)

	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(openCmd)

	surpriseCmd.Flags().IntP("n", "n", 1, "number of random bookmarks to show")
	rootCmd.AddCommand(surpriseCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	tagArgs, _ := cmd.Flags().GetStringSlice("tags")
	embeddable, _ := cmd.Flags().GetBool("embeddable")
	fetchMetadata, _ := cmd.Flags().GetBool("fetch-metadata")

	b, err := a.svc.Add(cmd.Context(), args[0], service.AddOptions{
		Title:         title,
		Description:   description,
		Tags:          parseTagArgs(tagArgs),
		Embeddable:    embeddable,
		FetchMetadata: fetchMetadata,
	})
	if err != nil {
		return err
	}
	fmt.Printf("added bookmark %d: %s\n", b.ID, b.URL)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid bookmark id %q: %w", args[0], err)
	}
	ok, err := a.svc.Delete(cmd.Context(), id)
	if err != nil {
		return err
	}
	if ok {
		fmt.Printf("deleted bookmark %d\n", id)
	} else {
		fmt.Printf("bookmark %d did not exist\n", id)
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid bookmark id %q: %w", args[0], err)
	}
	b, err := a.store.GetByID(cmd.Context(), id)
	if err != nil {
		return err
	}
	fmt.Printf("id:          %d\n", b.ID)
	fmt.Printf("url:         %s\n", b.URL)
	fmt.Printf("title:       %s\n", b.Title)
	fmt.Printf("description: %s\n", b.Description)
	fmt.Printf("tags:        %s\n", domain.FormatTags(b.Tags))
	fmt.Printf("access:      %d\n", b.AccessCount)
	fmt.Printf("created:     %s\n", b.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func runOpen(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, raw := range args {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid bookmark id %q: %w", raw, err)
		}
		if err := a.svc.Open(cmd.Context(), id); err != nil {
			return fmt.Errorf("open %d: %w", id, err)
		}
	}
	return nil
}

func runSurprise(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	n, _ := cmd.Flags().GetInt("n")
	results, err := a.svc.Surprise(cmd.Context(), n)
	if err != nil {
		return err
	}
	printBookmarks(results)
	return nil
}
