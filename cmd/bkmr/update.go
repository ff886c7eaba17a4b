package main

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sysid/bkmr/internal/domain"
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a bookmark's fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdate,
}

// editCmd spawns $EDITOR against the bookmark's description, then saves the
// edited content. The interactive editor flow itself is an external
// collaborator (spec Non-goals); bkmr only owns the save-back step.
var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a bookmark's description in $EDITOR",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	updateCmd.Flags().String("title", "", "new title")
	updateCmd.Flags().String("description", "", "new description")
	updateCmd.Flags().StringSlice("tags", nil, "replace the entire tag set")
	updateCmd.Flags().StringSlice("add-tags", nil, "add these tags")
	updateCmd.Flags().StringSlice("remove-tags", nil, "remove these tags")
	updateCmd.Flags().Bool("force-embedding", false, "regenerate the embedding regardless of fingerprint")
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(editCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
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

	if title, _ := cmd.Flags().GetString("title"); title != "" {
		b.Title = title
	}
	if description, _ := cmd.Flags().GetString("description"); description != "" {
		b.Description = description
	}
	if tags, _ := cmd.Flags().GetStringSlice("tags"); len(tags) > 0 {
		b.ReplaceTags(parseTagArgs(tags))
	}
	if tags, _ := cmd.Flags().GetStringSlice("add-tags"); len(tags) > 0 {
		b.AddTags(parseTagArgs(tags))
	}
	if tags, _ := cmd.Flags().GetStringSlice("remove-tags"); len(tags) > 0 {
		b.RemoveTags(parseTagArgs(tags))
	}
	forceEmbedding, _ := cmd.Flags().GetBool("force-embedding")

	if err := a.svc.Update(cmd.Context(), b, forceEmbedding); err != nil {
		return err
	}
	fmt.Printf("updated bookmark %d\n", b.ID)
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
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

	tmp, err := os.CreateTemp("", "bkmr-edit-*.txt")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(b.Description); err != nil {
		tmp.Close()
		return err
	}
	tmp.Close()

	editor := a.cfg.Editor
	editCmd := exec.Command(editor, tmp.Name())
	editCmd.Stdin = os.Stdin
	editCmd.Stdout = os.Stdout
	editCmd.Stderr = os.Stderr
	if err := editCmd.Run(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrExecutionFailure, err)
	}

	edited, err := os.ReadFile(tmp.Name())
	if err != nil {
		return err
	}
	b.Description = string(edited)
	return a.svc.Update(cmd.Context(), b, false)
}
