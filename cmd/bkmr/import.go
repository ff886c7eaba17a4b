package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sysid/bkmr/internal/importer"
)

var importFilesCmd = &cobra.Command{
	Use:   "import-files <paths...>",
	Short: "Reconcile bookmarks from annotated markdown/text files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runImportFiles,
}

var loadTextsCmd = &cobra.Command{
	Use:   "load-texts <path>",
	Short: "Import bookmarks from an NDJSON stream of id/content pairs",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoadTexts,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import bookmarks from external formats",
}

var importBrowserHTMLCmd = &cobra.Command{
	Use:   "browser-html <path>",
	Short: "Import bookmarks from a Netscape-format browser export",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportBrowserHTML,
}

func init() {
	importFilesCmd.Flags().Bool("update", false, "update bookmarks whose content hash changed")
	importFilesCmd.Flags().Bool("delete-missing", false, "delete bookmarks whose source file no longer exists")
	importFilesCmd.Flags().Bool("dry-run", false, "report what would change without writing")
	importFilesCmd.Flags().String("base-path", "", "named base key for canonical url rewriting, e.g. NOTES")
	rootCmd.AddCommand(importFilesCmd)

	loadTextsCmd.Flags().Bool("dry-run", false, "report what would change without writing")
	loadTextsCmd.Flags().Bool("force", false, "overwrite description/embedding of existing records")
	rootCmd.AddCommand(loadTextsCmd)

	importBrowserHTMLCmd.Flags().Bool("update", false, "update bookmarks that already exist by url")
	importBrowserHTMLCmd.Flags().Bool("dry-run", false, "report what would change without writing")
	importCmd.AddCommand(importBrowserHTMLCmd)
	rootCmd.AddCommand(importCmd)
}

func runImportFiles(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	update, _ := cmd.Flags().GetBool("update")
	deleteMissing, _ := cmd.Flags().GetBool("delete-missing")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	basePath, _ := cmd.Flags().GetString("base-path")

	opts := importer.Options{
		Update:        update,
		DeleteMissing: deleteMissing,
		DryRun:        dryRun,
		BasePath:      basePath,
	}
	if basePath != "" {
		root, ok := a.cfg.BasePaths[basePath]
		if !ok {
			return fmt.Errorf("base path %q is not configured", basePath)
		}
		opts.BasePathRoot = root
	}

	report, err := a.svc.ImportFiles(cmd.Context(), readFileBytes, args, opts)
	if err != nil {
		return err
	}
	printReport(report)
	return nil
}

func runLoadTexts(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	force, _ := cmd.Flags().GetBool("force")

	report, err := a.svc.LoadTexts(cmd.Context(), f, dryRun, force)
	if err != nil {
		return err
	}
	printReport(report)
	return nil
}

func runImportBrowserHTML(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	update, _ := cmd.Flags().GetBool("update")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	report, err := a.svc.ImportBrowserHTML(cmd.Context(), f, update, dryRun)
	if err != nil {
		return err
	}
	printReport(report)
	return nil
}

func printReport(r importer.Report) {
	fmt.Printf("run %s: added=%d updated=%d deleted=%d\n", r.RunID, r.Added, r.Updated, r.Deleted)
}
