package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sysid/bkmr/internal/storage"
)

var createDBCmd = &cobra.Command{
	Use:   "create-db <path>",
	Short: "Initialize a new bookmark database file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCreateDB,
}

func init() {
	rootCmd.AddCommand(createDBCmd)
}

func runCreateDB(cmd *cobra.Command, args []string) error {
	store, err := storage.New("file:" + args[0])
	if err != nil {
		return fmt.Errorf("create database %s: %w", args[0], err)
	}
	defer store.Close()
	fmt.Printf("initialized database at %s\n", args[0])
	return nil
}
