package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Dump the persisted corpus to a portable JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Restore the corpus from an exported JSON file",
	Long: `Replaces the persisted corpus with the contents of a previous export.
This is a raw restore, not an ingest: no classification runs.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	data, err := st.Export()
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[0], data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	cmd.Printf("Exported corpus to %s (%d bytes)\n", args[0], len(data))
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read export: %w", err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Import(data); err != nil {
		return err
	}

	counts, err := st.Counts()
	if err != nil {
		return err
	}
	cmd.Printf("Imported %d characters, %d sessions, %d world entries\n",
		counts.Characters, counts.Sessions, counts.World)
	return nil
}
