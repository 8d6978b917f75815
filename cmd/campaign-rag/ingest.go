package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bramtechsolutions/campaign-rag/pkg/corpus"
	"github.com/bramtechsolutions/campaign-rag/pkg/ingest"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [export.json]",
	Short: "Rebuild the corpus from a raw chat export",
	Long: `Parses a chat export, classifies every message into character sheets,
per-day session transcripts, and world lore, and replaces the persisted
corpus wholesale. Re-ingesting the same export is idempotent.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read export: %w", err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	pipeline := ingest.New(corpus.NewStore(), st)
	counts, err := pipeline.Run(data)
	if err != nil {
		return err
	}

	cmd.Printf("Ingested %s: %d characters, %d sessions, %d world entries\n",
		args[0], counts.Characters, counts.Sessions, counts.World)
	return nil
}
