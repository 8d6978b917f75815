// Command campaign-rag ingests chat exports into a queryable corpus of
// character sheets, session transcripts, and world lore, and answers
// free-text queries against it.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bramtechsolutions/campaign-rag/internal/config"
	"github.com/bramtechsolutions/campaign-rag/internal/store"
	"github.com/bramtechsolutions/campaign-rag/pkg/corpus"
)

var (
	flagConfig string
	flagDB     string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "campaign-rag",
	Short: "Query a role-playing campaign's characters, sessions, and lore",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if flagConfig != "" {
			cfg, err = config.Load(flagConfig)
		} else {
			cfg, _, err = config.LoadDefault()
		}
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if flagDB != "" {
			cfg.Store.Path = flagDB
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "path to corpus database (overrides config)")
}

// openStore opens the configured SQLite store.
func openStore() (*store.Store, error) {
	st, err := store.New(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", cfg.Store.Path, err)
	}
	return st, nil
}

// loadCorpus reads the persisted corpus into an in-memory store.
func loadCorpus(st *store.Store) (*corpus.Store, error) {
	snap, err := st.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	cs := corpus.NewStore()
	cs.Replace(snap)
	return cs, nil
}

func main() {
	// Best effort; a missing .env is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
