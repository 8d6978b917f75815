package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/bramtechsolutions/campaign-rag/internal/server"
	"github.com/bramtechsolutions/campaign-rag/pkg/answer"
	"github.com/bramtechsolutions/campaign-rag/pkg/ingest"
	"github.com/bramtechsolutions/campaign-rag/pkg/search"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the corpus over HTTP",
	Long: `Loads the persisted corpus and exposes /ask, /query, and /ingest.
An export POSTed to /ingest replaces the corpus both in memory and
on disk before queries see it.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	cs, err := loadCorpus(st)
	if err != nil {
		return err
	}

	srv := server.New(
		ingest.New(cs, st),
		search.NewEngine(cs),
		answer.NewEngine(cs),
	)

	addr := cfg.Server.Addr
	if flagAddr != "" {
		addr = flagAddr
	}

	counts := cs.Counts()
	log.Printf("serving on %s (%d characters, %d sessions, %d world entries)",
		addr, counts.Characters, counts.Sessions, counts.World)

	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
