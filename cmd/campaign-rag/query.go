package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bramtechsolutions/campaign-rag/pkg/search"
)

var (
	queryJSON   bool
	queryPhrase bool
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "List every corpus document matching the query",
	Long: `Matches the query against the corpus conjunctively: a document matches
when every query token appears in its normalized text. Results come back
in partition order (characters, sessions, world), unranked.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output results as JSON")
	queryCmd.Flags().BoolVar(&queryPhrase, "phrase", false, "require the whole query as one substring")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	cs, err := loadCorpus(st)
	if err != nil {
		return err
	}

	engine := search.NewEngine(cs)
	results := engine.QueryWith(args[0], search.Options{Phrase: queryPhrase})

	if queryJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}
	for _, m := range results {
		cmd.Printf("[%s] %s\n", m.Type, m.Key)
	}
	return nil
}
