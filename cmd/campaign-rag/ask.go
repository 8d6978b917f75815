package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bramtechsolutions/campaign-rag/pkg/answer"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Extract a single short answer from the best-matching document",
	Long: `Finds the first document matching the question and pulls a narrow fact
out of it (an eye color, an instrument), falling back to echoing the
matched source text when the question carries no recognized intent.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	cs, err := loadCorpus(st)
	if err != nil {
		return err
	}

	ans := answer.NewEngine(cs).Ask(args[0])

	if askJSON {
		data, err := json.MarshalIndent(ans, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if ans.Answer == "" {
		cmd.Println("No answer found.")
		return nil
	}
	cmd.Println(ans.Answer)
	if ans.Source != "" && ans.Source != ans.Answer {
		cmd.Printf("(source: %s)\n", ans.Source)
	}
	return nil
}
