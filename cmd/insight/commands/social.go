package commands

import (
	"fmt"

	"intelvest/internal/calculator"
	"intelvest/internal/domain"
	"intelvest/internal/viewstate"

	"github.com/spf13/cobra"
)

var socialCmd = &cobra.Command{
	Use:   "social <symbol>",
	Short: "Fetch social trends for one symbol",
	Args:  cobra.ExactArgs(1),
	RunE:  runSocial,
}

func init() {
	rootCmd.AddCommand(socialCmd)
}

func runSocial(cmd *cobra.Command, args []string) error {
	orchestrator, err := initOrchestrator()
	if err != nil {
		return err
	}

	state := viewstate.New[domain.SocialSnapshot]()
	if err := orchestrator.FetchSocial(cmd.Context(), state, args[0]); err != nil {
		return err
	}

	view := state.Current()
	score := view.Data.Sentiment.Score
	fmt.Printf("%s social sentiment: %.3f (%s)\n", args[0], score, calculator.SentimentBucketFor(score))

	if len(view.Data.Trends) == 0 {
		fmt.Println("no trending terms")
	} else {
		fmt.Println("\ntrending:")
		for _, trend := range view.Data.Trends {
			fmt.Printf("  %s (%d)\n", trend.Term, trend.Frequency)
		}
	}

	printWarnings(view.Warnings)
	return nil
}
