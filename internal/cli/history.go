package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/credlens/credlens/internal/history"
	"github.com/credlens/credlens/internal/model"
)

var historyJSON bool

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the local analysis history",
	Long: `History keeps the most recent analysis reports in a local SQLite
database (default: ~/.credlens/history.db, capped at the configured limit).`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent analyses, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory(buildConfig())
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		reports, err := store.List()
		if err != nil {
			return err
		}

		if historyJSON {
			data, err := json.MarshalIndent(reports, "", "  ")
			if err != nil {
				return fmt.Errorf("encode history: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		if len(reports) == 0 {
			fmt.Println("No analyses recorded yet.")
			return nil
		}

		for _, report := range reports {
			fmt.Printf("%s  score %3d/100  %-22s  %s\n",
				report.CreatedAt.Local().Format("2006-01-02 15:04"),
				report.CredibilityScore,
				report.Label(),
				report.AnalysisID)
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded analyses",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory(buildConfig())
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println("History cleared.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)

	historyListCmd.Flags().BoolVar(&historyJSON, "json", false, "print history as JSON")
}

func openHistory(cfg *model.Config) (*history.Store, error) {
	path, err := historyPath(cfg)
	if err != nil {
		return nil, err
	}
	return history.Open(path, cfg.History.Limit)
}

// appendHistory records one report, opening and closing the store
func appendHistory(cfg *model.Config, report *model.AnalysisReport) error {
	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	return store.Append(report)
}
