package commands

import (
	"fmt"
	"interview-harvest/lib/report"
	"interview-harvest/lib/warehouse"
	"os"

	"github.com/spf13/cobra"
)

var (
	queryCompany string
	querySample  int
	queryLimit   int
)

func init() {
	queryCmd.Flags().StringVar(&queryCompany, "company", "", "Search questions by company name substring.")
	queryCmd.Flags().IntVar(&querySample, "sample", 0, "Show n random questions.")
	queryCmd.Flags().IntVar(&queryLimit, "limit", 20, "Maximum rows for --company and companies in the overview.")
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query [--company <name>] [--sample <n>]",
	Short: "Prints warehouse totals, searches by company or samples random questions.",
	RunE: func(cmd *cobra.Command, args []string) error {
		wc, err := warehouseConfig()
		if err != nil {
			return err
		}
		store, err := warehouse.Open(cmd.Context(), wc)
		if err != nil {
			return err
		}
		defer store.Close()
		ctx := cmd.Context()

		switch {
		case queryCompany != "":
			rows, err := store.SearchCompany(ctx, queryCompany, queryLimit)
			if err != nil {
				return err
			}
			if len(rows) > 0 {
				report.Rows(os.Stdout, fmt.Sprintf("Questions for %q", queryCompany), rows)
				return nil
			}
			counts, err := store.CountByCompany(ctx)
			if err != nil {
				return err
			}
			names := make([]string, len(counts))
			for i, c := range counts {
				names[i] = c.Key
			}
			report.Suggestions(os.Stdout, queryCompany, report.Suggest(queryCompany, names, 0.7, 5))
		case querySample > 0:
			rows, err := store.Sample(ctx, querySample)
			if err != nil {
				return err
			}
			report.Rows(os.Stdout, "Sample", rows)
		default:
			total, err := store.Count(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%d questions in %s\n", total, store.Table())

			byCompany, err := store.CountByCompany(ctx)
			if err != nil {
				return err
			}
			report.GroupCounts(os.Stdout, "Questions by company", "Company", byCompany, queryLimit)

			byDifficulty, err := store.CountByDifficulty(ctx)
			if err != nil {
				return err
			}
			report.GroupCounts(os.Stdout, "Questions by difficulty", "Difficulty", byDifficulty, 0)
		}
		return nil
	},
}
