package commands

import (
	"interview-harvest/lib/csvsink"
	"interview-harvest/lib/ingest"
	"interview-harvest/lib/report"
	"interview-harvest/lib/warehouse"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	loadDir    string
	loadNewest bool
)

func init() {
	loadCmd.Flags().StringVar(&loadDir, "dir", "", "Directory to search for collector CSV files, defaults to export_dir.")
	loadCmd.Flags().BoolVar(&loadNewest, "newest", false, "Load the newest CSV without prompting.")
	rootCmd.AddCommand(loadCmd)
}

var loadCmd = &cobra.Command{
	Use:   "load [file.csv]",
	Short: "Merges a collector CSV into the warehouse, skipping questions it already holds.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			dir := loadDir
			if dir == "" {
				dir = config.ExportDir
			}
			var sel csvsink.SelectFunc = csvsink.SelectNewest
			if !loadNewest && term.IsTerminal(int(os.Stdin.Fd())) {
				sel = promptSelect(os.Stdin, os.Stdout)
			}
			var err error
			path, err = csvsink.Resolve(cmd.Context(), dir, csvsink.DefaultPatterns, sel)
			if err != nil {
				return err
			}
		}
		return loadFile(cmd, path)
	},
}

func loadFile(cmd *cobra.Command, path string) error {
	wc, err := warehouseConfig()
	if err != nil {
		return err
	}

	loader := ingest.NewLoader(wc, newNormalizer(), tel)
	result, err := loader.LoadFile(cmd.Context(), path)
	report.Load(os.Stdout, result)
	if err != nil {
		return err
	}

	store, err := warehouse.Open(cmd.Context(), wc)
	if err != nil {
		return err
	}
	defer store.Close()

	sample, err := store.Sample(cmd.Context(), 5)
	if err != nil {
		return err
	}
	report.Rows(os.Stdout, "Sample", sample)

	byCompany, err := store.CountByCompany(cmd.Context())
	if err != nil {
		return err
	}
	report.GroupCounts(os.Stdout, "Questions by company", "Company", byCompany, 10)
	return nil
}
