package commands

import (
	"fmt"
	"interview-harvest/lib/chrono"
	"interview-harvest/lib/collectors"
	"interview-harvest/lib/ingest"
	"interview-harvest/lib/report"
	"interview-harvest/lib/sftpdrop"
	"interview-harvest/lib/util/serviceutil"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	collectAll     bool
	collectAndLoad bool
	collectTop     int
)

func init() {
	collectCmd.Flags().BoolVar(&collectAll, "all", false, "Run every registered collector.")
	collectCmd.Flags().BoolVar(&collectAndLoad, "load", false, "Load each written file into the warehouse.")
	collectCmd.Flags().IntVar(&collectTop, "top", 15, "How many companies to show in the summary.")
	rootCmd.AddCommand(collectCmd)
}

var collectCmd = &cobra.Command{
	Use:   "collect [--all] [--load] <collector>...",
	Short: "Runs collectors and writes their deduplicated records to timestamped CSV files.",
	Long: "Runs collectors and writes their deduplicated records to timestamped CSV files.\n\n" +
		"Collectors: gfg, interviewbit, leetcode, reddit, tryexponent.",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := args
		if collectAll {
			names = collectors.Names()
		}
		if len(names) == 0 {
			return fmt.Errorf("specify collectors or --all, known collectors: %s", strings.Join(collectors.Names(), ", "))
		}

		selected := make([]collectors.Collector, len(names))
		for i, name := range names {
			c, ok := collectors.Get(name)
			if !ok {
				return fmt.Errorf("unknown collector %q, known collectors: %s", name, strings.Join(collectors.Names(), ", "))
			}
			selected[i] = c
		}

		opts := ingest.CollectOptions{
			ExportDir: config.ExportDir,
			Clock:     chrono.NewStandardImpl(),
		}
		if config.Sftp.Enabled() {
			uploader, err := sftpdrop.New(config.Sftp)
			if err != nil {
				return err
			}
			opts.Uploader = uploader
		}

		normalizer := newNormalizer()
		var failed []string
		for _, c := range selected {
			var result ingest.CollectReport
			err := serviceutil.Timed("collect "+c.Name(), func() error {
				var err error
				result, err = ingest.Collect(cmd.Context(), c, normalizer, opts)
				return err
			})
			if err != nil {
				slog.Error("collect failed", "collector", c.Name(), "err", err)
				failed = append(failed, c.Name())
				continue
			}
			report.Collect(os.Stdout, result, collectTop)

			if collectAndLoad {
				err = loadFile(cmd, result.File)
				if err != nil {
					slog.Error("load failed", "file", result.File, "err", err)
					failed = append(failed, c.Name())
				}
			}
		}

		if len(failed) > 0 {
			return fmt.Errorf("failed collectors: %s", strings.Join(failed, ", "))
		}
		return nil
	},
}
