package commands

import (
	"context"
	"fmt"
	"interview-harvest/lib/browser"
	"interview-harvest/lib/chrono"
	"interview-harvest/lib/collectors"
	"interview-harvest/lib/collectors/gfg"
	"interview-harvest/lib/collectors/interviewbit"
	"interview-harvest/lib/collectors/leetcode"
	"interview-harvest/lib/collectors/reddit"
	"interview-harvest/lib/collectors/tryexponent"
	"interview-harvest/lib/question"
	"interview-harvest/lib/telemetry"
	"interview-harvest/lib/warehouse"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	password   string
	askSecret  bool

	config    Config
	tel       telemetry.API = telemetry.SlogAPI{}
	session   *browser.Session
	exporters telemetry.Telemetry

	// run in reverse order once the command returns, whether it failed or not
	cleanups []cleanup
)

type cleanup struct {
	name string
	fn   func(ctx context.Context) error
}

func onCleanup(name string, fn func(ctx context.Context) error) {
	cleanups = append(cleanups, cleanup{name: name, fn: fn})
}

func runCleanups() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for i := len(cleanups) - 1; i >= 0; i-- {
		c := cleanups[i]
		err := c.fn(ctx)
		if err != nil {
			slog.Warn("cleanup failed", "step", c.name, "err", err)
		}
	}
	cleanups = nil
}

var rootCmd = &cobra.Command{
	Use:          "harvest",
	Short:        "harvest collects interview questions from public sources and loads them into a warehouse.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(verbose)

		var err error
		config, err = readConfig(configPath)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}

		exporters, err = telemetry.SetupFromEnv(cmd.Context(), "harvest")
		if err != nil {
			slog.Warn("failed to setup telemetry export", "err", err)
		}
		onCleanup("flush telemetry", exporters.Shutdown)
		telemetry.InstrumentPerfStats(cmd.Context())

		session = browser.NewSession(config.Browser)
		onCleanup("close browser", func(context.Context) error {
			return session.Close()
		})
		registerCollectors()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging.")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "harvest.json5", "The config file, <name>.local.json5 overrides it.")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "The warehouse password, overrides the config.")
	rootCmd.PersistentFlags().BoolVar(&askSecret, "ask-password", false, "Prompt for the warehouse password.")
}

func registerCollectors() {
	c := config.Collectors
	collectors.Register(gfg.New(c.Gfg, config.Http, tel))
	collectors.Register(leetcode.New(c.Leetcode, config.Http, tel))
	collectors.Register(reddit.New(c.Reddit, config.Http, tel))
	collectors.Register(interviewbit.New(c.InterviewBit, session, tel))
	collectors.Register(tryexponent.New(c.TryExponent, session, tel))
}

func newNormalizer() question.Normalizer {
	return question.NewNormalizer(chrono.NewStandardImpl(), tel)
}

// warehouseConfig resolves the password from the flags before anything
// connects.
func warehouseConfig() (warehouse.Config, error) {
	wc := config.Warehouse
	if password != "" {
		wc.Password = password
	}
	if askSecret {
		secret, err := promptPassword("warehouse password")
		if err != nil {
			return warehouse.Config{}, err
		}
		wc.Password = secret
		if wc.Driver == warehouse.DriverLibsql {
			wc.AuthToken = secret
		}
	}
	return wc, nil
}

// execute runs cmd and then the registered cleanups. cobra skips
// PersistentPostRun when RunE fails, so cleanup cannot live there.
func execute(ctx context.Context, cmd *cobra.Command) error {
	defer runCleanups()
	return cmd.ExecuteContext(ctx)
}

func ExecuteContext(ctx context.Context) {
	if err := execute(ctx, rootCmd); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
