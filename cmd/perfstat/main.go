// Command perfstat runs the benchmark programs, aggregates timing data
// files and keeps a history of results.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"perfbench/internal/cli"
	"perfbench/internal/config"
	"perfbench/internal/logging"
	"perfbench/internal/store"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	configPath string
	verbose    bool
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "perfstat",
		Short: "Benchmark harness for the pascal, primes and fib programs",
		Long: `perfstat times the benchmark programs in-process, aggregates timing data
files, and keeps a SQLite history of results for comparison over time.

A data file holds a program header line followed by one timing sample
(seconds) per line. Headers that contain an earlier program name fold into
that program.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			a.cfg = cfg

			if err := cli.InitLogging(cfg.Logging, a.verbose); err != nil {
				return err
			}
			logging.Boot("perfstat %s starting", cmd.Name())
			logging.BootDebug("config loaded from %s", a.configPath)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "perfbench.yaml", "Config file")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging on stderr")

	rootCmd.AddCommand(a.newParseCmd())
	rootCmd.AddCommand(a.newRunCmd())
	rootCmd.AddCommand(a.newHistoryCmd())

	return rootCmd
}

func (a *app) openStore() (*store.Store, error) {
	s, err := store.NewStore(a.cfg.Store.DatabaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open result store: %w", err)
	}
	return s, nil
}

func (a *app) timeout() time.Duration {
	return a.cfg.Run.GetTimeout()
}

func main() {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(cli.NormalizeArgs(rootCmd, os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
