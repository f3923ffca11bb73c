// Package cli builds the cobra command shared by the single-argument
// benchmark binaries.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"perfbench/internal/bound"
	"perfbench/internal/config"
	"perfbench/internal/logging"
	"perfbench/internal/printer"
)

// NewPrinterCommand returns the root command for the named benchmark
// program. The command takes exactly one integer argument and writes the
// program output to the command's stdout.
func NewPrinterCommand(name, use, long string) (*cobra.Command, error) {
	prog, ok := printer.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown benchmark program %q", name)
	}

	var verbose bool

	cmd := &cobra.Command{
		Use:   use,
		Short: prog.Short,
		Long:  long,
		Args: func(cmd *cobra.Command, args []string) error {
			_, err := bound.FromArgs(args)
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return InitLogging(config.LoggingConfig{}, verbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := bound.FromArgs(args)
			if err != nil {
				return err
			}

			timer := logging.StartTimer(logging.CategoryKernel, prog.Name)
			err = prog.Run(cmd.OutOrStdout(), n)
			timer.Stop()
			if err != nil {
				return err
			}
			logging.Get(logging.CategoryKernel).Debugw("program finished", "program", prog.Name, "bound", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")

	return cmd, nil
}

// InitLogging configures logging from c, forcing debug output on when
// verbose is set.
func InitLogging(c config.LoggingConfig, verbose bool) error {
	if verbose {
		c.DebugMode = true
		c.Level = "debug"
	}
	if c.Level == "" {
		c.Level = "info"
	}
	if err := logging.Initialize(c); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// NormalizeArgs lets a negative integer bound like "-3" be read as a
// positional argument instead of a shorthand flag. Negative integers, and
// every positional that follows one, are moved behind a trailing "--" so
// flags that come after the bound still parse. A token consumed as the
// value of a flag from cmd's tree (as in "--limit -1") is left in place.
func NormalizeArgs(cmd *cobra.Command, args []string) []string {
	needsValue := flagsTakingValues(cmd)

	var head, moved []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			if len(moved) == 0 {
				return args
			}
			head = append(head, "--")
			head = append(head, moved...)
			return append(head, args[i+1:]...)
		}

		if strings.HasPrefix(arg, "-") {
			if _, err := bound.Parse(arg); err == nil {
				moved = append(moved, arg)
				continue
			}
			head = append(head, arg)
			if !strings.Contains(arg, "=") && needsValue[arg] && i+1 < len(args) {
				i++
				head = append(head, args[i])
			}
			continue
		}

		if len(moved) > 0 {
			moved = append(moved, arg)
			continue
		}
		head = append(head, arg)
	}

	if len(moved) == 0 {
		return args
	}
	head = append(head, "--")
	return append(head, moved...)
}

// flagsTakingValues returns the "--name" and "-s" spellings of every flag
// in cmd and its subcommands that expects a separate value argument.
func flagsTakingValues(cmd *cobra.Command) map[string]bool {
	out := make(map[string]bool)
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		visit := func(f *pflag.Flag) {
			if f.NoOptDefVal != "" {
				return
			}
			out["--"+f.Name] = true
			if f.Shorthand != "" {
				out["-"+f.Shorthand] = true
			}
		}
		c.Flags().VisitAll(visit)
		c.PersistentFlags().VisitAll(visit)
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(cmd)
	return out
}
