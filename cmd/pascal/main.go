// Command pascal prints the first maxn rows of Pascal's triangle, computing
// every entry by unmemoized double recursion.
package main

import (
	"fmt"
	"os"

	"perfbench/internal/cli"
)

func main() {
	cmd, err := cli.NewPrinterCommand("pascal", "pascal <maxn>",
		`Prints rows 0..maxn-1 of Pascal's triangle, one row per line, each value
followed by a space. Every entry is computed by naive double recursion so
the run time measures call and arithmetic overhead.

Example:
  pascal 4`)
	if err == nil {
		cmd.SetArgs(cli.NormalizeArgs(cmd, os.Args[1:]))
		err = cmd.Execute()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
