// Command fib prints the n-th Fibonacci number computed by naive recursion.
package main

import (
	"fmt"
	"os"

	"perfbench/internal/cli"
)

func main() {
	cmd, err := cli.NewPrinterCommand("fib", "fib <n>",
		`Prints fib(n) with fib(1) = fib(2) = 1. n must be at least 1.`)
	if err == nil {
		cmd.SetArgs(cli.NormalizeArgs(cmd, os.Args[1:]))
		err = cmd.Execute()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
