// Command primes prints the primes up to a bound by trial division.
package main

import (
	"fmt"
	"os"

	"perfbench/internal/cli"
)

func main() {
	cmd, err := cli.NewPrinterCommand("primes", "primes <max_prime>",
		`Prints every prime p with 2 <= p <= max_prime, one per line, using trial
division by odd numbers up to sqrt(p).

Note: every even number is rejected before any other test, so 2 is never
printed. This matches the reference benchmark and is intentional.

Example:
  primes 10   # prints 3, 5, 7`)
	if err == nil {
		cmd.SetArgs(cli.NormalizeArgs(cmd, os.Args[1:]))
		err = cmd.Execute()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
