// Package printer writes the output of each benchmark program.
//
// The printers buffer their output and flush once, so the measured cost is
// dominated by the kernels rather than by write syscalls.
package printer

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"perfbench/internal/bound"
	"perfbench/internal/kernel"
)

// Pascal writes rows 0 through maxn-1 of Pascal's triangle. Each value is
// followed by a single space and each row ends with a newline. A maxn of
// zero or less writes nothing.
func Pascal(w io.Writer, maxn int32) error {
	bw := bufio.NewWriter(w)
	for n := int32(0); n < maxn; n++ {
		for k := int32(0); k < n+1; k++ {
			fmt.Fprintf(bw, "%d ", kernel.Binom(n, k))
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write pascal rows: %w", err)
	}
	return nil
}

// Primes writes every p in [2, maxPrime] accepted by
// kernel.IsPrintedPrime, one per line. 2 is never written.
func Primes(w io.Writer, maxPrime int32) error {
	bw := bufio.NewWriter(w)
	// Iterate in int64 so maxPrime == MaxInt32 does not wrap the counter.
	for i := int64(2); i <= int64(maxPrime); i++ {
		if kernel.IsPrintedPrime(int32(i)) {
			fmt.Fprintf(bw, "%d\n", i)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write primes: %w", err)
	}
	return nil
}

// Fib writes fib(n) on a single line. n must be at least 1.
func Fib(w io.Writer, n int32) error {
	if n < 1 {
		return fmt.Errorf("%w: fib needs n >= 1, got %d", bound.ErrInvalidArgument, n)
	}
	if _, err := fmt.Fprintf(w, "%d\n", kernel.Fib(n)); err != nil {
		return fmt.Errorf("failed to write fib: %w", err)
	}
	return nil
}

// Program is a named benchmark entry point.
type Program struct {
	Name  string
	Short string
	Run   func(w io.Writer, n int32) error
}

var programs = map[string]Program{
	"pascal": {
		Name:  "pascal",
		Short: "Print Pascal's triangle rows computed by naive recursion",
		Run:   Pascal,
	},
	"primes": {
		Name:  "primes",
		Short: "Print odd primes up to a bound by trial division",
		Run:   Primes,
	},
	"fib": {
		Name:  "fib",
		Short: "Print a Fibonacci number computed by naive recursion",
		Run:   Fib,
	},
}

// Lookup returns the program registered under name.
func Lookup(name string) (Program, bool) {
	p, ok := programs[name]
	return p, ok
}

// Names returns the registered program names in sorted order.
func Names() []string {
	names := make([]string, 0, len(programs))
	for name := range programs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
