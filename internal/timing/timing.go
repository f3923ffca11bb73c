// Package timing reads, aggregates and writes benchmark timing data files.
//
// A data file is line oriented. A line that parses as a float is one
// sample, in seconds, for the current program. Any other non-blank line is
// a program header: if a program seen earlier is a substring of the line
// that program becomes current again, otherwise the trimmed line names a
// new program. This lets a harness write its full command line as the
// header (for example "./pascal 22") while repeated runs still fold into
// one program.
package timing

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"perfbench/internal/logging"
)

// Summary aggregates the samples of one program.
type Summary struct {
	Program string
	Runs    int
	Total   float64
	Mean    float64
}

func (s *Summary) add(sample float64) {
	s.Runs++
	s.Total += sample
	s.Mean = s.Total / float64(s.Runs)
}

// Summarize folds samples into a Summary for program.
func Summarize(program string, samples []float64) Summary {
	s := Summary{Program: program}
	for _, v := range samples {
		s.add(v)
	}
	return s
}

// Parse reads one data file. Programs are returned in first-seen order,
// including headers that never received a sample.
func Parse(r io.Reader) ([]Summary, error) {
	var sums []Summary
	current := -1
	lineNo := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if sample, err := strconv.ParseFloat(trimmed, 64); err == nil {
			if current < 0 {
				return nil, fmt.Errorf("line %d: timing sample %q before any program header", lineNo, trimmed)
			}
			sums[current].add(sample)
			continue
		}

		current = -1
		for i := range sums {
			if strings.Contains(line, sums[i].Program) {
				current = i
				break
			}
		}
		if current < 0 {
			sums = append(sums, Summary{Program: strings.TrimRight(line, " ")})
			current = len(sums) - 1
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read timing data: %w", err)
	}

	return sums, nil
}

// ParseFile parses the data file at path.
func ParseFile(path string) ([]Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open timing data: %w", err)
	}
	defer f.Close()

	sums, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sums, nil
}

// ParseFiles parses every path concurrently and merges the results in
// argument order. The first failure cancels the remaining files.
func ParseFiles(ctx context.Context, paths []string) ([]Summary, error) {
	results := make([][]Summary, len(paths))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, path := range paths {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			sums, err := ParseFile(path)
			if err != nil {
				return err
			}
			logging.Get(logging.CategoryTiming).Debugw("parsed data file", "path", path, "programs", len(sums))
			results[i] = sums
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var merged []Summary
	for _, sums := range results {
		merged = Merge(merged, sums)
	}
	return merged, nil
}

// Merge folds b into a by program name, keeping first-seen order. Neither
// input is modified.
func Merge(a, b []Summary) []Summary {
	out := make([]Summary, len(a), len(a)+len(b))
	copy(out, a)

	index := make(map[string]int, len(out))
	for i, s := range out {
		index[s.Program] = i
	}
	for _, s := range b {
		i, ok := index[s.Program]
		if !ok {
			index[s.Program] = len(out)
			out = append(out, s)
			continue
		}
		out[i].Runs += s.Runs
		out[i].Total += s.Total
		if out[i].Runs > 0 {
			out[i].Mean = out[i].Total / float64(out[i].Runs)
		}
	}
	return out
}

// WriteReport writes each program with at least one sample as
//
//	<program>:
//	<runs>, <total>, <mean>
func WriteReport(w io.Writer, sums []Summary) error {
	bw := bufio.NewWriter(w)
	for _, s := range sums {
		if s.Runs == 0 {
			continue
		}
		fmt.Fprintf(bw, "%s:\n%d, %s, %s\n", s.Program, s.Runs, formatSeconds(s.Total), formatSeconds(s.Mean))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// AppendSamples writes a header line followed by one sample per line, in
// the format Parse reads.
func AppendSamples(w io.Writer, header string, samples []float64) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(header)
	bw.WriteByte('\n')
	for _, s := range samples {
		bw.WriteString(strconv.FormatFloat(s, 'f', -1, 64))
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}
	return nil
}

// formatSeconds renders v with 12 significant digits, always showing a
// decimal point for finite integral values ("2.0", not "2"). Infinities
// and NaN are spelled "inf", "-inf" and "nan".
func formatSeconds(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(v, 'g', 12, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
