package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perfbench/internal/bound"
	"perfbench/internal/cli"
)

func executePerfstat(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	rootCmd := newRootCmd()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(cli.NormalizeArgs(rootCmd, append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...)))
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PERFBENCH_DB_DIR", filepath.Join(dir, "db"))
	t.Setenv("PERFBENCH_LOG_LEVEL", "")
	t.Setenv("PERFBENCH_RUNS", "")
	return dir
}

func TestParseCmd(t *testing.T) {
	dir := isolate(t)
	data := filepath.Join(dir, "c.dat")
	require.NoError(t, os.WriteFile(data, []byte("./pascal 22\n1.0\n2.0\n./primes 100\n0.5\n./pascal 22 again\n3.0\n"), 0644))

	out, _, err := executePerfstat(t, "parse", data)
	require.NoError(t, err)
	assert.Equal(t, "./pascal 22:\n3, 6.0, 2.0\n./primes 100:\n1, 0.5, 0.5\n", out)
}

func TestParseCmd_RequiresFile(t *testing.T) {
	isolate(t)
	out, errOut, err := executePerfstat(t, "parse")
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Usage:")
	assert.Contains(t, errOut, "parse <data_file>...")
}

func TestParseCmd_RecordThenHistory(t *testing.T) {
	dir := isolate(t)
	data := filepath.Join(dir, "java.dat")
	require.NoError(t, os.WriteFile(data, []byte("java Pascal 20\n0.75\n0.25\n"), 0644))

	_, errOut, err := executePerfstat(t, "parse", "--record", data)
	require.NoError(t, err)
	assert.Contains(t, errOut, "recorded 1 programs")

	out, _, err := executePerfstat(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "java Pascal 20")
	assert.Contains(t, out, "0.500000")
}

func TestRunCmd_Stdout(t *testing.T) {
	isolate(t)

	out, _, err := executePerfstat(t, "run", "--runs", "2", "primes", "100")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "primes 100", lines[0])
}

func TestRunCmd_AppendsAndRecords(t *testing.T) {
	dir := isolate(t)
	data := filepath.Join(dir, "go.dat")

	for i := 0; i < 2; i++ {
		_, _, err := executePerfstat(t, "run", "-n", "1", "-o", data, "--record", "fib", "15")
		require.NoError(t, err)
	}

	out, _, err := executePerfstat(t, "parse", data)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "fib 15:\n2, "), "got %q", out)

	out, _, err = executePerfstat(t, "history", "fib 15")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "\n"), "header plus two rows, got %q", out)
}

func TestRunCmd_NegativeBound(t *testing.T) {
	isolate(t)

	out, _, err := executePerfstat(t, "run", "-n", "1", "pascal", "-3")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "pascal -3\n"))
}

func TestRunCmd_FlagsAfterNegativeBound(t *testing.T) {
	isolate(t)

	out, _, err := executePerfstat(t, "run", "pascal", "-3", "--runs", "1")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "pascal -3", lines[0])
}

func TestHistoryCmd_NegativeLimitShowsAll(t *testing.T) {
	dir := isolate(t)
	data := filepath.Join(dir, "c.dat")
	require.NoError(t, os.WriteFile(data, []byte("fib 20\n1.0\nprimes 50\n2.0\n"), 0644))

	_, _, err := executePerfstat(t, "parse", "--record", data)
	require.NoError(t, err)

	out, _, err := executePerfstat(t, "history", "--limit", "-1")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "\n"), "header plus two rows, got %q", out)

	out, _, err = executePerfstat(t, "history", "-l", "-1", "fib 20")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "\n"), "header plus one row, got %q", out)
}

func TestRunCmd_Errors(t *testing.T) {
	isolate(t)

	_, _, err := executePerfstat(t, "run", "pascal", "many")
	assert.ErrorIs(t, err, bound.ErrInvalidArgument)

	_, _, err = executePerfstat(t, "run", "sieve", "10")
	assert.Error(t, err)
}

func TestHistoryCmd_Empty(t *testing.T) {
	isolate(t)

	out, _, err := executePerfstat(t, "history")
	require.NoError(t, err)
	assert.Equal(t, "no recorded results\n", out)
}

func TestInvalidConfig(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "perfbench.yaml")
	require.NoError(t, os.WriteFile(path, []byte("run:\n  runs: 0\n"), 0644))

	rootCmd := newRootCmd()
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"--config", path, "history"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
