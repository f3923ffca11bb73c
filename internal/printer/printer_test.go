package printer

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perfbench/internal/bound"
)

func TestPascal_FourRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Pascal(&buf, 4))
	assert.Equal(t, "1 \n1 1 \n1 2 1 \n1 3 3 1 \n", buf.String())
}

func TestPascal_NoOutput(t *testing.T) {
	for _, n := range []int32{0, -1, -100} {
		var buf bytes.Buffer
		require.NoError(t, Pascal(&buf, n))
		assert.Empty(t, buf.String(), "maxn=%d", n)
	}
}

func TestPascal_RowShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Pascal(&buf, 16))

	rows := parseRows(t, buf.String())
	require.Len(t, rows, 16)
	for n, row := range rows {
		require.Len(t, row, n+1, "row %d", n)
		assert.Equal(t, 1, row[0])
		assert.Equal(t, 1, row[n])
		for k := 1; k < n; k++ {
			assert.Equal(t, rows[n-1][k-1]+rows[n-1][k], row[k], "row %d col %d", n, k)
		}
	}
}

func TestPrimes_UpToTen(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Primes(&buf, 10))
	// 2 is excluded: every even number is rejected first.
	assert.Equal(t, "3\n5\n7\n", buf.String())
}

func TestPrimes_BelowTwo(t *testing.T) {
	for _, n := range []int32{1, 0, -7} {
		var buf bytes.Buffer
		require.NoError(t, Primes(&buf, n))
		assert.Empty(t, buf.String(), "max=%d", n)
	}
}

func TestPrimes_Ascending(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Primes(&buf, 60))

	var got []int
	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		v, err := strconv.Atoi(line)
		require.NoError(t, err)
		got = append(got, v)
	}
	want := []int{3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("primes mismatch (-want +got):\n%s", diff)
	}
}

func TestFib(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Fib(&buf, 10))
	assert.Equal(t, "55\n", buf.String())
}

func TestFib_RejectsNonPositive(t *testing.T) {
	var buf bytes.Buffer
	err := Fib(&buf, 0)
	assert.True(t, errors.Is(err, bound.ErrInvalidArgument))
	assert.Empty(t, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestPrinters_PropagateWriteErrors(t *testing.T) {
	assert.Error(t, Pascal(failingWriter{}, 3))
	assert.Error(t, Primes(failingWriter{}, 10))
	assert.Error(t, Fib(failingWriter{}, 3))
}

func TestLookup(t *testing.T) {
	assert.Equal(t, []string{"fib", "pascal", "primes"}, Names())

	p, ok := Lookup("pascal")
	require.True(t, ok)
	assert.Equal(t, "pascal", p.Name)

	_, ok = Lookup("sieve")
	assert.False(t, ok)
}

func parseRows(t *testing.T, out string) [][]int {
	t.Helper()
	var rows [][]int
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		require.True(t, strings.HasSuffix(line, " "), "row %q lacks trailing space", line)
		var row []int
		for _, f := range strings.Fields(line) {
			v, err := strconv.Atoi(f)
			require.NoError(t, err)
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	return rows
}
