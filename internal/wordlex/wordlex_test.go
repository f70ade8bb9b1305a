package wordlex

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func texts(ws []Word) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.Text
	}
	return out
}

func TestScanWords(t *testing.T) {
	input := `# words for alphabet {a,b}
ab aabb   a
ba	aba # trailing comment
""
"a b"
`
	ws, err := Scan([]byte(input))
	require.NoError(t, err)
	require.Equal(t, []string{"ab", "aabb", "a", "ba", "aba", "", "a b"}, texts(ws))

	require.False(t, ws[0].Quoted)
	require.True(t, ws[5].Quoted)
	require.Equal(t, ws[0].Line, ws[1].Line)
	require.Less(t, ws[0].Line, ws[3].Line)
	require.Less(t, ws[0].Column, ws[1].Column)
}

func TestScanUnicode(t *testing.T) {
	ws, err := Scan([]byte("αβ βα\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"αβ", "βα"}, texts(ws))
}

func TestScanEmpty(t *testing.T) {
	ws, err := Scan([]byte("  # nothing here\n\n"))
	require.NoError(t, err)
	require.Empty(t, ws)
}

func TestScanUnterminatedQuote(t *testing.T) {
	ws, err := Scan([]byte("ab \"oops\n"))
	require.True(t, errors.Is(err, ErrScan), "got %v", err)
	require.Equal(t, []string{"ab"}, texts(ws))
}

func TestScanFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "w.txt")
	require.NoError(t, os.WriteFile(path, []byte("100 10\n"), 0o644))
	ws, err := ScanFile(path)
	require.NoError(t, err)
	require.Equal(t, []string{"100", "10"}, texts(ws))
}
