package main

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func runArgs(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := run(args, &out, &errOut, quiet)
	return out.String(), err
}

func TestRunFlags(t *testing.T) {
	out, err := runArgs(t, "-alphabet", "ab", "-substring", "ab", "-multiplicity", "2", "ab", "a", "ba", "abz")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	require.Contains(t, lines[0], "built DFA")
	require.True(t, strings.HasPrefix(lines[1], "ACCEPTED"))
	require.Contains(t, lines[2], "not a multiple of 2")
	require.Contains(t, lines[3], "non-final")
	require.Contains(t, lines[4], `'z'`)
}

func TestRunLangAndWordsFiles(t *testing.T) {
	dir := t.TempDir()
	lang := filepath.Join(dir, "l.lang")
	words := filepath.Join(dir, "w.txt")
	require.NoError(t, os.WriteFile(lang, []byte(`alphabet = "01" substring = "10" multiplicity = 3`), 0o644))
	require.NoError(t, os.WriteFile(words, []byte("100 # ok\n10\n"), 0o644))

	out, err := runArgs(t, "-lang", lang, "-words", words, "-trace")
	require.NoError(t, err)
	require.Contains(t, out, `ACCEPTED "100"`)
	require.Contains(t, out, `REJECTED "10"`)
	require.Contains(t, out, "step 0: initial state: q0")
	require.Contains(t, out, "step 3:")
}

func TestRunStatePersists(t *testing.T) {
	state := filepath.Join(t.TempDir(), "s.json")

	_, err := runArgs(t, "-state", state, "-alphabet", "ab", "-substring", "aa", "aa")
	require.NoError(t, err)

	out, err := runArgs(t, "-state", state, "-history", "baab")
	require.NoError(t, err)
	require.Contains(t, out, "history: 2 checked, 2 accepted, 0 rejected")

	out, err = runArgs(t, "-state", state, "-reset", "-history")
	require.NoError(t, err)
	require.Contains(t, out, "history: 0 checked")
}

func TestRunErrors(t *testing.T) {
	_, err := runArgs(t, "word")
	require.Error(t, err, "checking without an automaton")

	_, err = runArgs(t, "-alphabet", "ab", "-substring", "c")
	require.Error(t, err)

	_, err = runArgs(t, "-lang", "x.lang", "-alphabet", "ab")
	require.True(t, errors.Is(err, errUsage))

	_, err = runArgs(t, "-nope")
	require.True(t, errors.Is(err, errUsage))
}

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLogLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, parseLogLevel("whatever"))
}
