package langfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"dfalab/internal/automaton"
)

func TestParse(t *testing.T) {
	src := `
// even-length strings containing "10"
alphabet     = "01"
substring    = "10"
multiplicity = 2
`
	spec, err := Parse("test.lang", src)
	require.NoError(t, err)
	require.Equal(t, []rune("01"), spec.Alphabet)
	require.Equal(t, []rune("10"), spec.Substring)
	require.Equal(t, 2, spec.Multiplicity)

	a, err := automaton.Build(spec)
	require.NoError(t, err)
	require.True(t, automaton.Check(a, "0100").Accepted)
}

func TestParseAnyOrder(t *testing.T) {
	spec, err := Parse("x", `multiplicity = 1 substring = "aa" alphabet = "ab"`)
	require.NoError(t, err)
	require.Equal(t, automaton.NewSpec("ab", "aa", 1), spec)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		src  string
		want error
	}{
		{`alphabet = ab`, ErrSyntax},
		{`alphabet "ab"`, ErrSyntax},
		{`colour = "red"`, ErrSyntax},
		{`multiplicity = "2"`, ErrSyntax},
		{`alphabet = "ab" substring = "a"`, ErrMissingField},
		{`substring = "a" multiplicity = 2`, ErrMissingField},
		{`alphabet = "ab" alphabet = "cd" substring = "a" multiplicity = 1`, ErrDuplicateField},
		{`alphabet = "ab" substring = "ac" multiplicity = 1`, ErrInvalid},
		{`alphabet = "ab" substring = "a" multiplicity = 0`, ErrInvalid},
		{`alphabet = "  " substring = "a" multiplicity = 1`, ErrInvalid},
		{`alphabet = "ab" substring = "" multiplicity = 1`, ErrInvalid},
	}
	for _, c := range cases {
		_, err := Parse("bad.lang", c.src)
		require.True(t, errors.Is(err, c.want), "%s: got %v", c.src, err)
	}
}

func TestMakeCollapsesDuplicates(t *testing.T) {
	spec, err := Make("abba", "ab", 3)
	require.NoError(t, err)
	require.Equal(t, []rune("ab"), spec.Alphabet)
	require.NoError(t, spec.Validate())
}

func TestMakeReportsSymbol(t *testing.T) {
	_, err := Make("01", "012", 1)
	require.ErrorIs(t, err, ErrInvalid)
	require.Contains(t, err.Error(), `'2'`)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "l.lang")
	require.NoError(t, os.WriteFile(path, []byte(`alphabet = "xyz" substring = "zz" multiplicity = 4`), 0o644))
	spec, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 4, spec.Multiplicity)

	_, err = Load(filepath.Join(t.TempDir(), "missing.lang"))
	require.Error(t, err)
}
