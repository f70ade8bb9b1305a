// Package langfile reads language descriptions of the form
//
//	// strings over {a,b} containing "ab", even length
//	alphabet     = "ab"
//	substring    = "ab"
//	multiplicity = 2
//
// and turns them into an automaton.Spec.
package langfile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"dfalab/internal/automaton"
)

var (
	ErrSyntax         = errors.New("langfile: syntax error")
	ErrMissingField   = errors.New("langfile: missing field")
	ErrDuplicateField = errors.New("langfile: duplicate field")
	ErrInvalid        = errors.New("langfile: invalid language")
)

type File struct {
	Entries []*Entry `parser:"@@*"`
}

type Entry struct {
	Pos lexer.Position

	Alphabet     *string `parser:"  'alphabet' '=' @String"`
	Substring    *string `parser:"| 'substring' '=' @String"`
	Multiplicity *int    `parser:"| 'multiplicity' '=' @Int"`
}

var parser = participle.MustBuild[File](participle.Unquote("String"))

// Parse reads a description from src; name is used in positions.
func Parse(name, src string) (automaton.Spec, error) {
	f, err := parser.ParseString(name, src)
	if err != nil {
		return automaton.Spec{}, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return f.Spec()
}

// Load reads and parses the file at path.
func Load(path string) (automaton.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return automaton.Spec{}, err
	}
	return Parse(path, string(data))
}

// Spec checks that every field is given once and converts the file.
func (f *File) Spec() (automaton.Spec, error) {
	var alphabet, substring *string
	var mult *int
	for _, e := range f.Entries {
		switch {
		case e.Alphabet != nil:
			if alphabet != nil {
				return automaton.Spec{}, fmt.Errorf("%w: alphabet at %s", ErrDuplicateField, e.Pos)
			}
			alphabet = e.Alphabet
		case e.Substring != nil:
			if substring != nil {
				return automaton.Spec{}, fmt.Errorf("%w: substring at %s", ErrDuplicateField, e.Pos)
			}
			substring = e.Substring
		case e.Multiplicity != nil:
			if mult != nil {
				return automaton.Spec{}, fmt.Errorf("%w: multiplicity at %s", ErrDuplicateField, e.Pos)
			}
			mult = e.Multiplicity
		}
	}
	switch {
	case alphabet == nil:
		return automaton.Spec{}, fmt.Errorf("%w: alphabet", ErrMissingField)
	case substring == nil:
		return automaton.Spec{}, fmt.Errorf("%w: substring", ErrMissingField)
	case mult == nil:
		return automaton.Spec{}, fmt.Errorf("%w: multiplicity", ErrMissingField)
	}
	return Make(*alphabet, *substring, *mult)
}

// Make validates raw form values the way the input form does and builds a
// Spec. Repeated alphabet symbols are collapsed, first occurrence wins.
func Make(alphabet, substring string, multiplicity int) (automaton.Spec, error) {
	if strings.TrimSpace(alphabet) == "" {
		return automaton.Spec{}, fmt.Errorf("%w: alphabet must not be empty", ErrInvalid)
	}
	if strings.TrimSpace(substring) == "" {
		return automaton.Spec{}, fmt.Errorf("%w: substring must not be empty", ErrInvalid)
	}

	var alpha []rune
	seen := map[rune]struct{}{}
	for _, r := range alphabet {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		alpha = append(alpha, r)
	}
	for _, r := range substring {
		if _, ok := seen[r]; !ok {
			return automaton.Spec{}, fmt.Errorf("%w: substring symbol %q is not in the alphabet", ErrInvalid, r)
		}
	}
	if multiplicity < 1 {
		return automaton.Spec{}, fmt.Errorf("%w: multiplicity must be a positive integer, got %d", ErrInvalid, multiplicity)
	}

	spec := automaton.Spec{
		Alphabet:     alpha,
		Substring:    []rune(substring),
		Multiplicity: multiplicity,
	}
	if err := spec.Validate(); err != nil {
		return automaton.Spec{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return spec, nil
}
