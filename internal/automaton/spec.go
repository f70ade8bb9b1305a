// Package automaton builds and runs the DFA for the language of strings over
// an alphabet that contain a mandatory substring and whose length is a
// multiple of a given number.
package automaton

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSpec reports a Spec that breaks its own invariants.
	ErrInvalidSpec = errors.New("automaton: invalid language spec")

	// ErrForeignSymbol reports a symbol outside the automaton's alphabet.
	ErrForeignSymbol = errors.New("automaton: symbol not in alphabet")
)

// Spec describes the language: strings over Alphabet that contain Substring
// as a factor and whose length is divisible by Multiplicity.
type Spec struct {
	Alphabet     []rune
	Substring    []rune
	Multiplicity int
}

// NewSpec is a convenience constructor taking plain strings.
func NewSpec(alphabet, substring string, multiplicity int) Spec {
	return Spec{
		Alphabet:     []rune(alphabet),
		Substring:    []rune(substring),
		Multiplicity: multiplicity,
	}
}

// Validate checks the invariants Build relies on.
func (s Spec) Validate() error {
	if len(s.Alphabet) == 0 {
		return fmt.Errorf("%w: empty alphabet", ErrInvalidSpec)
	}
	seen := make(map[rune]struct{}, len(s.Alphabet))
	for _, r := range s.Alphabet {
		if _, dup := seen[r]; dup {
			return fmt.Errorf("%w: duplicate alphabet symbol %q", ErrInvalidSpec, r)
		}
		seen[r] = struct{}{}
	}
	if len(s.Substring) == 0 {
		return fmt.Errorf("%w: empty substring", ErrInvalidSpec)
	}
	for i, r := range s.Substring {
		if _, ok := seen[r]; !ok {
			return fmt.Errorf("%w: substring symbol %q at %d not in alphabet", ErrInvalidSpec, r, i)
		}
	}
	if s.Multiplicity < 1 {
		return fmt.Errorf("%w: multiplicity %d is not positive", ErrInvalidSpec, s.Multiplicity)
	}
	return nil
}

func (s Spec) clone() Spec {
	return Spec{
		Alphabet:     append([]rune(nil), s.Alphabet...),
		Substring:    append([]rune(nil), s.Substring...),
		Multiplicity: s.Multiplicity,
	}
}

func (s Spec) String() string {
	return fmt.Sprintf("alphabet=%q substring=%q multiplicity=%d",
		string(s.Alphabet), string(s.Substring), s.Multiplicity)
}
