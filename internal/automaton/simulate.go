package automaton

import (
	"fmt"
	"unicode/utf8"
)

// NoSymbol marks the initial step, which consumes nothing.
const NoSymbol rune = -1

// Outcome classifies a Result.
type Outcome int

const (
	OutcomeAccepted       Outcome = iota
	OutcomeEmptyInput             // input had no symbols
	OutcomeForeignSymbol          // a symbol outside the alphabet
	OutcomeLengthMismatch         // length not a multiple
	OutcomeNonFinal               // ran to completion, stopped in a non-final state
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeEmptyInput:
		return "empty-input"
	case OutcomeForeignSymbol:
		return "foreign-symbol"
	case OutcomeLengthMismatch:
		return "length-mismatch"
	case OutcomeNonFinal:
		return "non-final"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(s string) (Outcome, bool) {
	for o := OutcomeAccepted; o <= OutcomeNonFinal; o++ {
		if o.String() == s {
			return o, true
		}
	}
	return 0, false
}

// Step is one entry of a simulation trace. Index 0 is the initial state and
// carries NoSymbol; step i>0 records the i-th symbol and the state it led to.
type Step struct {
	Index  int
	Symbol rune
	From   int
	State  int
	Final  bool
}

// Describe renders the step the way the trace is shown to users.
func (s Step) Describe() string {
	if s.Symbol == NoSymbol {
		return fmt.Sprintf("initial state: %s", StateName(s.State))
	}
	d := fmt.Sprintf("symbol %q: %s -> %s", s.Symbol, StateName(s.From), StateName(s.State))
	if s.Final {
		d += " (final)"
	}
	return d
}

// Result is the verdict for one input. Symbol and Position are only set for
// OutcomeForeignSymbol.
type Result struct {
	Input    string
	Accepted bool
	Outcome  Outcome
	Reason   string
	Steps    []Step
	Symbol   rune
	Position int
}

// Check decides whether input belongs to the language of a.
//
// Empty input, foreign symbols and a length that is not a multiple are
// rejected before any transition is taken. Everything else runs through the
// automaton; substring absence is only known at the end of the run.
func Check(a *Automaton, input string) Result {
	res := Result{Input: input, Symbol: NoSymbol, Position: -1}

	if input == "" {
		res.Outcome = OutcomeEmptyInput
		res.Reason = "empty input"
		return res
	}

	n := 0
	for _, r := range input {
		if !a.Contains(r) {
			res.Outcome = OutcomeForeignSymbol
			res.Symbol = r
			res.Position = n
			res.Reason = fmt.Sprintf("symbol %q at position %d is not in the alphabet", r, n)
			return res
		}
		n++
	}

	if n%a.Multiplicity() != 0 {
		res.Outcome = OutcomeLengthMismatch
		res.Reason = fmt.Sprintf("length %d is not a multiple of %d", n, a.Multiplicity())
		return res
	}

	steps := a.run(input, n)
	last := steps[len(steps)-1].State
	res.Steps = steps
	res.Accepted = a.IsFinal(last)
	if res.Accepted {
		res.Outcome = OutcomeAccepted
		res.Reason = fmt.Sprintf("accepted, ended in final state %s", StateName(last))
	} else {
		res.Outcome = OutcomeNonFinal
		res.Reason = fmt.Sprintf("rejected, ended in non-final state %s", StateName(last))
		if k := a.Key(last); !k.Found {
			res.Reason += fmt.Sprintf(" (substring %q not found)", a.Substring())
		}
	}
	return res
}

// Trace runs input through a without any shortcut and returns every step,
// including the initial one. It fails only on a symbol outside the alphabet.
func Trace(a *Automaton, input string) ([]Step, error) {
	n := 0
	for _, r := range input {
		if !a.Contains(r) {
			return nil, fmt.Errorf("%w: %q at position %d", ErrForeignSymbol, r, n)
		}
		n++
	}
	return a.run(input, n), nil
}

// Accepts reports whether a full run over input ends in a final state.
func Accepts(a *Automaton, input string) bool {
	steps, err := Trace(a, input)
	if err != nil {
		return false
	}
	return steps[len(steps)-1].Final
}

// run assumes every rune of input is in the alphabet; n is its rune count.
func (a *Automaton) run(input string, n int) []Step {
	steps := make([]Step, 0, n+1)
	cur := a.initial
	steps = append(steps, Step{Index: 0, Symbol: NoSymbol, From: cur, State: cur, Final: a.final[cur]})
	for pos, i := 0, 1; pos < len(input); i++ {
		r, sz := utf8.DecodeRuneInString(input[pos:])
		pos += sz
		next := a.trans[cur][a.symbols[r]]
		steps = append(steps, Step{Index: i, Symbol: r, From: cur, State: next, Final: a.final[next]})
		cur = next
	}
	return steps
}
