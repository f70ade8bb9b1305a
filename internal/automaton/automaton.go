package automaton

import "fmt"

// Key identifies a product state.
//
//	Prefix — longest suffix of the input read so far that is a prefix of the substring
//	Mod    — input length modulo the multiplicity
//	Found  — the substring has occurred at least once; never reset
type Key struct {
	Prefix int
	Mod    int
	Found  bool
}

func (k Key) String() string {
	return fmt.Sprintf("(%d,%d,%t)", k.Prefix, k.Mod, k.Found)
}

// Automaton is a complete DFA. It is never modified after Build returns,
// so one value may be shared by any number of goroutines.
type Automaton struct {
	spec    Spec
	states  []Key       // arena: index is the state id
	index   map[Key]int // key -> id
	symbols map[rune]int
	trans   [][]int // trans[id][symbol index] -> id
	final   []bool
	initial int
}

// Spec returns a copy of the spec the automaton was built from.
func (a *Automaton) Spec() Spec { return a.spec.clone() }

// Alphabet returns the symbols in declaration order.
func (a *Automaton) Alphabet() []rune { return append([]rune(nil), a.spec.Alphabet...) }

// Substring returns the mandatory factor.
func (a *Automaton) Substring() string { return string(a.spec.Substring) }

// Multiplicity returns the required length divisor.
func (a *Automaton) Multiplicity() int { return a.spec.Multiplicity }

// NumStates returns the number of instantiated states. Ids run from 0 to
// NumStates()-1.
func (a *Automaton) NumStates() int { return len(a.states) }

// Initial returns the id of the start state, key (0,0,false).
func (a *Automaton) Initial() int { return a.initial }

// Key returns the composite key of state id.
func (a *Automaton) Key(id int) Key { return a.states[id] }

// Lookup finds the id of a key, if that state was instantiated.
func (a *Automaton) Lookup(k Key) (int, bool) {
	id, ok := a.index[k]
	return id, ok
}

// IsFinal reports whether id is accepting.
func (a *Automaton) IsFinal(id int) bool { return a.final[id] }

// Finals returns the accepting state ids in ascending order.
func (a *Automaton) Finals() []int {
	var out []int
	for id, f := range a.final {
		if f {
			out = append(out, id)
		}
	}
	return out
}

// Next returns the successor of id on sym. ok is false only when sym is not
// in the alphabet; the table itself is total.
func (a *Automaton) Next(id int, sym rune) (next int, ok bool) {
	i, ok := a.symbols[sym]
	if !ok {
		return 0, false
	}
	return a.trans[id][i], true
}

// Contains reports whether sym belongs to the alphabet.
func (a *Automaton) Contains(sym rune) bool {
	_, ok := a.symbols[sym]
	return ok
}

// Transitions returns the table as state id -> symbol -> state id.
func (a *Automaton) Transitions() map[int]map[rune]int {
	out := make(map[int]map[rune]int, len(a.trans))
	for id, row := range a.trans {
		m := make(map[rune]int, len(row))
		for i, to := range row {
			m[a.spec.Alphabet[i]] = to
		}
		out[id] = m
	}
	return out
}

// StateName is the display name of a state.
func StateName(id int) string { return fmt.Sprintf("q%d", id) }
