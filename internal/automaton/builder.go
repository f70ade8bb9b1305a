package automaton

import "fmt"

// Build materialises the product automaton of the substring matcher, the
// length counter modulo the multiplicity and the found flag.
//
// States are discovered breadth first from (0,0,false), symbols in alphabet
// order, so identical specs always yield identical ids and keys that cannot
// be reached are never created. On error no automaton is returned.
func Build(spec Spec) (*Automaton, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	spec = spec.clone()

	km := NewMatcher(spec.Substring)
	m := km.Len()
	mult := spec.Multiplicity
	limit := (m + 1) * mult * 2

	symbols := make(map[rune]int, len(spec.Alphabet))
	for i, r := range spec.Alphabet {
		symbols[r] = i
	}

	a := &Automaton{
		spec:    spec,
		index:   make(map[Key]int),
		symbols: symbols,
	}

	register := func(k Key) (int, bool) {
		if id, ok := a.index[k]; ok {
			return id, false
		}
		id := len(a.states)
		a.states = append(a.states, k)
		a.index[k] = id
		a.trans = append(a.trans, make([]int, len(spec.Alphabet)))
		a.final = append(a.final, k.Found && k.Mod == 0)
		return id, true
	}

	a.initial, _ = register(Key{})
	queue := []int{a.initial}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		k := a.states[cur]
		for i, sym := range spec.Alphabet {
			p := km.Advance(k.Prefix, sym)
			next := Key{
				Prefix: p,
				Mod:    (k.Mod + 1) % mult,
				Found:  k.Found || p == m,
			}
			id, fresh := register(next)
			if fresh {
				if len(a.states) > limit {
					return nil, fmt.Errorf("automaton: %d states exceed product bound %d for %v", len(a.states), limit, spec)
				}
				queue = append(queue, id)
			}
			a.trans[cur][i] = id
		}
	}
	return a, nil
}

// MustBuild is like Build but panics on error.
func MustBuild(spec Spec) *Automaton {
	a, err := Build(spec)
	if err != nil {
		panic(err)
	}
	return a
}
