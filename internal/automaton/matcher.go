package automaton

// Matcher is the KMP step function for a fixed pattern.
// failure[i] is the length of the longest proper suffix of pattern[:i]
// that is also a prefix of pattern; failure[0] and failure[1] are 0.
type Matcher struct {
	pattern []rune
	failure []int
}

// NewMatcher precomputes the failure table for pattern in linear time.
func NewMatcher(pattern []rune) *Matcher {
	m := len(pattern)
	failure := make([]int, m+1)
	j := 0
	for i := 1; i < m; i++ {
		for j > 0 && pattern[i] != pattern[j] {
			j = failure[j]
		}
		if pattern[i] == pattern[j] {
			j++
		}
		failure[i+1] = j
	}
	return &Matcher{
		pattern: append([]rune(nil), pattern...),
		failure: failure,
	}
}

// Len returns the pattern length.
func (m *Matcher) Len() int { return len(m.pattern) }

// Failure returns a copy of the failure table.
func (m *Matcher) Failure() []int { return append([]int(nil), m.failure...) }

// Advance returns the matched-prefix length after reading sym in a position
// where prefixLen symbols of the pattern were matched. The result is in
// [0, Len()]; it equals Len() exactly when an occurrence ends at sym.
func (m *Matcher) Advance(prefixLen int, sym rune) int {
	if len(m.pattern) == 0 {
		return 0
	}
	// a full match can only continue through its longest border,
	// this is what finds overlapping occurrences
	if prefixLen == len(m.pattern) {
		prefixLen = m.failure[prefixLen]
	}
	for prefixLen > 0 && m.pattern[prefixLen] != sym {
		prefixLen = m.failure[prefixLen]
	}
	if m.pattern[prefixLen] == sym {
		prefixLen++
	}
	return prefixLen
}
