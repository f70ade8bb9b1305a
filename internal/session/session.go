// Package session owns the current automaton and the history of checks run
// against it, and persists both between runs.
package session

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"dfalab/internal/automaton"
)

var (
	ErrNoAutomaton      = errors.New("session: no automaton built")
	ErrSnapshotVersion  = errors.New("session: unsupported snapshot version")
	ErrSnapshotMismatch = errors.New("session: snapshot does not match its spec")
)

// Entry is one history record.
type Entry struct {
	automaton.Result
	CheckedAt time.Time
}

// Stats summarises the history.
type Stats struct {
	Total    int
	Accepted int
	Rejected int
}

// Session is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	current *automaton.Automaton
	history []Entry

	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Session)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithClock overrides time.Now for history timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func New(opts ...Option) *Session {
	s := &Session{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Build replaces the current automaton with a fresh one for spec and clears
// the history. On error the session is left untouched.
func (s *Session) Build(spec automaton.Spec) (*automaton.Automaton, error) {
	a, err := automaton.Build(spec)
	if err != nil {
		s.logger.Warn("build failed", "spec", spec.String(), "err", err)
		return nil, err
	}
	s.mu.Lock()
	s.current = a
	s.history = nil
	s.mu.Unlock()
	s.logger.Info("automaton built",
		"spec", spec.String(),
		"states", a.NumStates(),
		"finals", len(a.Finals()),
	)
	return a, nil
}

// Automaton returns the current automaton or nil.
func (s *Session) Automaton() *automaton.Automaton {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Check runs input against the current automaton and records the result.
func (s *Session) Check(input string) (Entry, error) {
	s.mu.Lock()
	a := s.current
	s.mu.Unlock()
	if a == nil {
		return Entry{}, ErrNoAutomaton
	}

	e := Entry{Result: automaton.Check(a, input), CheckedAt: s.now()}

	s.mu.Lock()
	// a Build in between superseded a; its result does not belong here
	if s.current == a {
		s.history = append(s.history, e)
	}
	s.mu.Unlock()

	s.logger.Debug("checked",
		"input", input,
		"accepted", e.Accepted,
		"outcome", e.Outcome.String(),
		"steps", len(e.Steps),
	)
	return e, nil
}

// History returns the results in the order they were checked.
func (s *Session) History() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.history...)
}

// ClearHistory forgets every result but keeps the automaton.
func (s *Session) ClearHistory() {
	s.mu.Lock()
	s.history = nil
	s.mu.Unlock()
}

// Reset drops the automaton and the history.
func (s *Session) Reset() {
	s.mu.Lock()
	s.current = nil
	s.history = nil
	s.mu.Unlock()
}

func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Stats{Total: len(s.history)}
	for _, e := range s.history {
		if e.Accepted {
			st.Accepted++
		}
	}
	st.Rejected = st.Total - st.Accepted
	return st
}
