package session

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"dfalab/internal/automaton"
)

const snapshotVersion = 1

// Snapshot is the on-disk form of a session. The automaton part is its
// external representation: states with their keys, the initial state, the
// accepting states and the full transition table, all by state name.
type Snapshot struct {
	Version      int                          `json:"version"`
	Alphabet     string                       `json:"alphabet,omitempty"`
	Substring    string                       `json:"substring,omitempty"`
	Multiplicity int                          `json:"multiplicity,omitempty"`
	States       []StateRecord                `json:"states,omitempty"`
	Initial      string                       `json:"initial,omitempty"`
	Accepting    []string                     `json:"accepting,omitempty"`
	Transitions  map[string]map[string]string `json:"transitions,omitempty"`
	History      []EntryRecord                `json:"history,omitempty"`
}

type StateRecord struct {
	Name   string `json:"name"`
	Prefix int    `json:"prefix"`
	Mod    int    `json:"mod"`
	Found  bool   `json:"found"`
}

type EntryRecord struct {
	Input     string       `json:"input"`
	Accepted  bool         `json:"accepted"`
	Outcome   string       `json:"outcome"`
	Reason    string       `json:"reason"`
	Steps     []StepRecord `json:"steps,omitempty"`
	CheckedAt time.Time    `json:"checked_at"`
}

type StepRecord struct {
	Index  int    `json:"index"`
	Symbol string `json:"symbol,omitempty"`
	From   string `json:"from"`
	To     string `json:"to"`
	Final  bool   `json:"final,omitempty"`
}

// Describe encodes a in its external representation.
func Describe(a *automaton.Automaton) Snapshot {
	snap := Snapshot{
		Version:      snapshotVersion,
		Alphabet:     string(a.Alphabet()),
		Substring:    a.Substring(),
		Multiplicity: a.Multiplicity(),
		Initial:      automaton.StateName(a.Initial()),
		Transitions:  make(map[string]map[string]string, a.NumStates()),
	}
	for id := 0; id < a.NumStates(); id++ {
		k := a.Key(id)
		snap.States = append(snap.States, StateRecord{
			Name:   automaton.StateName(id),
			Prefix: k.Prefix,
			Mod:    k.Mod,
			Found:  k.Found,
		})
	}
	for _, id := range a.Finals() {
		snap.Accepting = append(snap.Accepting, automaton.StateName(id))
	}
	for id, row := range a.Transitions() {
		m := make(map[string]string, len(row))
		for sym, to := range row {
			m[string(sym)] = automaton.StateName(to)
		}
		snap.Transitions[automaton.StateName(id)] = m
	}
	return snap
}

func record(e Entry) EntryRecord {
	r := EntryRecord{
		Input:     e.Input,
		Accepted:  e.Accepted,
		Outcome:   e.Outcome.String(),
		Reason:    e.Reason,
		CheckedAt: e.CheckedAt,
	}
	for _, st := range e.Steps {
		sr := StepRecord{
			Index: st.Index,
			From:  automaton.StateName(st.From),
			To:    automaton.StateName(st.State),
			Final: st.Final,
		}
		if st.Symbol != automaton.NoSymbol {
			sr.Symbol = string(st.Symbol)
		}
		r.Steps = append(r.Steps, sr)
	}
	return r
}

// Snapshot captures the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	a, hist := s.current, append([]Entry(nil), s.history...)
	s.mu.Unlock()

	snap := Snapshot{Version: snapshotVersion}
	if a != nil {
		snap = Describe(a)
	}
	for _, e := range hist {
		snap.History = append(snap.History, record(e))
	}
	return snap
}

// Restore replaces the session with snap. The automaton is rebuilt from the
// stored spec and must describe the same table; every history entry is
// re-checked and must reach the stored verdict.
func (s *Session) Restore(snap Snapshot) error {
	if snap.Version != snapshotVersion {
		return fmt.Errorf("%w: %d", ErrSnapshotVersion, snap.Version)
	}

	if snap.Alphabet == "" && snap.Substring == "" && snap.Multiplicity == 0 {
		if len(snap.History) != 0 {
			return fmt.Errorf("%w: history without automaton", ErrSnapshotMismatch)
		}
		s.Reset()
		s.logger.Info("session restored", "automaton", false)
		return nil
	}

	a, err := automaton.Build(automaton.NewSpec(snap.Alphabet, snap.Substring, snap.Multiplicity))
	if err != nil {
		return fmt.Errorf("session: restore: %w", err)
	}
	want := Describe(a)
	if want.Initial != snap.Initial ||
		!reflect.DeepEqual(want.States, snap.States) ||
		!reflect.DeepEqual(want.Accepting, snap.Accepting) ||
		!reflect.DeepEqual(want.Transitions, snap.Transitions) {
		return fmt.Errorf("%w: automaton table differs", ErrSnapshotMismatch)
	}

	hist := make([]Entry, 0, len(snap.History))
	for i, r := range snap.History {
		stored, ok := automaton.ParseOutcome(r.Outcome)
		if !ok {
			return fmt.Errorf("%w: history entry %d has unknown outcome %q", ErrSnapshotMismatch, i, r.Outcome)
		}
		res := automaton.Check(a, r.Input)
		if res.Accepted != r.Accepted || res.Outcome != stored {
			return fmt.Errorf("%w: history entry %d (%q) was %s, now %s",
				ErrSnapshotMismatch, i, r.Input, r.Outcome, res.Outcome)
		}
		hist = append(hist, Entry{Result: res, CheckedAt: r.CheckedAt})
	}

	s.mu.Lock()
	s.current = a
	s.history = hist
	s.mu.Unlock()
	s.logger.Info("session restored", "automaton", true, "states", a.NumStates(), "history", len(hist))
	return nil
}

// Save writes the session as indented JSON.
func (s *Session) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s.Snapshot())
}

// Load reads a session written by Save.
func (s *Session) Load(r io.Reader) error {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return fmt.Errorf("session: decode snapshot: %w", err)
	}
	return s.Restore(snap)
}

// SaveFile writes the session to path through a temporary file in the same
// directory, so a crash never leaves a half written file behind.
func (s *Session) SaveFile(path string) error {
	data, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("session: encode snapshot: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".session-*")
	if err != nil {
		return fmt.Errorf("session: create temp: %w", err)
	}
	tmpPath := tmp.Name()
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("session: write %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("session: fsync %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("session: close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("session: rename %s → %s: %w", tmpPath, path, err)
	}
	success = true
	s.logger.Debug("session saved", "path", path)
	return nil
}

// LoadFile restores the session from path. A missing file is not an error
// and leaves the session empty.
func (s *Session) LoadFile(path string) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		s.logger.Debug("no saved session", "path", path)
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()
	if err := s.Load(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
