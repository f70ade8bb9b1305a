// Command dfalab builds the DFA for "strings over an alphabet that contain a
// substring and whose length is a multiple of k" and checks words against it.
//
//	dfalab -alphabet ab -substring ab -multiplicity 2 ab aabb ba
//	dfalab -lang even-ab.lang -words words.txt -trace
//	dfalab -state session.json -history
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"dfalab/internal/automaton"
	"dfalab/internal/langfile"
	"dfalab/internal/session"
	"dfalab/internal/wordlex"
)

type config struct {
	lang         string
	alphabet     string
	substring    string
	multiplicity int
	words        string
	state        string
	trace        bool
	history      bool
	reset        bool
}

var errUsage = errors.New("usage")

func parseFlags(args []string, stderr io.Writer) (config, []string, error) {
	var c config
	fs := flag.NewFlagSet("dfalab", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&c.lang, "lang", "", "language description file")
	fs.StringVar(&c.alphabet, "alphabet", "", "alphabet symbols, e.g. ab")
	fs.StringVar(&c.substring, "substring", "", "mandatory substring")
	fs.IntVar(&c.multiplicity, "multiplicity", 1, "length must be a multiple of this")
	fs.StringVar(&c.words, "words", "", "file with words to check")
	fs.StringVar(&c.state, "state", getEnv("DFALAB_STATE", ""), "session file to load and save")
	fs.BoolVar(&c.trace, "trace", false, "print every simulation step")
	fs.BoolVar(&c.history, "history", false, "print the session history")
	fs.BoolVar(&c.reset, "reset", false, "forget the saved automaton and history")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: dfalab [-lang file | -alphabet A -substring S -multiplicity K] [-words file] [-state file] [-trace] [-history] [word ...]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return c, nil, errUsage
	}
	if c.lang != "" && c.alphabet != "" {
		fmt.Fprintln(stderr, "-lang and -alphabet are mutually exclusive")
		return c, nil, errUsage
	}
	return c, fs.Args(), nil
}

func run(args []string, stdout, stderr io.Writer, logger *slog.Logger) error {
	c, words, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	sess := session.New(session.WithLogger(logger))
	if c.state != "" && !c.reset {
		if err := sess.LoadFile(c.state); err != nil {
			return err
		}
	}

	var spec *automaton.Spec
	switch {
	case c.lang != "":
		s, err := langfile.Load(c.lang)
		if err != nil {
			return err
		}
		spec = &s
	case c.alphabet != "" || c.substring != "":
		s, err := langfile.Make(c.alphabet, c.substring, c.multiplicity)
		if err != nil {
			return err
		}
		spec = &s
	}
	if spec != nil {
		a, err := sess.Build(*spec)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "built DFA for %v: %d states, %d final, initial %s\n",
			spec, a.NumStates(), len(a.Finals()), automaton.StateName(a.Initial()))
	}

	if c.words != "" {
		ws, err := wordlex.ScanFile(c.words)
		if err != nil {
			return fmt.Errorf("%s: %w", c.words, err)
		}
		for _, w := range ws {
			words = append(words, w.Text)
		}
	}

	for _, w := range words {
		e, err := sess.Check(w)
		if err != nil {
			return err
		}
		printResult(stdout, e.Result, c.trace)
	}

	if c.history {
		printHistory(stdout, sess)
	}

	if c.state != "" {
		if err := sess.SaveFile(c.state); err != nil {
			return err
		}
	}
	return nil
}

func verdict(accepted bool) string {
	if accepted {
		return "ACCEPTED"
	}
	return "REJECTED"
}

func printResult(w io.Writer, r automaton.Result, trace bool) {
	fmt.Fprintf(w, "%-8s %q: %s\n", verdict(r.Accepted), r.Input, r.Reason)
	if !trace {
		return
	}
	for _, st := range r.Steps {
		fmt.Fprintf(w, "  step %d: %s\n", st.Index, st.Describe())
	}
}

func printHistory(w io.Writer, sess *session.Session) {
	st := sess.Stats()
	fmt.Fprintf(w, "history: %d checked, %d accepted, %d rejected\n", st.Total, st.Accepted, st.Rejected)
	for i, e := range sess.History() {
		fmt.Fprintf(w, "%3d  %s  %-8s %q: %s\n", i+1, e.CheckedAt.Format("15:04:05"), verdict(e.Accepted), e.Input, e.Reason)
	}
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(getEnv("DFALAB_LOG_LEVEL", "warn")),
	}))
	slog.SetDefault(logger)

	if err := run(os.Args[1:], os.Stdout, os.Stderr, logger); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "dfalab:", err)
		os.Exit(1)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
