// Package wordlex splits a batch file into the words to be checked.
//
// Words are separated by white space; '#' starts a comment running to the end
// of the line; a word in double quotes may be empty, which is how the empty
// string is written.
package wordlex

import (
	"errors"
	"fmt"
	"os"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

var ErrScan = errors.New("wordlex: cannot scan input")

type Word struct {
	Text   string
	Quoted bool
	Line   int
	Column int
}

func (w Word) String() string {
	return fmt.Sprintf("%d:%d %q", w.Line, w.Column, w.Text)
}

type Scanner struct {
	scanner *lexmachine.Scanner
}

func newLexer() (*lexmachine.Lexer, error) {
	lx := lexmachine.NewLexer()
	lx.Add([]byte(`[ \t\r\n]+`), skip)
	lx.Add([]byte(`#[^\n]*`), skip)
	lx.Add([]byte(`"[^"\n]*"`), quoted)
	lx.Add([]byte(`[^ \t\r\n#"]+`), bare)
	if err := lx.Compile(); err != nil {
		return nil, err
	}
	return lx, nil
}

// New prepares a scanner over input.
func New(input []byte) (*Scanner, error) {
	lx, err := newLexer()
	if err != nil {
		return nil, err
	}
	sc, err := lx.Scanner(input)
	if err != nil {
		return nil, err
	}
	return &Scanner{scanner: sc}, nil
}

// Next returns the next word; ok is false at end of input.
func (s *Scanner) Next() (w Word, ok bool, err error) {
	tok, err, eos := s.scanner.Next()
	if eos {
		return Word{}, false, nil
	}
	if err != nil {
		return Word{}, false, fmt.Errorf("%w: %v", ErrScan, err)
	}
	return tok.(Word), true, nil
}

// Scan returns every word of input in order.
func Scan(input []byte) ([]Word, error) {
	s, err := New(input)
	if err != nil {
		return nil, err
	}
	var out []Word
	for {
		w, ok, err := s.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, w)
	}
}

// ScanFile reads path and scans it.
func ScanFile(path string) ([]Word, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Scan(data)
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func bare(_ *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	return Word{
		Text:   string(m.Bytes),
		Line:   m.StartLine,
		Column: m.StartColumn,
	}, nil
}

func quoted(_ *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	return Word{
		Text:   string(m.Bytes[1 : len(m.Bytes)-1]),
		Quoted: true,
		Line:   m.StartLine,
		Column: m.StartColumn,
	}, nil
}
