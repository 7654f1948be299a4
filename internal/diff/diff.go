// Package diff aligns two documents line by line or word by word and
// renders the result.
package diff

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Mode selects the comparison unit.
type Mode int

const (
	ModeLine Mode = iota
	ModeWord
)

func (m Mode) String() string {
	switch m {
	case ModeLine:
		return "line"
	case ModeWord:
		return "word"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "line", "word" and the UI labels "Line by Line" / "Word by Word".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "line", "lines", "line by line":
		return ModeLine, nil
	case "word", "words", "word by word":
		return ModeWord, nil
	}
	return 0, fmt.Errorf("unknown diff mode %q", s)
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// Algorithm selects the alignment backend.
type Algorithm int

const (
	// AlgorithmMatcher is the Ratcliff/Obershelp sequence matcher.
	AlgorithmMatcher Algorithm = iota
	// AlgorithmMyers is a minimal edit script.
	AlgorithmMyers
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmMatcher:
		return "matcher"
	case AlgorithmMyers:
		return "myers"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm accepts "matcher" or "myers".
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "matcher", "difflib":
		return AlgorithmMatcher, nil
	case "myers":
		return AlgorithmMyers, nil
	}
	return 0, fmt.Errorf("unknown diff algorithm %q", s)
}

func (a Algorithm) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// OpTag classifies an opcode.
type OpTag int

const (
	OpEqual OpTag = iota
	OpInsert
	OpDelete
	OpReplace
)

func (t OpTag) String() string {
	switch t {
	case OpEqual:
		return "equal"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpReplace:
		return "replace"
	default:
		return fmt.Sprintf("OpTag(%d)", int(t))
	}
}

func (t OpTag) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Opcode maps A[I1:I2] to B[J1:J2].
type Opcode struct {
	Tag OpTag `json:"tag"`
	I1  int   `json:"i1"`
	I2  int   `json:"i2"`
	J1  int   `json:"j1"`
	J2  int   `json:"j2"`
}

var tokenPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+|[^\p{L}\p{M}\p{N}_\s]`)

// Tokenize splits text into words and single punctuation characters.
// Whitespace is discarded.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(text, -1)
}

// SplitLines splits text on line breaks. A trailing newline does not add an
// empty final line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Engine aligns token sequences with the configured algorithm.
type Engine struct {
	algorithm Algorithm
	dmp       *diffmatchpatch.DiffMatchPatch
}

// NewEngine creates a diff engine using algorithm.
func NewEngine(algorithm Algorithm) *Engine {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0 // exact results regardless of input size
	return &Engine{algorithm: algorithm, dmp: dmp}
}

// DefaultEngine uses the sequence matcher.
var DefaultEngine = NewEngine(AlgorithmMatcher)

// Algorithm reports the engine backend.
func (e *Engine) Algorithm() Algorithm { return e.algorithm }

// Align returns opcodes that transform a into b. Every element of both
// inputs is covered by exactly one opcode and no two equal opcodes are adjacent.
func (e *Engine) Align(a, b []string) []Opcode {
	if e.algorithm == AlgorithmMyers {
		if ops, ok := e.myers(a, b); ok {
			return ops
		}
	}
	return matcherOpcodes(a, b)
}

func matcherOpcodes(a, b []string) []Opcode {
	m := difflib.NewMatcherWithJunk(a, b, false, nil)
	raw := m.GetOpCodes()
	ops := make([]Opcode, 0, len(raw))
	for _, op := range raw {
		var tag OpTag
		switch op.Tag {
		case 'e':
			tag = OpEqual
		case 'i':
			tag = OpInsert
		case 'd':
			tag = OpDelete
		case 'r':
			tag = OpReplace
		default:
			continue
		}
		ops = appendOp(ops, Opcode{Tag: tag, I1: op.I1, I2: op.I2, J1: op.J1, J2: op.J2})
	}
	return ops
}

// myers encodes each distinct token as one rune so diffmatchpatch can diff
// token sequences. ok is false when the vocabulary does not fit in runes.
func (e *Engine) myers(a, b []string) ([]Opcode, bool) {
	ra, rb, ok := encodeTokens(a, b)
	if !ok {
		return nil, false
	}
	diffs := e.dmp.DiffMainRunes(ra, rb, false)

	var ops []Opcode
	i, j, deleted, inserted := 0, 0, 0, 0
	flush := func() {
		switch {
		case deleted > 0 && inserted > 0:
			ops = appendOp(ops, Opcode{Tag: OpReplace, I1: i, I2: i + deleted, J1: j, J2: j + inserted})
		case deleted > 0:
			ops = appendOp(ops, Opcode{Tag: OpDelete, I1: i, I2: i + deleted, J1: j, J2: j})
		case inserted > 0:
			ops = appendOp(ops, Opcode{Tag: OpInsert, I1: i, I2: i, J1: j, J2: j + inserted})
		}
		i += deleted
		j += inserted
		deleted, inserted = 0, 0
	}
	for _, d := range diffs {
		n := utf8.RuneCountInString(d.Text)
		if n == 0 {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			ops = appendOp(ops, Opcode{Tag: OpEqual, I1: i, I2: i + n, J1: j, J2: j + n})
			i += n
			j += n
		case diffmatchpatch.DiffDelete:
			deleted += n
		case diffmatchpatch.DiffInsert:
			inserted += n
		}
	}
	flush()
	return ops, true
}

const maxEncodedTokens = int(utf8.MaxRune) - 0x800

func encodeTokens(a, b []string) ([]rune, []rune, bool) {
	index := make(map[string]rune)
	encode := func(tokens []string) ([]rune, bool) {
		out := make([]rune, len(tokens))
		for k, tok := range tokens {
			r, seen := index[tok]
			if !seen {
				if len(index) >= maxEncodedTokens {
					return nil, false
				}
				r = rune(len(index))
				if r >= 0xD800 {
					r += 0x800 // skip surrogates
				}
				index[tok] = r
			}
			out[k] = r
		}
		return out, true
	}
	ra, ok := encode(a)
	if !ok {
		return nil, nil, false
	}
	rb, ok := encode(b)
	return ra, rb, ok
}

// appendOp merges an equal opcode into a preceding equal one.
func appendOp(ops []Opcode, op Opcode) []Opcode {
	if n := len(ops); n > 0 && op.Tag == OpEqual && ops[n-1].Tag == OpEqual {
		ops[n-1].I2 = op.I2
		ops[n-1].J2 = op.J2
		return ops
	}
	return append(ops, op)
}

// Apply rebuilds b from a and an edit script produced for the pair.
func Apply(a, b []string, ops []Opcode) []string {
	out := make([]string, 0, len(b))
	for _, op := range ops {
		switch op.Tag {
		case OpEqual:
			out = append(out, a[op.I1:op.I2]...)
		case OpInsert, OpReplace:
			out = append(out, b[op.J1:op.J2]...)
		}
	}
	return out
}

// CheckOpcodes verifies that ops cover sequences of length n and m in order.
func CheckOpcodes(ops []Opcode, n, m int) error {
	i, j := 0, 0
	for k, op := range ops {
		if op.I1 != i || op.J1 != j {
			return fmt.Errorf("opcode %d starts at (%d,%d), want (%d,%d)", k, op.I1, op.J1, i, j)
		}
		if op.I2 < op.I1 || op.J2 < op.J1 {
			return fmt.Errorf("opcode %d has a negative range", k)
		}
		switch op.Tag {
		case OpEqual:
			if op.I2-op.I1 != op.J2-op.J1 || op.I2 == op.I1 {
				return fmt.Errorf("opcode %d: equal ranges differ or are empty", k)
			}
			if k > 0 && ops[k-1].Tag == OpEqual {
				return fmt.Errorf("opcode %d: adjacent equal opcodes", k)
			}
		case OpInsert:
			if op.I2 != op.I1 || op.J2 == op.J1 {
				return fmt.Errorf("opcode %d: malformed insert", k)
			}
		case OpDelete:
			if op.J2 != op.J1 || op.I2 == op.I1 {
				return fmt.Errorf("opcode %d: malformed delete", k)
			}
		case OpReplace:
			if op.I2 == op.I1 || op.J2 == op.J1 {
				return fmt.Errorf("opcode %d: malformed replace", k)
			}
		}
		i, j = op.I2, op.J2
	}
	if i != n || j != m {
		return fmt.Errorf("opcodes end at (%d,%d), want (%d,%d)", i, j, n, m)
	}
	return nil
}
