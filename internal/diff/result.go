package diff

import (
	"fmt"
	"strings"
)

// Status marks a run or row in a rendered comparison.
type Status int

const (
	StatusUnchanged Status = iota
	StatusAdded
	StatusRemoved
	StatusChanged // row only: both sides present but different
)

func (s Status) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusAdded:
		return "added"
	case StatusRemoved:
		return "removed"
	case StatusChanged:
		return "changed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Run is a span of consecutive tokens sharing a status, joined by single spaces.
type Run struct {
	Text   string `json:"text"`
	Status Status `json:"status"`
}

// Row is one line of a side-by-side view. Line numbers are 1-based and zero
// when the side is empty.
type Row struct {
	LeftNum  int    `json:"left_num,omitempty"`
	RightNum int    `json:"right_num,omitempty"`
	Left     string `json:"left,omitempty"`
	Right    string `json:"right,omitempty"`
	Status   Status `json:"status"`
	Inline   []Run  `json:"inline,omitempty"`
}

// Stats counts compared units by outcome.
type Stats struct {
	Unchanged int `json:"unchanged"`
	Added     int `json:"added"`
	Removed   int `json:"removed"`
}

// Result is a complete comparison of two documents.
type Result struct {
	Mode      Mode      `json:"mode"`
	Algorithm Algorithm `json:"algorithm"`
	Left      []string  `json:"-"`
	Right     []string  `json:"-"`
	Opcodes   []Opcode  `json:"opcodes"`
	Rows      []Row     `json:"rows,omitempty"`
	Runs      []Run     `json:"runs,omitempty"`
	Stats     Stats     `json:"stats"`
}

// Identical reports whether no unit was added or removed.
func (r *Result) Identical() bool {
	return r.Stats.Added == 0 && r.Stats.Removed == 0
}

// Compare aligns left and right in mode and builds the matching view.
func (e *Engine) Compare(left, right string, mode Mode) *Result {
	res := &Result{Mode: mode, Algorithm: e.algorithm}
	if mode == ModeWord {
		res.Left, res.Right = Tokenize(left), Tokenize(right)
	} else {
		res.Left, res.Right = SplitLines(left), SplitLines(right)
	}
	res.Opcodes = e.Align(res.Left, res.Right)
	res.Stats = countStats(res.Opcodes)

	if mode == ModeWord {
		res.Runs = WordRuns(res.Left, res.Right, res.Opcodes)
	} else {
		res.Rows = e.sideBySide(res.Left, res.Right, res.Opcodes)
	}
	return res
}

// WordRuns flattens opcodes into runs. A replace yields the removed run
// followed by the added run.
func WordRuns(a, b []string, ops []Opcode) []Run {
	runs := make([]Run, 0, len(ops))
	for _, op := range ops {
		switch op.Tag {
		case OpEqual:
			runs = append(runs, Run{Text: strings.Join(a[op.I1:op.I2], " "), Status: StatusUnchanged})
		case OpDelete:
			runs = append(runs, Run{Text: strings.Join(a[op.I1:op.I2], " "), Status: StatusRemoved})
		case OpInsert:
			runs = append(runs, Run{Text: strings.Join(b[op.J1:op.J2], " "), Status: StatusAdded})
		case OpReplace:
			runs = append(runs,
				Run{Text: strings.Join(a[op.I1:op.I2], " "), Status: StatusRemoved},
				Run{Text: strings.Join(b[op.J1:op.J2], " "), Status: StatusAdded},
			)
		}
	}
	return runs
}

func (e *Engine) sideBySide(a, b []string, ops []Opcode) []Row {
	var rows []Row
	for _, op := range ops {
		switch op.Tag {
		case OpEqual:
			for k := 0; k < op.I2-op.I1; k++ {
				rows = append(rows, Row{
					LeftNum: op.I1 + k + 1, RightNum: op.J1 + k + 1,
					Left: a[op.I1+k], Right: b[op.J1+k],
					Status: StatusUnchanged,
				})
			}
		case OpDelete:
			for k := op.I1; k < op.I2; k++ {
				rows = append(rows, Row{LeftNum: k + 1, Left: a[k], Status: StatusRemoved})
			}
		case OpInsert:
			for k := op.J1; k < op.J2; k++ {
				rows = append(rows, Row{RightNum: k + 1, Right: b[k], Status: StatusAdded})
			}
		case OpReplace:
			n := max(op.I2-op.I1, op.J2-op.J1)
			for k := 0; k < n; k++ {
				i, j := op.I1+k, op.J1+k
				switch {
				case i < op.I2 && j < op.J2:
					left, right := Tokenize(a[i]), Tokenize(b[j])
					rows = append(rows, Row{
						LeftNum: i + 1, RightNum: j + 1,
						Left: a[i], Right: b[j],
						Status: StatusChanged,
						Inline: WordRuns(left, right, e.Align(left, right)),
					})
				case i < op.I2:
					rows = append(rows, Row{LeftNum: i + 1, Left: a[i], Status: StatusRemoved})
				default:
					rows = append(rows, Row{RightNum: j + 1, Right: b[j], Status: StatusAdded})
				}
			}
		}
	}
	return rows
}

func countStats(ops []Opcode) Stats {
	var s Stats
	for _, op := range ops {
		switch op.Tag {
		case OpEqual:
			s.Unchanged += op.I2 - op.I1
		case OpDelete:
			s.Removed += op.I2 - op.I1
		case OpInsert:
			s.Added += op.J2 - op.J1
		case OpReplace:
			s.Removed += op.I2 - op.I1
			s.Added += op.J2 - op.J1
		}
	}
	return s
}
