package diff

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var algorithms = []Algorithm{AlgorithmMatcher, AlgorithmMyers}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Section 80C, of the Act.", []string{"Section", "80C", ",", "of", "the", "Act", "."}},
		{"  spaced\tout\n", []string{"spaced", "out"}},
		{"snake_case & co", []string{"snake_case", "&", "co"}},
		{"न्यायालय का", []string{"न्यायालय", "का"}},
		{"", nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, Tokenize(tt.in)); diff != "" {
			t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, SplitLines(""))
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\r\nb\n"))
	assert.Equal(t, []string{"a", ""}, SplitLines("a\n\n"))
	assert.Equal(t, []string{"only"}, SplitLines("only"))
}

func TestCompare_WordMode(t *testing.T) {
	left := "The tenant shall pay rent monthly."
	right := "The tenant must pay rent quarterly."
	want := []Run{
		{"The tenant", StatusUnchanged},
		{"shall", StatusRemoved},
		{"must", StatusAdded},
		{"pay rent", StatusUnchanged},
		{"monthly", StatusRemoved},
		{"quarterly", StatusAdded},
		{".", StatusUnchanged},
	}
	for _, alg := range algorithms {
		t.Run(alg.String(), func(t *testing.T) {
			res := NewEngine(alg).Compare(left, right, ModeWord)
			if diff := cmp.Diff(want, res.Runs); diff != "" {
				t.Errorf("runs mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, Stats{Unchanged: 5, Added: 2, Removed: 2}, res.Stats)
			assert.False(t, res.Identical())
		})
	}
}

func TestCompare_LineMode(t *testing.T) {
	res := DefaultEngine.Compare("a\nb\nc\n", "a\nB\nc\nd\n", ModeLine)

	want := []Row{
		{LeftNum: 1, RightNum: 1, Left: "a", Right: "a", Status: StatusUnchanged},
		{LeftNum: 2, RightNum: 2, Left: "b", Right: "B", Status: StatusChanged,
			Inline: []Run{{"b", StatusRemoved}, {"B", StatusAdded}}},
		{LeftNum: 3, RightNum: 3, Left: "c", Right: "c", Status: StatusUnchanged},
		{RightNum: 4, Right: "d", Status: StatusAdded},
	}
	if diff := cmp.Diff(want, res.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, Stats{Unchanged: 2, Added: 2, Removed: 1}, res.Stats)
	assert.Empty(t, res.Runs)
}

func TestCompare_ReplaceWithUnevenSides(t *testing.T) {
	res := DefaultEngine.Compare("keep\nold one\nold two\nend", "keep\nnew\nend", ModeLine)
	require.Len(t, res.Rows, 4)
	assert.Equal(t, StatusChanged, res.Rows[1].Status)
	assert.Equal(t, StatusRemoved, res.Rows[2].Status)
	assert.Equal(t, 3, res.Rows[2].LeftNum)
	assert.Zero(t, res.Rows[2].RightNum)
}

func TestAlign_SelfIsSingleEqual(t *testing.T) {
	a := Tokenize("Whereas the parties agree, the parties agree again.")
	for _, alg := range algorithms {
		ops := NewEngine(alg).Align(a, a)
		assert.Equal(t, []Opcode{{Tag: OpEqual, I1: 0, I2: len(a), J1: 0, J2: len(a)}}, ops, alg.String())

		runs := WordRuns(a, a, ops)
		require.Len(t, runs, 1)
		assert.Equal(t, StatusUnchanged, runs[0].Status)
	}
}

func TestAlign_EmptySides(t *testing.T) {
	b := []string{"x", "y"}
	for _, alg := range algorithms {
		e := NewEngine(alg)
		assert.Equal(t, []Opcode{{Tag: OpInsert, I1: 0, I2: 0, J1: 0, J2: 2}}, e.Align(nil, b))
		assert.Equal(t, []Opcode{{Tag: OpDelete, I1: 0, I2: 2, J1: 0, J2: 0}}, e.Align(b, nil))
		assert.Empty(t, e.Align(nil, nil))
	}
}

// TestAlign_RoundTrip checks coverage and reconstruction on random inputs.
func TestAlign_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	vocab := []string{"the", "court", "held", ",", "appeal", "dismissed", ".", "costs"}
	randomSeq := func() []string {
		out := make([]string, rng.Intn(30))
		for i := range out {
			out[i] = vocab[rng.Intn(len(vocab))]
		}
		return out
	}
	for _, alg := range algorithms {
		e := NewEngine(alg)
		for i := 0; i < 300; i++ {
			a, b := randomSeq(), randomSeq()
			ops := e.Align(a, b)
			require.NoError(t, CheckOpcodes(ops, len(a), len(b)), "%s: a=%v b=%v", alg, a, b)
			got := Apply(a, b, ops)
			if len(b) == 0 {
				assert.Empty(t, got)
				continue
			}
			assert.Equal(t, b, got, "%s: a=%v b=%v", alg, a, b)
		}
	}
}

func TestCheckOpcodes_DetectsBrokenScripts(t *testing.T) {
	assert.Error(t, CheckOpcodes([]Opcode{{Tag: OpEqual, I1: 0, I2: 1, J1: 0, J2: 1}}, 2, 1))
	assert.Error(t, CheckOpcodes([]Opcode{
		{Tag: OpEqual, I1: 0, I2: 1, J1: 0, J2: 1},
		{Tag: OpEqual, I1: 1, I2: 2, J1: 1, J2: 2},
	}, 2, 2))
	assert.Error(t, CheckOpcodes([]Opcode{{Tag: OpInsert, I1: 0, I2: 1, J1: 0, J2: 1}}, 1, 1))
	assert.NoError(t, CheckOpcodes(nil, 0, 0))
}

func TestRenderers(t *testing.T) {
	res := DefaultEngine.Compare("The tenant shall pay.", "The tenant must pay.", ModeWord)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, res))
	assert.Equal(t, "The tenant [-shall-] {+must+} pay .\n", buf.String())

	console := Console(res)
	assert.Contains(t, console, "shall")
	assert.Contains(t, console, "1 added")

	lines := DefaultEngine.Compare("<script>\nb\n", "<script>\nc\n", ModeLine)
	html, err := HTML(lines)
	require.NoError(t, err)
	assert.Contains(t, string(html), "&lt;script&gt;")
	assert.Contains(t, string(html), `class="diff-changed"`)

	buf.Reset()
	require.NoError(t, WriteText(&buf, lines))
	assert.Equal(t, "  <script>\n- b\n+ c\n", buf.String())

	words, err := HTML(res)
	require.NoError(t, err)
	assert.Contains(t, string(words), `<span class="diff-removed">shall</span>`)

	unified, err := Unified("a\nb\n", "a\nB\n", "left.txt", "right.txt", 3)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(unified, "--- left.txt\n+++ right.txt\n"))
	assert.Contains(t, unified, "-b\n+B\n")
}

func TestParseModeAndAlgorithm(t *testing.T) {
	m, err := ParseMode("Word by Word")
	require.NoError(t, err)
	assert.Equal(t, ModeWord, m)
	m, err = ParseMode("line")
	require.NoError(t, err)
	assert.Equal(t, ModeLine, m)
	_, err = ParseMode("char")
	assert.Error(t, err)

	a, err := ParseAlgorithm("")
	require.NoError(t, err)
	assert.Equal(t, AlgorithmMatcher, a)
	a, err = ParseAlgorithm("Myers")
	require.NoError(t, err)
	assert.Equal(t, AlgorithmMyers, a)
	_, err = ParseAlgorithm("patience")
	assert.Error(t, err)
}
